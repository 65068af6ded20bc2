package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/repositories/characters"
	"github.com/KirkDiggler/dnd-sheet/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SheetctlTestSuite struct {
	suite.Suite
	envFile string
	repo    characters.Repository
}

func (s *SheetctlTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.T().Setenv("REDIS_URL", "redis://"+mr.Addr()+"/0")
	s.T().Setenv("SHEET_ID", "cli")
	s.T().Setenv("SHEET_KEY_PREFIX", "character")
	s.T().Setenv("LOG_LEVEL", "error")
	s.envFile = filepath.Join(s.T().TempDir(), "sheet.env")
	s.Require().NoError(os.WriteFile(s.envFile, nil, 0o600))
	s.repo = characters.NewRedisRepository(&characters.RedisRepoConfig{Client: client})
}

// run executes sheetctl with stdin and returns stdout
func (s *SheetctlTestSuite) run(stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--env-file", s.envFile}, args...))
	err := root.Execute()
	return out.String(), err
}

func (s *SheetctlTestSuite) mustRun(args ...string) string {
	out, err := s.run("", args...)
	s.Require().NoError(err, out)
	return out
}

func (s *SheetctlTestSuite) stored() *character.Record {
	rec, err := s.repo.Get(context.Background(), "cli")
	s.Require().NoError(err)
	return rec
}

func (s *SheetctlTestSuite) TestNewAndShow() {
	s.mustRun("new", "--class", "Paladin", "--name", "Seraphine")

	out := s.mustRun("show")
	s.Contains(out, "Seraphine (cli) - Human Paladin 1")
	s.Contains(out, "Lay on Hands")
	s.Contains(out, "5/5 (long rest)")
}

func (s *SheetctlTestSuite) TestHPAndLog() {
	s.mustRun("hp", "damage", "4")
	s.mustRun("hp", "heal")

	rec := s.stored()
	s.Equal(7, rec.Combat.HP.Current)
	s.Require().Len(rec.Log, 2)
	s.True(strings.HasSuffix(rec.Log[0], " - +1 HP"))
	s.True(strings.HasSuffix(rec.Log[1], " - -4 HP"))

	out := s.mustRun("log", "-n", "1")
	s.Contains(out, "+1 HP")
	s.NotContains(out, "-4 HP")
}

func (s *SheetctlTestSuite) TestResourcesAndRest() {
	s.mustRun("class", "Fighter")
	s.mustRun("use", "classResources.Fighter.actionSurge")
	s.mustRun("toggle", "classResources.Fighter.secondWind", "off")

	out, err := s.run("n\n", "rest", "short")
	s.Require().NoError(err)
	s.Contains(out, "Rest cancelled")
	surge, err := s.stored().CounterAt("classResources.Fighter.actionSurge")
	s.Require().NoError(err)
	s.Equal(1, surge.Used)

	out, err = s.run("y\n", "rest", "short")
	s.Require().NoError(err)
	s.Contains(out, "Short rest complete")
	s.Contains(out, "Action Surge")

	rec := s.stored()
	surge, err = rec.CounterAt("classResources.Fighter.actionSurge")
	s.Require().NoError(err)
	s.Equal(0, surge.Used)
	wind, err := rec.ToggleAt("classResources.Fighter.secondWind")
	s.Require().NoError(err)
	s.True(wind.Available)
}

func (s *SheetctlTestSuite) TestLongRestYes() {
	s.mustRun("hp", "damage", "9")
	out := s.mustRun("rest", "long", "--yes")
	s.Contains(out, "HP recovered: 9")
	s.Equal(10, s.stored().Combat.HP.Current)
}

func (s *SheetctlTestSuite) TestMisShapedAddressFails() {
	_, err := s.run("", "use", "classResources.Barbarian.rageDamage")
	s.Error(err)
}

func (s *SheetctlTestSuite) TestSlotsAndSet() {
	s.mustRun("class", "Wizard")
	s.mustRun("slot", "max", "1", "3")
	s.mustRun("slot", "use", "1")
	s.mustRun("set", "abilities.INT", "18")
	s.mustRun("set", "identity.level", "lots")

	rec := s.stored()
	s.Equal(1, rec.Spells.Slots[1].Used)
	s.Equal(18, rec.Abilities["INT"])
	s.Equal(1, rec.Identity.Level)

	s.mustRun("slot", "reset")
	s.Equal(0, s.stored().Spells.Slots[1].Used)
}

func (s *SheetctlTestSuite) TestExportImport() {
	s.mustRun("new", "--name", "Brakka")
	exported := s.mustRun("export", "-")

	s.mustRun("new", "--name", "Someone Else")
	path := filepath.Join(s.T().TempDir(), "brakka.json")
	s.Require().NoError(writeFile(path, exported))

	out := s.mustRun("import", path)
	s.Contains(out, "Imported Brakka")
	s.Equal("Brakka", s.stored().Identity.Name)

	_, err := s.run("garbage", "import", "-")
	s.Error(err)
	s.Equal("Brakka", s.stored().Identity.Name)
}

func (s *SheetctlTestSuite) TestRoll() {
	out := s.mustRun("roll", "d20", "--adv")
	s.Contains(out, "Rolled d20: ")
	s.Contains(s.stored().Log[0], "Rolled d20: ")

	_, err := s.run("", "roll", "dx")
	s.Error(err)
}

func (s *SheetctlTestSuite) TestMissingEnvFileFails() {
	s.envFile = filepath.Join(s.T().TempDir(), "typo.env")
	_, err := s.run("", "show")
	s.Require().Error(err)
	s.Contains(err.Error(), "load env file")
}

func (s *SheetctlTestSuite) TestListAndDelete() {
	s.mustRun("new")
	s.mustRun("--id", "second", "new", "--class", "Monk")

	out := s.mustRun("list")
	s.Contains(out, "cli\tNew Hero\tBarbarian 1")
	s.Contains(out, "second\tNew Hero\tMonk 1")

	s.mustRun("delete", "second")
	_, err := s.run("", "delete", "second")
	s.Error(err)
}

func TestSheetctlTestSuite(t *testing.T) {
	suite.Run(t, new(SheetctlTestSuite))
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{input: "y\n", expected: true},
		{input: "YES\n", expected: true},
		{input: "n\n", expected: false},
		{input: "\n", expected: false},
		{input: "", expected: false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		ok, err := newPromptConfirmer(strings.NewReader(tt.input), &out).Confirm(context.Background(), "Long Rest", "Recover?")
		require.NoError(t, err)
		assert.Equal(t, tt.expected, ok, "input %q", tt.input)
		assert.Equal(t, "Long Rest: Recover? [y/N] ", out.String())
	}
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o600)
}
