package characters

import (
	"context"
	"testing"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-sheet/internal/testutils"
	"github.com/KirkDiggler/dnd-sheet/internal/uuid"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite runs the same contract against every backend
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() Repository
	repo    Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func (s *RepositoryTestSuite) TestSaveGet_RoundTrip() {
	rec := testutils.CreateTestPaladin(s.T(), "paladin-1")

	s.Require().NoError(s.repo.Save(s.ctx, rec))

	got, err := s.repo.Get(s.ctx, "paladin-1")
	s.Require().NoError(err)
	s.Equal(rec, got)
}

func (s *RepositoryTestSuite) TestSave_Overwrites() {
	rec := testutils.CreateTestRecord(s.T(), "monk-1", shared.ClassMonk)
	s.Require().NoError(s.repo.Save(s.ctx, rec))

	rec.Identity.Name = "Quiet Step"
	rec.AdjustHP(-4)
	s.Require().NoError(s.repo.Save(s.ctx, rec))

	got, err := s.repo.Get(s.ctx, "monk-1")
	s.Require().NoError(err)
	s.Equal("Quiet Step", got.Identity.Name)
	s.Equal(6, got.Combat.HP.Current)
}

func (s *RepositoryTestSuite) TestGet_IsolatedCopy() {
	rec := testutils.CreateTestRecord(s.T(), "wiz-1", shared.ClassWizard)
	s.Require().NoError(s.repo.Save(s.ctx, rec))
	rec.Identity.Name = "changed after save"

	got, err := s.repo.Get(s.ctx, "wiz-1")
	s.Require().NoError(err)
	s.Equal("New Hero", got.Identity.Name)

	got.Identity.Name = "changed after get"
	again, err := s.repo.Get(s.ctx, "wiz-1")
	s.Require().NoError(err)
	s.Equal("New Hero", again.Identity.Name)
}

func (s *RepositoryTestSuite) TestSave_AssignsID() {
	rec := testutils.CreateTestRecord(s.T(), "", shared.ClassCleric)
	s.Require().NoError(s.repo.Save(s.ctx, rec))
	s.NotEmpty(rec.Meta.ID)

	_, err := s.repo.Get(s.ctx, rec.Meta.ID)
	s.NoError(err)
}

func (s *RepositoryTestSuite) TestDelete() {
	rec := testutils.CreateTestRecord(s.T(), "barb-1", shared.ClassBarbarian)
	s.Require().NoError(s.repo.Save(s.ctx, rec))

	s.Require().NoError(s.repo.Delete(s.ctx, "barb-1"))

	_, err := s.repo.Get(s.ctx, "barb-1")
	s.True(dnderr.IsNotFound(err))
	s.True(dnderr.IsNotFound(s.repo.Delete(s.ctx, "barb-1")))
}

func (s *RepositoryTestSuite) TestList_OrderedByID() {
	for _, id := range []string{"c", "a", "b"} {
		s.Require().NoError(s.repo.Save(s.ctx, testutils.CreateTestRecord(s.T(), id, shared.ClassFighter)))
	}

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("a", list[0].Meta.ID)
	s.Equal("b", list[1].Meta.ID)
	s.Equal("c", list[2].Meta.ID)
}

func (s *RepositoryTestSuite) TestList_Empty() {
	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: NewInMemoryRepository})
}

type MiniredisRepositoryTestSuite struct {
	RepositoryTestSuite
	mr *miniredis.Miniredis
}

func (s *MiniredisRepositoryTestSuite) SetupTest() {
	s.newRepo = func() Repository {
		client, mr := testutils.CreateTestRedisClient(s.T())
		s.mr = mr
		return NewRedisRepository(&RedisRepoConfig{
			Client:        client,
			UUIDGenerator: uuid.NewSequence("char"),
			KeyPrefix:     "sheet",
		})
	}
	s.RepositoryTestSuite.SetupTest()
}

func (s *MiniredisRepositoryTestSuite) TestStoredLayout() {
	rec := testutils.CreateTestRecord(s.T(), "", shared.ClassFighter)
	s.Require().NoError(s.repo.Save(s.ctx, rec))
	s.Equal("char-1", rec.Meta.ID)

	s.True(s.mr.Exists("sheet:char-1"))
	members, err := s.mr.Members("sheets")
	s.Require().NoError(err)
	s.Equal([]string{"char-1"}, members)
}

func (s *MiniredisRepositoryTestSuite) TestGet_CorruptValue() {
	s.Require().NoError(s.mr.Set("sheet:broken", "not json"))
	s.mr.SAdd("sheets", "broken")

	_, err := s.repo.Get(s.ctx, "broken")
	s.True(dnderr.IsValidation(err), "got %v", err)

	_, err = s.repo.List(s.ctx)
	s.True(dnderr.IsValidation(err), "got %v", err)
}

func (s *MiniredisRepositoryTestSuite) TestList_SkipsStaleIndexEntries() {
	s.Require().NoError(s.repo.Save(s.ctx, testutils.CreateTestRecord(s.T(), "kept", shared.ClassMonk)))
	s.mr.SAdd("sheets", "vanished")

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("kept", list[0].Meta.ID)
}

func TestMiniredisRepository(t *testing.T) {
	suite.Run(t, new(MiniredisRepositoryTestSuite))
}
