package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/KirkDiggler/dnd-sheet/internal/config"
	"github.com/KirkDiggler/dnd-sheet/internal/logging"
	"github.com/KirkDiggler/dnd-sheet/internal/repositories/characters"
	"github.com/KirkDiggler/dnd-sheet/internal/services/sheet"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand shares: flags, config and the store
type app struct {
	in io.Reader

	envFile string
	id      string
	timeout time.Duration

	cfg    *config.Config
	logger *zap.Logger
	client redis.UniversalClient
	repo   characters.Repository
}

func newRootCmd(in io.Reader) *cobra.Command {
	a := &app{in: in}

	root := &cobra.Command{
		Use:   "sheetctl",
		Short: "Track a D&D 5e character's resources, rests and rolls",
		Long: `sheetctl keeps one character sheet in Redis and applies the same edits the
sheet's panels offer: HP, hit dice, class resources, spell slots, rests and dice.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Env file to load (defaults to ./.env when present)")
	root.PersistentFlags().StringVar(&a.id, "id", "", "Character ID (defaults to SHEET_ID)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 10*time.Second, "Redis timeout")

	root.AddCommand(
		newShowCmd(a),
		newLogCmd(a),
		newListCmd(a),
		newNewCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newRestCmd(a),
		newRollCmd(a),
		newHPCmd(a),
		newHitDiceCmd(a),
		newUseCmd(a),
		newRegainCmd(a),
		newToggleCmd(a),
		newPoolCmd(a),
		newSlotCmd(a),
		newSetCmd(a),
		newLevelCmd(a),
		newClassCmd(a),
		newConditionCmd(a),
		newSkillCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if a.id != "" {
		cfg.Sheet.ID = a.id
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	a.client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
	defer cancel()
	if err := a.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	a.repo = characters.NewRedisRepository(&characters.RedisRepoConfig{
		Client:    a.client,
		KeyPrefix: cfg.Sheet.KeyPrefix,
	})
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.logger != nil {
		_ = a.logger.Sync() // nolint:errcheck // stderr sync fails on some terminals
	}
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

// withSheet opens the configured sheet, runs fn and flushes before returning
func (a *app) withSheet(cmd *cobra.Command, confirmer sheet.Confirmer, fn func(ctx context.Context, sh *sheet.Sheet) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
	defer cancel()

	if confirmer == nil {
		confirmer = sheet.AlwaysConfirm
	}

	sh, err := sheet.Open(ctx, &sheet.Config{
		ID:         a.cfg.Sheet.ID,
		Repository: a.repo,
		Confirmer:  confirmer,
		SaveDelay:  a.cfg.Sheet.SaveDebounce,
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}

	runErr := fn(ctx, sh)
	if err := sh.Close(ctx); err != nil && runErr == nil {
		return fmt.Errorf("failed to save character: %w", err)
	}
	return runErr
}

// promptConfirmer asks on the command's streams
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *promptConfirmer) Confirm(_ context.Context, title, body string) (bool, error) {
	fmt.Fprintf(p.out, "%s: %s [y/N] ", title, body)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
