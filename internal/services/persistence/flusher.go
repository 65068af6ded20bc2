package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/repositories/characters"
	"go.uber.org/zap"
)

// DefaultDelay is the quiet window before a scheduled save runs
const DefaultDelay = 150 * time.Millisecond

// Flusher writes the latest record snapshot to the repository after bursts
// of changes settle
type Flusher struct {
	repo      characters.Repository
	snapshot  func() *character.Record
	logger    *zap.Logger
	debouncer *Debouncer

	mu      sync.Mutex
	lastErr error
	saves   int
}

// FlusherConfig holds configuration for the flusher
type FlusherConfig struct {
	Repository characters.Repository   // Required
	Snapshot   func() *character.Record // Required, called at save time
	Delay      time.Duration            // Optional, defaults to DefaultDelay
	Logger     *zap.Logger              // Optional
}

// NewFlusher creates a new flusher
func NewFlusher(cfg *FlusherConfig) *Flusher {
	if cfg == nil {
		panic("FlusherConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Snapshot == nil {
		panic("snapshot source is required")
	}

	f := &Flusher{
		repo:     cfg.Repository,
		snapshot: cfg.Snapshot,
		logger:   zap.NewNop(),
	}
	if cfg.Logger != nil {
		f.logger = cfg.Logger
	}

	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	f.debouncer = NewDebouncer(delay, f.save)
	return f
}

// Schedule requests a save of whatever the record looks like once changes
// stop arriving
func (f *Flusher) Schedule() {
	f.debouncer.Trigger()
}

// Pending reports whether a save is scheduled
func (f *Flusher) Pending() bool {
	return f.debouncer.Pending()
}

// Flush saves immediately if a save is pending, or waits for a save that is
// already running, and returns its error
func (f *Flusher) Flush(ctx context.Context) error {
	if !f.debouncer.Flush(ctx) {
		return nil
	}
	return f.Err()
}

// Close flushes pending work, stops further saves and returns the result of
// the last save once nothing is running
func (f *Flusher) Close(ctx context.Context) error {
	f.debouncer.Flush(ctx)
	f.debouncer.Stop()
	f.debouncer.Wait()
	return f.Err()
}

// Err returns the result of the most recent save
func (f *Flusher) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Saves counts completed save attempts
func (f *Flusher) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func (f *Flusher) save(ctx context.Context) {
	rec := f.snapshot()
	if rec == nil {
		return
	}

	err := f.repo.Save(ctx, rec)

	f.mu.Lock()
	f.lastErr = err
	f.saves++
	f.mu.Unlock()

	if err != nil {
		f.logger.Error("failed to save character",
			zap.String("character_id", rec.Meta.ID),
			zap.Error(err))
		return
	}
	f.logger.Debug("character saved", zap.String("character_id", rec.Meta.ID))
}
