// Package sheet is the session around one character record: every edit runs
// under one lock, lands in the action log and schedules a debounced save.
package sheet

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/dnd-sheet/internal/clock"
	"github.com/KirkDiggler/dnd-sheet/internal/dice"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-sheet/internal/repositories/characters"
	"github.com/KirkDiggler/dnd-sheet/internal/services/persistence"
	"github.com/KirkDiggler/dnd-sheet/internal/services/resources"
	"github.com/KirkDiggler/dnd-sheet/internal/services/rest"
	"go.uber.org/zap"
)

// DefaultClass is the class of a freshly created character
const DefaultClass = shared.ClassBarbarian

// Rest prompts
const (
	ShortRestTitle = "Short Rest"
	ShortRestBody  = "Recover short-rest features?"
	LongRestTitle  = "Long Rest"
	LongRestBody   = "Recover all features and hit points?"
)

// Mutation edits the working copy of the record. Returning an error discards
// the copy.
type Mutation func(rec *character.Record) error

// Sheet owns one character record for the length of a session
type Sheet struct {
	id        string
	repo      characters.Repository
	schema    *rulebook.Schema
	resources resources.Service
	rest      rest.Service
	roller    dice.Roller
	confirmer Confirmer
	clock     clock.Clock
	logger    *zap.Logger
	flusher   *persistence.Flusher

	mu  sync.Mutex
	rec *character.Record

	resting atomic.Bool
}

// Config holds configuration for a sheet
type Config struct {
	ID         string                // Required, the record key
	Repository characters.Repository // Required
	Confirmer  Confirmer             // Required, gates rests

	Schema    *rulebook.Schema  // Optional, defaults to rulebook.Default()
	Resources resources.Service // Optional
	Rest      rest.Service      // Optional
	Roller    dice.Roller       // Optional, defaults to a random roller
	Clock     clock.Clock       // Optional
	SaveDelay time.Duration     // Optional, defaults to persistence.DefaultDelay
	Logger    *zap.Logger       // Optional
}

// Open loads the record stored under cfg.ID. A missing record, one that
// cannot be decoded, or one whose resources do not fit the schema is
// replaced by a fresh default character.
func Open(ctx context.Context, cfg *Config) (*Sheet, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("sheet config is required")
	}
	if cfg.ID == "" {
		return nil, dnderr.InvalidArgument("sheet ID is required")
	}
	if cfg.Repository == nil {
		return nil, dnderr.InvalidArgument("repository is required")
	}
	if cfg.Confirmer == nil {
		return nil, dnderr.InvalidArgument("confirmer is required")
	}

	s := &Sheet{
		id:        cfg.ID,
		repo:      cfg.Repository,
		schema:    cfg.Schema,
		resources: cfg.Resources,
		rest:      cfg.Rest,
		roller:    cfg.Roller,
		confirmer: cfg.Confirmer,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.With(zap.String("character_id", cfg.ID))
	if s.schema == nil {
		s.schema = rulebook.Default()
	}
	if s.resources == nil {
		s.resources = resources.NewService(&resources.ServiceConfig{Logger: s.logger})
	}
	if s.rest == nil {
		s.rest = rest.NewService(&rest.ServiceConfig{Schema: s.schema, Logger: s.logger})
	}
	if s.roller == nil {
		s.roller = dice.NewRandomRoller()
	}
	if s.clock == nil {
		s.clock = clock.New()
	}

	rec, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.rec = rec

	s.flusher = persistence.NewFlusher(&persistence.FlusherConfig{
		Repository: s.repo,
		Snapshot:   s.Snapshot,
		Delay:      cfg.SaveDelay,
		Logger:     s.logger,
	})
	return s, nil
}

func (s *Sheet) load(ctx context.Context) (*character.Record, error) {
	rec, err := s.repo.Get(ctx, s.id)
	switch {
	case err == nil:
		rec.Meta.ID = s.id
		rec.SeedClass(s.schema)
		bindErr := rec.Bind(s.schema)
		if bindErr == nil {
			return rec, nil
		}
		s.logger.Warn("stored character does not fit the schema, starting fresh", zap.Error(bindErr))
	case dnderr.IsNotFound(err):
		s.logger.Info("no stored character, starting fresh")
	case dnderr.IsValidation(err):
		s.logger.Warn("stored character is unreadable, starting fresh", zap.Error(err))
	default:
		return nil, dnderr.Wrap(err, "failed to load character")
	}

	return character.New(s.schema, DefaultClass, s.id)
}

// ID returns the record key
func (s *Sheet) ID() string {
	return s.id
}

// Schema returns the resource tables the sheet binds against
func (s *Sheet) Schema() *rulebook.Schema {
	return s.schema
}

// Snapshot returns a copy of the current record
func (s *Sheet) Snapshot() *character.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

// Resting reports whether a rest is waiting on confirmation
func (s *Sheet) Resting() bool {
	return s.resting.Load()
}

// Apply runs mutation against a copy of the record. On success the copy
// becomes the record, logText (if any) is added to the action log and a save
// is scheduled. On failure nothing changes. Mutations are refused while a
// rest awaits confirmation.
func (s *Sheet) Apply(ctx context.Context, mutation Mutation, logText string) error {
	if s.resting.Load() {
		return dnderr.Conflict("a rest is awaiting confirmation")
	}
	return s.apply(ctx, mutation, logText)
}

func (s *Sheet) apply(ctx context.Context, mutation Mutation, logText string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	working := s.rec.Clone()
	if err := mutation(working); err != nil {
		s.mu.Unlock()
		return err
	}
	if logText != "" {
		working.Log.Add(s.clock.Now(), logText)
	}
	s.rec = working
	s.mu.Unlock()

	s.flusher.Schedule()
	return nil
}

func (s *Sheet) AdjustCounter(ctx context.Context, address string, delta int) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		return s.resources.AdjustCounter(rec, address, delta)
	}, "")
}

func (s *Sheet) SetToggle(ctx context.Context, address string, available bool) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		return s.resources.SetToggle(rec, address, available)
	}, "")
}

// SetPoolField sets "<address>.max" or "<address>.remaining"
func (s *Sheet) SetPoolField(ctx context.Context, address string, value int) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		return s.resources.SetPoolField(rec, address, value)
	}, "")
}

func (s *Sheet) AdjustSpellSlot(ctx context.Context, level, delta int) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		return s.resources.AdjustSpellSlot(rec, level, delta)
	}, "")
}

func (s *Sheet) SetSpellSlotMax(ctx context.Context, level, max int) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		return rec.SetSpellSlotMax(level, max)
	}, "")
}

// ResetSpellSlots marks every slot unused
func (s *Sheet) ResetSpellSlots(ctx context.Context) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		rec.ResetSpellSlots()
		return nil
	}, "")
}

// AdjustHP moves current HP by delta within [0, max] and logs "+N HP"/"-N HP"
func (s *Sheet) AdjustHP(ctx context.Context, delta int) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		rec.AdjustHP(delta)
		return nil
	}, HPLogText(delta))
}

// HPLogText formats an HP adjustment for the action log
func HPLogText(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d HP", delta)
	}
	return fmt.Sprintf("%d HP", delta)
}

func (s *Sheet) SetMaxHP(ctx context.Context, max int) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		rec.SetMaxHP(max)
		return nil
	}, "")
}

func (s *Sheet) SetTempHP(ctx context.Context, temp int) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		rec.SetTempHP(temp)
		return nil
	}, "")
}

func (s *Sheet) AdjustHitDice(ctx context.Context, delta int) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		rec.AdjustHitDice(delta)
		return nil
	}, "")
}

func (s *Sheet) SetLevel(ctx context.Context, level int) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		rec.SetLevel(level)
		return nil
	}, "")
}

// SetClass switches class, keeping the state of every other class
func (s *Sheet) SetClass(ctx context.Context, class shared.Class) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		return rec.SetClass(s.schema, class)
	}, "")
}

func (s *Sheet) SetCondition(ctx context.Context, cond shared.Condition, on bool) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		return rec.SetCondition(cond, on)
	}, "")
}

func (s *Sheet) SetSkill(ctx context.Context, name string, proficient, expertise bool) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		skill, err := rec.Skill(name)
		if err != nil {
			return err
		}
		skill.Proficient = proficient
		skill.Expertise = expertise
		return nil
	}, "")
}

func (s *Sheet) SetAbility(ctx context.Context, ability shared.Ability, score int) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		if !ability.IsValid() {
			return dnderr.InvalidArgumentf("unknown ability %q", ability)
		}
		if score < 0 {
			score = 0
		}
		rec.Abilities[ability] = score
		return nil
	}, "")
}

func (s *Sheet) SetSave(ctx context.Context, ability shared.Ability, proficient bool) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		if !ability.IsValid() {
			return dnderr.InvalidArgumentf("unknown ability %q", ability)
		}
		rec.Saves[ability] = proficient
		return nil
	}, "")
}

// SetField edits any scalar field by address from raw text input
func (s *Sheet) SetField(ctx context.Context, address, raw string) error {
	return s.Apply(ctx, func(rec *character.Record) error {
		updated, err := setField(s.schema, rec, address, raw)
		if err != nil {
			return err
		}
		*rec = *updated
		return nil
	}, "")
}

// Roll rolls a die and logs the result
func (s *Sheet) Roll(ctx context.Context, sides int, mode dice.Mode) (*dice.RollResult, error) {
	if s.resting.Load() {
		return nil, dnderr.Conflict("a rest is awaiting confirmation")
	}
	result, err := s.roller.Roll(sides, mode)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(ctx, func(*character.Record) error { return nil }, result.LogText()); err != nil {
		return nil, err
	}
	return result, nil
}

// ShortRest asks for confirmation and then recovers short rest features. A
// declined prompt returns a nil summary and changes nothing.
func (s *Sheet) ShortRest(ctx context.Context) (*rest.Summary, error) {
	return s.takeRest(ctx, ShortRestTitle, ShortRestBody, rest.ShortRestLog, s.rest.ShortRest)
}

// LongRest asks for confirmation and then recovers everything
func (s *Sheet) LongRest(ctx context.Context) (*rest.Summary, error) {
	return s.takeRest(ctx, LongRestTitle, LongRestBody, rest.LongRestLog, s.rest.LongRest)
}

func (s *Sheet) takeRest(
	ctx context.Context,
	title, body, logText string,
	recoverFn func(*character.Record) *rest.Summary,
) (*rest.Summary, error) {
	if !s.resting.CompareAndSwap(false, true) {
		return nil, dnderr.Conflict("a rest is already awaiting confirmation")
	}
	defer s.resting.Store(false)

	ok, err := s.confirmer.Confirm(ctx, title, body)
	if err != nil {
		return nil, dnderr.Wrap(err, "rest confirmation failed")
	}
	if !ok {
		s.logger.Debug("rest declined", zap.String("title", title))
		return nil, nil
	}

	var summary *rest.Summary
	err = s.apply(ctx, func(rec *character.Record) error {
		summary = recoverFn(rec)
		return nil
	}, logText)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Export writes the record as indented JSON
func (s *Sheet) Export(w io.Writer) error {
	return character.Encode(w, s.Snapshot())
}

// ExportFilename is the suggested file name for an export
func (s *Sheet) ExportFilename() string {
	name := s.Snapshot().Identity.Name
	if name == "" {
		name = "character"
	}
	return name + ".json"
}

// Import replaces the record with a document read from r. An invalid
// document fails with CodeValidation and leaves the record as it was.
func (s *Sheet) Import(ctx context.Context, r io.Reader) error {
	imported, err := character.Decode(r)
	if err != nil {
		return err
	}
	imported.SeedClass(s.schema)
	if err := imported.Bind(s.schema); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeValidation, "invalid file")
	}
	imported.Meta.ID = s.id

	return s.Apply(ctx, func(rec *character.Record) error {
		*rec = *imported
		return nil
	}, "")
}

// Reset replaces the record with a fresh default character
func (s *Sheet) Reset(ctx context.Context) error {
	fresh, err := character.New(s.schema, DefaultClass, s.id)
	if err != nil {
		return err
	}
	return s.Apply(ctx, func(rec *character.Record) error {
		*rec = *fresh
		return nil
	}, "")
}

// Save writes the current record immediately
func (s *Sheet) Save(ctx context.Context) error {
	s.flusher.Schedule()
	return s.flusher.Flush(ctx)
}

// Close writes any pending changes and stops background saves
func (s *Sheet) Close(ctx context.Context) error {
	return s.flusher.Close(ctx)
}
