// Package rest recovers class resources, hit points and hit dice on short
// and long rests.
package rest

import (
	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	ShortRestLog = "Took a short rest"
	LongRestLog  = "Took a long rest"
)

// Summary reports what a rest recovered
type Summary struct {
	Trigger rulebook.Trigger

	// Restored lists the labels of the rows that were reset
	Restored []string

	HPRecovered      int
	HitDiceRecovered int
}

// LogText is the action log entry for the rest
func (s *Summary) LogText() string {
	if s.Trigger == rulebook.TriggerLongRest {
		return LongRestLog
	}
	return ShortRestLog
}

// Service applies rest recovery to a record. It performs the state change
// unconditionally; asking the player is the caller's job.
type Service interface {
	// ShortRest resets every row, across all classes, that recovers on a
	// short rest
	ShortRest(rec *character.Record) *Summary

	// LongRest resets short and long rest rows, restores HP to max, clears
	// temporary HP and recovers half the spent hit dice
	LongRest(rec *character.Record) *Summary
}

type service struct {
	schema *rulebook.Schema
	logger *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Schema *rulebook.Schema // Required
	Logger *zap.Logger      // Optional
}

// NewService creates a new rest service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Schema == nil {
		panic("schema is required")
	}

	svc := &service{
		schema: cfg.Schema,
		logger: zap.NewNop(),
	}
	if cfg.Logger != nil {
		svc.logger = cfg.Logger
	}
	return svc
}

func (s *service) ShortRest(rec *character.Record) *Summary {
	summary := &Summary{Trigger: rulebook.TriggerShortRest}
	s.recover(rec, summary)

	s.logger.Info("short rest", zap.Strings("restored", summary.Restored))
	return summary
}

func (s *service) LongRest(rec *character.Record) *Summary {
	summary := &Summary{Trigger: rulebook.TriggerLongRest}
	s.recover(rec, summary)

	hp := &rec.Combat.HP
	summary.HPRecovered = hp.Max - hp.Current
	hp.Restore()
	summary.HitDiceRecovered = rec.Combat.HitDice.RecoverHalfSpent()

	s.logger.Info("long rest",
		zap.Strings("restored", summary.Restored),
		zap.Int("hp_recovered", summary.HPRecovered),
		zap.Int("hit_dice_recovered", summary.HitDiceRecovered))
	return summary
}

// recover resets each recovering row whose instance the record holds.
// Missing instances are skipped, never created.
func (s *service) recover(rec *character.Record, summary *Summary) {
	for _, row := range s.schema.Recovering(summary.Trigger) {
		inst, err := rec.Instance(row.Address)
		if err != nil {
			s.logger.Debug("skipping absent resource", zap.String("address", row.Address))
			continue
		}

		switch v := inst.(type) {
		case *shared.Counter:
			v.Reset()
		case *shared.Toggle:
			v.Reset()
		case *shared.Pool:
			v.Reset()
		case *shared.Static:
			continue
		}
		summary.Restored = append(summary.Restored, row.Label)
	}
}
