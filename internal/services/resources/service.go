// Package resources applies bounded changes to class resources and spell
// slots addressed by their storage address.
package resources

import (
	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
	"go.uber.org/zap"
)

const (
	FieldMax       = "max"
	FieldRemaining = "remaining"
)

// Service mutates resource instances in place. A failed call leaves the
// record untouched.
type Service interface {
	// AdjustCounter moves a counter's remaining uses by delta, saturating at
	// 0 and max
	AdjustCounter(rec *character.Record, address string, delta int) error

	// SetToggle marks a once-per-rest feature available or spent
	SetToggle(rec *character.Record, address string, available bool) error

	// SetPoolField sets "<address>.max" or "<address>.remaining" of a pool.
	// Negative values become 0; lowering max pulls remaining down.
	SetPoolField(rec *character.Record, address string, value int) error

	// AdjustSpellSlot moves the remaining slots of a level by delta
	AdjustSpellSlot(rec *character.Record, level, delta int) error
}

type service struct {
	logger *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Logger *zap.Logger // Optional, defaults to a no-op logger
}

// NewService creates a new resource service
func NewService(cfg *ServiceConfig) Service {
	svc := &service{logger: zap.NewNop()}
	if cfg != nil && cfg.Logger != nil {
		svc.logger = cfg.Logger
	}
	return svc
}

func (s *service) AdjustCounter(rec *character.Record, address string, delta int) error {
	counter, err := rec.CounterAt(address)
	if err != nil {
		return dnderr.Wrap(err, "adjust counter")
	}

	counter.Adjust(delta)
	s.logger.Debug("counter adjusted",
		zap.String("address", address),
		zap.Int("delta", delta),
		zap.Int("remaining", counter.Remaining()),
		zap.Int("max", counter.Max))
	return nil
}

func (s *service) SetToggle(rec *character.Record, address string, available bool) error {
	toggle, err := rec.ToggleAt(address)
	if err != nil {
		return dnderr.Wrap(err, "set toggle")
	}

	toggle.Available = available
	s.logger.Debug("toggle set", zap.String("address", address), zap.Bool("available", available))
	return nil
}

func (s *service) SetPoolField(rec *character.Record, address string, value int) error {
	addr, err := shared.ParseAddress(address)
	if err != nil {
		return dnderr.Wrap(err, "set pool field")
	}
	if addr.IsSpellSlot() || (addr.Field != FieldMax && addr.Field != FieldRemaining) {
		return dnderr.InvalidAddressf("set pool field: %q must end in .max or .remaining", address).
			WithMeta("address", address)
	}

	pool, err := rec.PoolAt(addr.Instance().String())
	if err != nil {
		return dnderr.Wrap(err, "set pool field")
	}

	if value < 0 {
		value = 0
	}
	switch addr.Field {
	case FieldMax:
		pool.SetMax(value)
	case FieldRemaining:
		pool.SetRemaining(value)
	}

	s.logger.Debug("pool field set",
		zap.String("address", address),
		zap.Int("remaining", pool.Remaining),
		zap.Int("max", pool.Max))
	return nil
}

func (s *service) AdjustSpellSlot(rec *character.Record, level, delta int) error {
	if level < shared.MinSpellLevel || level > shared.MaxSpellLevel {
		return dnderr.InvalidAddressf("adjust spell slot: level %d out of range", level).
			WithMeta("level", level)
	}
	if err := s.AdjustCounter(rec, shared.SpellSlotAddress(level), delta); err != nil {
		return dnderr.Wrap(err, "adjust spell slot")
	}
	return nil
}
