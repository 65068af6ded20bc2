package character

import (
	"github.com/KirkDiggler/dnd-sheet/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
)

// Instance resolves an instance address (a class resource or a spell slot)
// to the stored instance. A field suffix is rejected.
func (r *Record) Instance(address string) (shared.Instance, error) {
	addr, err := shared.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	if addr.Field != "" {
		return nil, absent(address, "address names a field, not an instance")
	}
	return r.instanceAt(addr)
}

func (r *Record) instanceAt(addr shared.Address) (shared.Instance, error) {
	if addr.IsSpellSlot() {
		slot, ok := r.Spells.Slots[addr.SlotLevel]
		if !ok || slot == nil {
			return nil, absent(addr.String(), "no spell slot at this level")
		}
		return slot, nil
	}

	inst, ok := r.ClassResources[addr.Class][addr.Name]
	if !ok || inst == nil {
		return nil, absent(addr.String(), "no resource at this address")
	}
	return inst, nil
}

// CounterAt resolves address to a counter
func (r *Record) CounterAt(address string) (*shared.Counter, error) {
	inst, err := r.Instance(address)
	if err != nil {
		return nil, err
	}
	counter, ok := inst.(*shared.Counter)
	if !ok {
		return nil, misShaped(address, shared.KindCounter, inst.Kind())
	}
	return counter, nil
}

// ToggleAt resolves address to a toggle
func (r *Record) ToggleAt(address string) (*shared.Toggle, error) {
	inst, err := r.Instance(address)
	if err != nil {
		return nil, err
	}
	toggle, ok := inst.(*shared.Toggle)
	if !ok {
		return nil, misShaped(address, shared.KindToggle, inst.Kind())
	}
	return toggle, nil
}

// PoolAt resolves address to a pool
func (r *Record) PoolAt(address string) (*shared.Pool, error) {
	inst, err := r.Instance(address)
	if err != nil {
		return nil, err
	}
	pool, ok := inst.(*shared.Pool)
	if !ok {
		return nil, misShaped(address, shared.KindPool, inst.Kind())
	}
	return pool, nil
}

// Bind checks the record against the schema: each row of the current class
// must resolve to an instance of its kind, and instances of other classes,
// when present, must have their row's kind.
func (r *Record) Bind(schema *rulebook.Schema) error {
	if _, ok := schema.Table(r.Identity.Class); !ok {
		return dnderr.InvalidArgumentf("class %q is not configured", r.Identity.Class)
	}

	for _, class := range schema.Classes() {
		for _, row := range schema.ForClass(class) {
			if !row.Stateful() {
				continue
			}
			inst, err := r.Instance(row.Address)
			if err != nil {
				if class != r.Identity.Class && dnderr.IsInvalidAddress(err) {
					continue
				}
				return err
			}
			if inst.Kind() != row.Kind {
				return misShaped(row.Address, row.Kind, inst.Kind())
			}
		}
	}
	return nil
}

func absent(address, reason string) *dnderr.Error {
	return dnderr.InvalidAddressf("%s: %s", address, reason).
		WithMeta("address", address)
}

func misShaped(address string, want, got shared.Kind) *dnderr.Error {
	return dnderr.InvalidAddressf("%s: expected a %s, found a %s", address, want, got).
		WithMeta("address", address).
		WithMeta("kind", string(got))
}
