package shared

import (
	"strconv"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/path"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
)

const (
	// ResourcesRoot prefixes every class resource address
	ResourcesRoot = "classResources"

	// SpellSlotsRoot prefixes every spell slot address
	SpellSlotsRoot = "spells.slots"

	MinSpellLevel = 1
	MaxSpellLevel = 9
)

// Address is a parsed resource address. Exactly one of the two forms is set:
// a class resource (Class, Name and optional Field) or a spell slot (SlotLevel).
type Address struct {
	Class     Class
	Name      string
	Field     string
	SlotLevel int
}

// IsSpellSlot reports whether the address names a spell slot
func (a Address) IsSpellSlot() bool {
	return a.SlotLevel != 0
}

// Instance returns the address of the whole instance, without Field
func (a Address) Instance() Address {
	a.Field = ""
	return a
}

func (a Address) String() string {
	if a.IsSpellSlot() {
		return SpellSlotAddress(a.SlotLevel)
	}
	if a.Field != "" {
		return path.Join(ResourcesRoot, string(a.Class), a.Name, a.Field)
	}
	return path.Join(ResourcesRoot, string(a.Class), a.Name)
}

// ResourceAddress builds "classResources.<class>.<name>"
func ResourceAddress(class Class, name string) string {
	return path.Join(ResourcesRoot, string(class), name)
}

// SpellSlotAddress builds "spells.slots.<level>"
func SpellSlotAddress(level int) string {
	return SpellSlotsRoot + path.Separator + strconv.Itoa(level)
}

// ParseAddress validates and splits a resource or spell slot address
func ParseAddress(address string) (Address, error) {
	segments := path.Split(address)
	invalid := func(reason string) (Address, error) {
		return Address{}, dnderr.InvalidAddressf("address %q: %s", address, reason).
			WithMeta("address", address)
	}

	if len(segments) == 0 {
		return invalid("empty")
	}

	switch segments[0] {
	case ResourcesRoot:
		if len(segments) < 3 || len(segments) > 4 {
			return invalid("expected classResources.<class>.<name>[.<field>]")
		}
		class := Class(segments[1])
		if !class.IsValid() {
			return invalid("unknown class " + segments[1])
		}
		addr := Address{Class: class, Name: segments[2]}
		if len(segments) == 4 {
			addr.Field = segments[3]
		}
		return addr, nil

	case "spells":
		if len(segments) != 3 || segments[1] != "slots" {
			return invalid("expected spells.slots.<level>")
		}
		level, err := strconv.Atoi(segments[2])
		if err != nil || level < MinSpellLevel || level > MaxSpellLevel {
			return invalid("spell slot level must be 1-9")
		}
		return Address{SlotLevel: level}, nil
	}

	return invalid("not a resource address")
}
