// Package testutils holds record fixtures and Redis helpers shared by tests
package testutils

import (
	"testing"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	"github.com/stretchr/testify/require"
)

// CreateTestRecord creates a default record of the given class
func CreateTestRecord(t *testing.T, id string, class shared.Class) *character.Record {
	t.Helper()

	rec, err := character.New(rulebook.Default(), class, id)
	require.NoError(t, err)
	return rec
}

// CreateTestPaladin creates a level 5 paladin with spell slots and some
// resources spent
func CreateTestPaladin(t *testing.T, id string) *character.Record {
	t.Helper()

	rec := CreateTestRecord(t, id, shared.ClassPaladin)
	rec.Identity.Name = "Seraphine"
	rec.Identity.Race = "Dwarf"
	rec.SetLevel(5)
	rec.Combat.HP = shared.HPResource{Max: 44, Current: 32}
	rec.Combat.HitDice = shared.HitDiceResource{Die: "d10", Total: 5, Remaining: 2}
	rec.Combat.AC = 18

	require.NoError(t, rec.SetSpellSlotMax(1, 4))
	require.NoError(t, rec.SetSpellSlotMax(2, 2))
	rec.Spells.Slots[1].Used = 1

	pool, err := rec.PoolAt("classResources.Paladin.layOnHands")
	require.NoError(t, err)
	pool.SetMax(25)
	pool.SetRemaining(10)

	return rec
}
