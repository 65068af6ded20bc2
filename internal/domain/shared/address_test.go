package shared_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		expected shared.Address
	}{
		{
			name:     "class resource",
			address:  "classResources.Monk.ki",
			expected: shared.Address{Class: shared.ClassMonk, Name: "ki"},
		},
		{
			name:     "pool field",
			address:  "classResources.Paladin.layOnHands.remaining",
			expected: shared.Address{Class: shared.ClassPaladin, Name: "layOnHands", Field: "remaining"},
		},
		{
			name:     "spell slot",
			address:  "spells.slots.3",
			expected: shared.Address{SlotLevel: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := shared.ParseAddress(tt.address)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr)
			assert.Equal(t, tt.address, addr.String())
		})
	}
}

func TestParseAddress_Invalid(t *testing.T) {
	for _, address := range []string{
		"",
		"combat.hp",
		"classResources.Bard.inspiration",
		"classResources.Monk",
		"classResources.Monk.ki.max.extra",
		"spells.slots.0",
		"spells.slots.10",
		"spells.slots.one",
		"spells.casterType",
	} {
		t.Run(address, func(t *testing.T) {
			_, err := shared.ParseAddress(address)
			require.Error(t, err)
			assert.True(t, dnderr.IsInvalidAddress(err))
		})
	}
}

func TestAddress_Instance(t *testing.T) {
	addr, err := shared.ParseAddress("classResources.Paladin.layOnHands.max")
	require.NoError(t, err)
	assert.Equal(t, "classResources.Paladin.layOnHands", addr.Instance().String())
	assert.Equal(t, "classResources.Paladin.layOnHands", shared.ResourceAddress(shared.ClassPaladin, "layOnHands"))
}
