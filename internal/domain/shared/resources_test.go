package shared_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestHPResource_Adjust(t *testing.T) {
	tests := []struct {
		name     string
		hp       shared.HPResource
		delta    int
		expected shared.HPResource
	}{
		{
			name:     "damage within range",
			hp:       shared.HPResource{Max: 20, Current: 12},
			delta:    -5,
			expected: shared.HPResource{Max: 20, Current: 7},
		},
		{
			name:     "damage below zero clamps to zero",
			hp:       shared.HPResource{Max: 20, Current: 0},
			delta:    -1,
			expected: shared.HPResource{Max: 20, Current: 0},
		},
		{
			name:     "healing past max clamps to max",
			hp:       shared.HPResource{Max: 20, Current: 18, Temp: 3},
			delta:    5,
			expected: shared.HPResource{Max: 20, Current: 20, Temp: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hp := tt.hp
			hp.Adjust(tt.delta)
			assert.Equal(t, tt.expected, hp)
		})
	}
}

func TestHPResource_RestoreAndNormalize(t *testing.T) {
	hp := shared.HPResource{Max: 20, Current: 5, Temp: 4}
	hp.Restore()
	assert.Equal(t, shared.HPResource{Max: 20, Current: 20}, hp)

	hp = shared.HPResource{Max: -3, Current: 7, Temp: -2}
	hp.Normalize()
	assert.Equal(t, shared.HPResource{}, hp)
}

func TestHitDiceResource_RecoverHalfSpent(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		remaining int
		expected  int
		recovered int
	}{
		{name: "all spent", total: 4, remaining: 0, expected: 2, recovered: 2},
		{name: "one spent rounds down to zero", total: 4, remaining: 3, expected: 3, recovered: 0},
		{name: "none spent", total: 5, remaining: 5, expected: 5, recovered: 0},
		{name: "odd spent", total: 5, remaining: 0, expected: 2, recovered: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hd := shared.HitDiceResource{Die: "d10", Total: tt.total, Remaining: tt.remaining}
			got := hd.RecoverHalfSpent()
			assert.Equal(t, tt.recovered, got)
			assert.Equal(t, tt.expected, hd.Remaining)
			assert.LessOrEqual(t, hd.Remaining, hd.Total)
		})
	}
}

func TestHitDiceResource_Adjust(t *testing.T) {
	hd := shared.HitDiceResource{Die: "d8", Total: 3, Remaining: 1}
	hd.Adjust(-1)
	hd.Adjust(-1)
	assert.Equal(t, 0, hd.Remaining)
	hd.Adjust(10)
	assert.Equal(t, 3, hd.Remaining)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, shared.Clamp(-4, 0, 10))
	assert.Equal(t, 10, shared.Clamp(14, 0, 10))
	assert.Equal(t, 7, shared.Clamp(7, 0, 10))
	assert.Equal(t, 0, shared.Clamp(3, 0, -1))
}

func TestModifier(t *testing.T) {
	cases := map[int]int{1: -5, 7: -2, 8: -1, 9: -1, 10: 0, 11: 0, 15: 2, 20: 5}
	for score, want := range cases {
		assert.Equal(t, want, shared.Modifier(score), "score %d", score)
	}
}
