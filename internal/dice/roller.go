package dice

import (
	"fmt"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
)

// Mode selects how many dice are rolled and which one counts
type Mode string

const (
	ModeNormal       Mode = "normal"
	ModeAdvantage    Mode = "advantage"
	ModeDisadvantage Mode = "disadvantage"
)

// IsValid reports whether m is a known mode
func (m Mode) IsValid() bool {
	switch m {
	case ModeNormal, ModeAdvantage, ModeDisadvantage:
		return true
	}
	return false
}

// Sides lists the dice the sheet offers
var Sides = []int{4, 6, 8, 10, 12, 20, 100}

// Roller rolls a single die, twice when rolling with advantage or
// disadvantage
type Roller interface {
	Roll(sides int, mode Mode) (*RollResult, error)
}

// RollResult is one roll of a die
type RollResult struct {
	Sides  int
	Mode   Mode
	Rolls  []int
	Result int
}

// LogText formats the roll for the action log, e.g. "Rolled d20: 17 [4,17]"
func (r *RollResult) LogText() string {
	text := fmt.Sprintf("Rolled d%d: %d", r.Sides, r.Result)
	if len(r.Rolls) > 1 {
		parts := make([]string, len(r.Rolls))
		for i, roll := range r.Rolls {
			parts[i] = strconv.Itoa(roll)
		}
		text += " [" + strings.Join(parts, ",") + "]"
	}
	return text
}

// NewResult picks the counted die out of rolls for the mode
func NewResult(sides int, mode Mode, rolls []int) (*RollResult, error) {
	want := 1
	if mode != ModeNormal {
		want = 2
	}
	if len(rolls) != want {
		return nil, dnderr.InvalidArgumentf("%s roll needs %d dice, got %d", mode, want, len(rolls))
	}
	for _, roll := range rolls {
		if roll < 1 || roll > sides {
			return nil, dnderr.InvalidArgumentf("invalid roll %d for d%d", roll, sides)
		}
	}

	result := rolls[0]
	for _, roll := range rolls[1:] {
		if mode == ModeAdvantage && roll > result {
			result = roll
		}
		if mode == ModeDisadvantage && roll < result {
			result = roll
		}
	}

	return &RollResult{
		Sides:  sides,
		Mode:   mode,
		Rolls:  rolls,
		Result: result,
	}, nil
}

func validate(sides int, mode Mode) error {
	if sides < 2 {
		return dnderr.InvalidArgumentf("invalid die size d%d", sides)
	}
	if !mode.IsValid() {
		return dnderr.InvalidArgumentf("unknown roll mode %q", mode)
	}
	return nil
}

func diceFor(mode Mode) int {
	if mode == ModeNormal {
		return 1
	}
	return 2
}
