package dice

import (
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
	toolkit "github.com/KirkDiggler/rpg-toolkit/dice"
)

// randomRoller rolls with the rpg-toolkit dice package
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

func (r *randomRoller) Roll(sides int, mode Mode) (*RollResult, error) {
	if err := validate(sides, mode); err != nil {
		return nil, err
	}

	rolls := make([]int, diceFor(mode))
	for i := range rolls {
		roll, err := toolkit.NewRoll(1, sides)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to roll d%d", sides)
		}
		rolls[i] = roll.GetValue()
	}
	return NewResult(sides, mode, rolls)
}
