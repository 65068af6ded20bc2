package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/dnd-sheet/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetNextRoll queues one roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the queued results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

func (m *ManualMockRoller) next(n int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex+n > len(m.rolls) {
		return nil, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}
	out := append([]int(nil), m.rolls[m.rollIndex:m.rollIndex+n]...)
	m.rollIndex += n
	return out, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(sides int, mode dice.Mode) (*dice.RollResult, error) {
	n := 1
	if mode == dice.ModeAdvantage || mode == dice.ModeDisadvantage {
		n = 2
	}
	rolls, err := m.next(n)
	if err != nil {
		return nil, err
	}
	return dice.NewResult(sides, mode, rolls)
}
