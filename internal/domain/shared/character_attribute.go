package shared

// Ability is one of the six ability scores
type Ability string

const (
	AbilityStrength     Ability = "STR"
	AbilityDexterity    Ability = "DEX"
	AbilityConstitution Ability = "CON"
	AbilityIntelligence Ability = "INT"
	AbilityWisdom       Ability = "WIS"
	AbilityCharisma     Ability = "CHA"
)

// Abilities lists every ability in sheet order
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// IsValid reports whether a is one of the six abilities
func (a Ability) IsValid() bool {
	for _, known := range Abilities {
		if a == known {
			return true
		}
	}
	return false
}

// Modifier returns the ability modifier for a score
func Modifier(score int) int {
	// floor division so 9 -> -1, 8 -> -1, 7 -> -2
	diff := score - 10
	if diff < 0 && diff%2 != 0 {
		return diff/2 - 1
	}
	return diff / 2
}
