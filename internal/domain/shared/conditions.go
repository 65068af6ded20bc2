package shared

// Condition is a label from the fixed 5e condition vocabulary
type Condition string

const (
	ConditionBlinded       Condition = "Blinded"
	ConditionCharmed       Condition = "Charmed"
	ConditionDeafened      Condition = "Deafened"
	ConditionFrightened    Condition = "Frightened"
	ConditionGrappled      Condition = "Grappled"
	ConditionIncapacitated Condition = "Incapacitated"
	ConditionInvisible     Condition = "Invisible"
	ConditionParalyzed     Condition = "Paralyzed"
	ConditionPetrified     Condition = "Petrified"
	ConditionPoisoned      Condition = "Poisoned"
	ConditionProne         Condition = "Prone"
	ConditionRestrained    Condition = "Restrained"
	ConditionStunned       Condition = "Stunned"
	ConditionUnconscious   Condition = "Unconscious"
)

// Conditions lists the vocabulary in display order
var Conditions = []Condition{
	ConditionBlinded,
	ConditionCharmed,
	ConditionDeafened,
	ConditionFrightened,
	ConditionGrappled,
	ConditionIncapacitated,
	ConditionInvisible,
	ConditionParalyzed,
	ConditionPetrified,
	ConditionPoisoned,
	ConditionProne,
	ConditionRestrained,
	ConditionStunned,
	ConditionUnconscious,
}

// IsValid reports whether c belongs to the vocabulary
func (c Condition) IsValid() bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}
	return false
}
