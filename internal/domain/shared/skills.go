package shared

// Skill pairs a skill name with its governing ability
type Skill struct {
	Name    string
	Ability Ability
}

// Skills is the standard 5e skill list
var Skills = []Skill{
	{Name: "Acrobatics", Ability: AbilityDexterity},
	{Name: "Animal Handling", Ability: AbilityWisdom},
	{Name: "Arcana", Ability: AbilityIntelligence},
	{Name: "Athletics", Ability: AbilityStrength},
	{Name: "Deception", Ability: AbilityCharisma},
	{Name: "History", Ability: AbilityIntelligence},
	{Name: "Insight", Ability: AbilityWisdom},
	{Name: "Intimidation", Ability: AbilityCharisma},
	{Name: "Investigation", Ability: AbilityIntelligence},
	{Name: "Medicine", Ability: AbilityWisdom},
	{Name: "Nature", Ability: AbilityIntelligence},
	{Name: "Perception", Ability: AbilityWisdom},
	{Name: "Performance", Ability: AbilityCharisma},
	{Name: "Persuasion", Ability: AbilityCharisma},
	{Name: "Religion", Ability: AbilityIntelligence},
	{Name: "Sleight of Hand", Ability: AbilityDexterity},
	{Name: "Stealth", Ability: AbilityDexterity},
	{Name: "Survival", Ability: AbilityWisdom},
}

// LookupSkill finds a skill by name
func LookupSkill(name string) (Skill, bool) {
	for _, s := range Skills {
		if s.Name == name {
			return s, true
		}
	}
	return Skill{}, false
}
