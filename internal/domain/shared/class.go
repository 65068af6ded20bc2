package shared

// Class is one of the character classes the sheet supports
type Class string

const (
	ClassBarbarian Class = "Barbarian"
	ClassFighter   Class = "Fighter"
	ClassMonk      Class = "Monk"
	ClassPaladin   Class = "Paladin"
	ClassCleric    Class = "Cleric"
	ClassWizard    Class = "Wizard"
)

// Classes lists the supported classes in menu order
var Classes = []Class{
	ClassBarbarian,
	ClassFighter,
	ClassMonk,
	ClassPaladin,
	ClassCleric,
	ClassWizard,
}

// IsValid reports whether c is a supported class
func (c Class) IsValid() bool {
	for _, known := range Classes {
		if c == known {
			return true
		}
	}
	return false
}

// CasterType tags how a character casts spells
type CasterType string

const (
	CasterNone CasterType = "none"
	CasterFull CasterType = "full"
	CasterHalf CasterType = "half"
	CasterPact CasterType = "pact"
)

// IsValid reports whether t is a known caster type
func (t CasterType) IsValid() bool {
	switch t {
	case CasterNone, CasterFull, CasterHalf, CasterPact:
		return true
	}
	return false
}
