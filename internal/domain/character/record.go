package character

import (
	"github.com/KirkDiggler/dnd-sheet/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
)

const (
	// CurrentVersion is the document version written by this package
	CurrentVersion = 1

	MinLevel = 1
	MaxLevel = 20
)

// Record is the full state of one tracked character
type Record struct {
	Meta             Meta                                `json:"meta"`
	Identity         Identity                            `json:"identity"`
	Combat           Combat                              `json:"combat"`
	Abilities        map[shared.Ability]int              `json:"abilities"`
	ProficiencyBonus int                                 `json:"proficiencyBonus"`
	Saves            map[shared.Ability]bool             `json:"saves"`
	Skills           map[string]*SkillProficiency        `json:"skills"`
	Spells           Spells                              `json:"spells"`
	ClassResources   map[shared.Class]shared.ResourceSet `json:"classResources"`
	Notes            string                              `json:"notes"`
	Log              ActionLog                           `json:"log"`
}

// Meta identifies a stored record
type Meta struct {
	Version int    `json:"version"`
	ID      string `json:"id,omitempty"`
}

type Identity struct {
	Name       string       `json:"name"`
	Class      shared.Class `json:"class"`
	Level      int          `json:"level"`
	Race       string       `json:"race"`
	Background string       `json:"background"`
	Alignment  string       `json:"alignment"`
}

type Combat struct {
	AC         int                    `json:"ac"`
	Initiative int                    `json:"initiative"`
	Speed      int                    `json:"speed"`
	HP         shared.HPResource      `json:"hp"`
	HitDice    shared.HitDiceResource `json:"hitDice"`
	Conditions []shared.Condition     `json:"conditions"`
}

// SkillProficiency marks training in one skill
type SkillProficiency struct {
	Proficient bool `json:"proficient"`
	Expertise  bool `json:"expertise"`
}

// Spells holds the caster tag and the slot table keyed by slot level
type Spells struct {
	CasterType shared.CasterType       `json:"casterType"`
	Slots      map[int]*shared.Counter `json:"slots"`
}

// ProficiencyBonusFor returns ceil(level/4)+1
func ProficiencyBonusFor(level int) int {
	level = shared.Clamp(level, MinLevel, MaxLevel)
	return (level+3)/4 + 1
}

// New builds a defaulted level 1 record of the given class. Only that
// class's resource instances are seeded.
func New(schema *rulebook.Schema, class shared.Class, id string) (*Record, error) {
	table, ok := schema.Table(class)
	if !ok {
		return nil, dnderr.InvalidArgumentf("class %q is not configured", class)
	}

	r := &Record{
		Meta: Meta{Version: CurrentVersion, ID: id},
		Identity: Identity{
			Name:  "New Hero",
			Class: class,
			Level: MinLevel,
			Race:  "Human",
		},
		Combat: Combat{
			AC:         10,
			Speed:      30,
			HP:         shared.HPResource{Max: 10, Current: 10},
			HitDice:    shared.HitDiceResource{Die: table.HitDie, Total: 1, Remaining: 1},
			Conditions: []shared.Condition{},
		},
		Abilities: map[shared.Ability]int{
			shared.AbilityStrength:     15,
			shared.AbilityDexterity:    14,
			shared.AbilityConstitution: 14,
			shared.AbilityIntelligence: 8,
			shared.AbilityWisdom:       10,
			shared.AbilityCharisma:     10,
		},
		ProficiencyBonus: ProficiencyBonusFor(MinLevel),
		Saves:            make(map[shared.Ability]bool, len(shared.Abilities)),
		Skills:           make(map[string]*SkillProficiency),
		Spells: Spells{
			CasterType: shared.CasterNone,
			Slots:      make(map[int]*shared.Counter),
		},
		ClassResources: map[shared.Class]shared.ResourceSet{
			class: schema.Seed(class),
		},
		Log: ActionLog{},
	}
	for _, ability := range shared.Abilities {
		r.Saves[ability] = ability == shared.AbilityStrength || ability == shared.AbilityConstitution
	}
	return r, nil
}

// SetClass switches the active class. Instances of other classes are kept;
// rows of the new class that have no instance yet are seeded.
func (r *Record) SetClass(schema *rulebook.Schema, class shared.Class) error {
	if _, ok := schema.Table(class); !ok {
		return dnderr.InvalidArgumentf("class %q is not configured", class)
	}
	r.Identity.Class = class
	r.SeedClass(schema)
	return nil
}

// SeedClass adds default instances for current class rows the record lacks
func (r *Record) SeedClass(schema *rulebook.Schema) {
	if r.ClassResources == nil {
		r.ClassResources = make(map[shared.Class]shared.ResourceSet)
	}
	set := r.ClassResources[r.Identity.Class]
	if set == nil {
		set = make(shared.ResourceSet)
		r.ClassResources[r.Identity.Class] = set
	}
	for name, inst := range schema.Seed(r.Identity.Class) {
		if _, ok := set[name]; !ok {
			set[name] = inst
		}
	}
}

// IsCaster reports whether the spell slot panel applies to the record
func (r *Record) IsCaster(schema *rulebook.Schema) bool {
	if r.Spells.CasterType != "" && r.Spells.CasterType != shared.CasterNone {
		return true
	}
	table, ok := schema.Table(r.Identity.Class)
	return ok && table.IsCaster()
}

// SetLevel clamps level to 1-20 and keeps the proficiency bonus in sync
func (r *Record) SetLevel(level int) {
	r.Identity.Level = shared.Clamp(level, MinLevel, MaxLevel)
	r.ProficiencyBonus = ProficiencyBonusFor(r.Identity.Level)
}

func (r *Record) AdjustHP(delta int) {
	r.Combat.HP.Adjust(delta)
}

// SetMaxHP sets max HP and pulls current HP down if needed
func (r *Record) SetMaxHP(max int) {
	r.Combat.HP.Max = max
	r.Combat.HP.Normalize()
}

func (r *Record) SetTempHP(temp int) {
	r.Combat.HP.Temp = temp
	r.Combat.HP.Normalize()
}

func (r *Record) AdjustHitDice(delta int) {
	r.Combat.HitDice.Adjust(delta)
}

// SetCondition adds or removes a condition label
func (r *Record) SetCondition(cond shared.Condition, on bool) error {
	if !cond.IsValid() {
		return dnderr.InvalidArgumentf("unknown condition %q", cond)
	}

	kept := r.Combat.Conditions[:0:0]
	for _, c := range r.Combat.Conditions {
		if c != cond {
			kept = append(kept, c)
		}
	}
	if on {
		kept = append(kept, cond)
	}
	r.Combat.Conditions = kept
	return nil
}

// HasCondition reports whether cond is active
func (r *Record) HasCondition(cond shared.Condition) bool {
	for _, c := range r.Combat.Conditions {
		if c == cond {
			return true
		}
	}
	return false
}

// Skill returns the proficiency entry for a known skill, creating it on
// first access
func (r *Record) Skill(name string) (*SkillProficiency, error) {
	if _, ok := shared.LookupSkill(name); !ok {
		return nil, dnderr.InvalidArgumentf("unknown skill %q", name)
	}
	if r.Skills == nil {
		r.Skills = make(map[string]*SkillProficiency)
	}
	entry, ok := r.Skills[name]
	if !ok || entry == nil {
		entry = &SkillProficiency{}
		r.Skills[name] = entry
	}
	return entry, nil
}

// AbilityModifier returns the modifier of one ability score
func (r *Record) AbilityModifier(ability shared.Ability) int {
	return shared.Modifier(r.Abilities[ability])
}

// SaveBonus returns the saving throw bonus of an ability
func (r *Record) SaveBonus(ability shared.Ability) int {
	bonus := r.AbilityModifier(ability)
	if r.Saves[ability] {
		bonus += r.ProficiencyBonus
	}
	return bonus
}

// SkillBonus returns the check bonus of a skill. Expertise doubles the
// proficiency bonus.
func (r *Record) SkillBonus(name string) int {
	skill, ok := shared.LookupSkill(name)
	if !ok {
		return 0
	}
	bonus := r.AbilityModifier(skill.Ability)
	entry := r.Skills[name]
	if entry == nil || !entry.Proficient {
		return bonus
	}
	bonus += r.ProficiencyBonus
	if entry.Expertise {
		bonus += r.ProficiencyBonus
	}
	return bonus
}

// PassivePerception is 10 plus the Perception bonus
func (r *Record) PassivePerception() int {
	return 10 + r.SkillBonus("Perception")
}

// SetSpellSlotMax sets the capacity of one slot level, creating the level if
// absent. Used is pulled down when it would exceed the new max.
func (r *Record) SetSpellSlotMax(level, max int) error {
	if level < shared.MinSpellLevel || level > shared.MaxSpellLevel {
		return dnderr.InvalidArgumentf("spell slot level %d out of range", level)
	}
	if max < 1 {
		return dnderr.InvalidArgumentf("spell slot max must be positive, got %d", max)
	}
	if r.Spells.Slots == nil {
		r.Spells.Slots = make(map[int]*shared.Counter)
	}
	slot, ok := r.Spells.Slots[level]
	if !ok || slot == nil {
		r.Spells.Slots[level] = &shared.Counter{Max: max}
		return nil
	}
	slot.Max = max
	slot.Normalize()
	return nil
}

// ResetSpellSlots marks every slot unused
func (r *Record) ResetSpellSlots() {
	for _, slot := range r.Spells.Slots {
		if slot != nil {
			slot.Reset()
		}
	}
}

// Normalize re-establishes every record invariant. It is idempotent.
func (r *Record) Normalize() {
	if r.Meta.Version == 0 {
		r.Meta.Version = CurrentVersion
	}
	r.SetLevel(r.Identity.Level)

	r.Combat.HP.Normalize()
	r.Combat.HitDice.Normalize()
	r.Combat.Conditions = dedupeConditions(r.Combat.Conditions)

	if r.Abilities == nil {
		r.Abilities = make(map[shared.Ability]int, len(shared.Abilities))
	}
	if r.Saves == nil {
		r.Saves = make(map[shared.Ability]bool, len(shared.Abilities))
	}
	for _, ability := range shared.Abilities {
		if r.Abilities[ability] < 0 {
			r.Abilities[ability] = 0
		}
		if _, ok := r.Abilities[ability]; !ok {
			r.Abilities[ability] = 10
		}
		if _, ok := r.Saves[ability]; !ok {
			r.Saves[ability] = false
		}
	}

	if r.Skills == nil {
		r.Skills = make(map[string]*SkillProficiency)
	}
	for name, entry := range r.Skills {
		if entry == nil {
			r.Skills[name] = &SkillProficiency{}
		}
	}

	if r.Spells.CasterType == "" {
		r.Spells.CasterType = shared.CasterNone
	}
	if r.Spells.Slots == nil {
		r.Spells.Slots = make(map[int]*shared.Counter)
	}
	for level, slot := range r.Spells.Slots {
		if slot == nil {
			delete(r.Spells.Slots, level)
			continue
		}
		slot.Normalize()
	}

	if r.ClassResources == nil {
		r.ClassResources = make(map[shared.Class]shared.ResourceSet)
	}
	for _, set := range r.ClassResources {
		for _, inst := range set {
			normalizeInstance(inst)
		}
	}

	if r.Log == nil {
		r.Log = ActionLog{}
	}
	r.Log.truncate()
}

func normalizeInstance(inst shared.Instance) {
	switch v := inst.(type) {
	case *shared.Counter:
		v.Normalize()
	case *shared.Pool:
		v.Normalize()
	case *shared.Toggle, *shared.Static:
	}
}

func dedupeConditions(conds []shared.Condition) []shared.Condition {
	out := make([]shared.Condition, 0, len(conds))
	seen := make(map[shared.Condition]bool, len(conds))
	for _, c := range conds {
		if !c.IsValid() || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Validate reports structural problems that normalization cannot repair
func (r *Record) Validate() error {
	invalid := func(format string, args ...any) error {
		return dnderr.Validationf(format, args...)
	}

	if !r.Identity.Class.IsValid() {
		return invalid("unknown class %q", r.Identity.Class)
	}
	if r.Spells.CasterType != "" && !r.Spells.CasterType.IsValid() {
		return invalid("unknown caster type %q", r.Spells.CasterType)
	}
	for _, c := range r.Combat.Conditions {
		if !c.IsValid() {
			return invalid("unknown condition %q", c)
		}
	}
	for ability := range r.Abilities {
		if !ability.IsValid() {
			return invalid("unknown ability %q", ability)
		}
	}
	for ability := range r.Saves {
		if !ability.IsValid() {
			return invalid("unknown ability %q", ability)
		}
	}
	if r.Combat.HP.Max < 0 {
		return invalid("negative max HP %d", r.Combat.HP.Max)
	}
	if r.Combat.HitDice.Total < 0 {
		return invalid("negative hit dice total %d", r.Combat.HitDice.Total)
	}
	for level, slot := range r.Spells.Slots {
		if level < shared.MinSpellLevel || level > shared.MaxSpellLevel {
			return invalid("spell slot level %d out of range", level)
		}
		if slot != nil && slot.Max < 0 {
			return invalid("spell slot %d has negative max", level)
		}
	}
	for class, set := range r.ClassResources {
		if !class.IsValid() {
			return invalid("resources for unknown class %q", class)
		}
		for name, inst := range set {
			if inst == nil {
				return invalid("resource %s is empty", shared.ResourceAddress(class, name))
			}
			switch v := inst.(type) {
			case *shared.Counter:
				if v.Max < 0 {
					return invalid("resource %s has negative max", shared.ResourceAddress(class, name))
				}
			case *shared.Pool:
				if v.Max < 0 {
					return invalid("resource %s has negative max", shared.ResourceAddress(class, name))
				}
			}
		}
	}
	return nil
}
