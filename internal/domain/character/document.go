package character

import (
	"encoding/json"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/path"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
)

// ToDocument returns the record as a generic JSON document
func (r *Record) ToDocument() (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to encode record")
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to encode record")
	}
	return doc, nil
}

// FromDocument decodes a generic document into a record. The result is not
// normalized.
func FromDocument(doc map[string]any) (*Record, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "invalid document")
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "invalid document")
	}
	return &r, nil
}

// Migrate upgrades older document shapes in place:
//   - a missing meta block gets version 1
//   - counters stored as {uses, max} lose "uses" and start unused
//   - skill entries keyed "prof" are renamed to "proficient"
//   - a missing condition list becomes empty
func Migrate(doc map[string]any) {
	if doc == nil {
		return
	}

	if v, ok := path.Get(doc, "meta.version"); !ok || v == nil {
		path.Set(doc, "meta.version", CurrentVersion)
	}

	if resources, ok := doc[shared.ResourcesRoot].(map[string]any); ok {
		for class, set := range resources {
			names, ok := set.(map[string]any)
			if !ok {
				continue
			}
			for name := range names {
				address := path.Join(shared.ResourcesRoot, class, name)
				if _, legacy := path.Get(doc, path.Join(address, "uses")); !legacy {
					continue
				}
				path.Delete(doc, path.Join(address, "uses"))
				if _, ok := path.Get(doc, path.Join(address, "used")); !ok {
					path.Set(doc, path.Join(address, "used"), 0)
				}
			}
		}
	}

	if skills, ok := doc["skills"].(map[string]any); ok {
		for name := range skills {
			address := path.Join("skills", name)
			prof, ok := path.Get(doc, path.Join(address, "prof"))
			if !ok {
				continue
			}
			path.Delete(doc, path.Join(address, "prof"))
			if _, ok := path.Get(doc, path.Join(address, "proficient")); !ok {
				path.Set(doc, path.Join(address, "proficient"), prof)
			}
		}
	}

	if v, ok := path.Get(doc, "combat.conditions"); !ok || v == nil {
		path.Set(doc, "combat.conditions", []any{})
	}
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	if r.Combat.Conditions != nil {
		cp.Combat.Conditions = append(make([]shared.Condition, 0, len(r.Combat.Conditions)), r.Combat.Conditions...)
	}
	if r.Log != nil {
		cp.Log = append(make(ActionLog, 0, len(r.Log)), r.Log...)
	}

	if r.Abilities != nil {
		cp.Abilities = make(map[shared.Ability]int, len(r.Abilities))
		for k, v := range r.Abilities {
			cp.Abilities[k] = v
		}
	}
	if r.Saves != nil {
		cp.Saves = make(map[shared.Ability]bool, len(r.Saves))
		for k, v := range r.Saves {
			cp.Saves[k] = v
		}
	}
	if r.Skills != nil {
		cp.Skills = make(map[string]*SkillProficiency, len(r.Skills))
		for k, v := range r.Skills {
			if v == nil {
				cp.Skills[k] = nil
				continue
			}
			entry := *v
			cp.Skills[k] = &entry
		}
	}
	if r.Spells.Slots != nil {
		cp.Spells.Slots = make(map[int]*shared.Counter, len(r.Spells.Slots))
		for level, slot := range r.Spells.Slots {
			if slot == nil {
				cp.Spells.Slots[level] = nil
				continue
			}
			s := *slot
			cp.Spells.Slots[level] = &s
		}
	}
	if r.ClassResources != nil {
		cp.ClassResources = make(map[shared.Class]shared.ResourceSet, len(r.ClassResources))
		for class, set := range r.ClassResources {
			cp.ClassResources[class] = set.Clone()
		}
	}
	return &cp
}
