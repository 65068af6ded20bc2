package rulebook

import (
	"encoding/json"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
)

// DefaultTables returns the built-in 5e class tables
func DefaultTables() []ClassTable {
	return []ClassTable{
		{
			Class:      shared.ClassBarbarian,
			HitDie:     "d12",
			CasterType: shared.CasterNone,
			Rows: []Row{
				{
					Kind:    shared.KindCounter,
					Address: "classResources.Barbarian.rage",
					Label:   "Rages",
					Cadence: CadenceLongRest,
					Default: &shared.Counter{Max: 2},
				},
				{
					Kind:    shared.KindStatic,
					Address: "classResources.Barbarian.rageDamage",
					Label:   "Rage Damage Bonus shown when raging",
					Cadence: CadenceNone,
					Default: &shared.Static{Value: json.RawMessage("2")},
				},
			},
		},
		{
			Class:      shared.ClassFighter,
			HitDie:     "d10",
			CasterType: shared.CasterNone,
			Rows: []Row{
				{
					Kind:    shared.KindToggle,
					Address: "classResources.Fighter.secondWind",
					Label:   "Second Wind",
					Cadence: CadenceShortRest,
					Default: &shared.Toggle{Available: true},
				},
				{
					Kind:    shared.KindCounter,
					Address: "classResources.Fighter.actionSurge",
					Label:   "Action Surge",
					Cadence: CadenceShortRest,
					Default: &shared.Counter{Max: 1},
				},
				{
					Kind:    shared.KindCounter,
					Address: "classResources.Fighter.indomitable",
					Label:   "Indomitable",
					Cadence: CadenceLongRest,
					Default: &shared.Counter{Max: 1},
				},
			},
		},
		{
			Class:      shared.ClassMonk,
			HitDie:     "d8",
			CasterType: shared.CasterNone,
			Rows: []Row{
				{
					Kind:    shared.KindCounter,
					Address: "classResources.Monk.ki",
					Label:   "Ki Points",
					Cadence: CadenceShortRest,
					Default: &shared.Counter{Max: 1},
				},
			},
		},
		{
			Class:      shared.ClassPaladin,
			HitDie:     "d10",
			CasterType: shared.CasterHalf,
			Rows: []Row{
				{
					Kind:    shared.KindPool,
					Address: "classResources.Paladin.layOnHands",
					Label:   "Lay on Hands",
					Cadence: CadenceLongRest,
					Default: &shared.Pool{Max: 5, Remaining: 5},
				},
				{
					Kind:    shared.KindCounter,
					Address: "classResources.Paladin.channelDivinity",
					Label:   "Channel Divinity",
					Cadence: CadenceLongRest,
					Default: &shared.Counter{Max: 1},
				},
			},
		},
		{
			Class:      shared.ClassCleric,
			HitDie:     "d8",
			CasterType: shared.CasterFull,
			Rows: []Row{
				{
					Kind:    shared.KindCounter,
					Address: "classResources.Cleric.channelDivinity",
					Label:   "Channel Divinity",
					Cadence: CadenceShortRest,
					Default: &shared.Counter{Max: 1},
				},
			},
		},
		{
			Class:      shared.ClassWizard,
			HitDie:     "d6",
			CasterType: shared.CasterFull,
			Rows: []Row{
				{
					Kind:    shared.KindToggle,
					Address: "classResources.Wizard.arcaneRecovery",
					Label:   "Arcane Recovery Available",
					Cadence: CadenceLongRest,
					Default: &shared.Toggle{Available: true},
				},
			},
		},
	}
}

// Default returns the schema built from DefaultTables
func Default() *Schema {
	s, err := NewSchema(DefaultTables()...)
	if err != nil {
		panic("rulebook: built-in tables are invalid: " + err.Error())
	}
	return s
}
