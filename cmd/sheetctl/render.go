package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
)

const shownLogEntries = 5

func renderSheet(w io.Writer, schema *rulebook.Schema, rec *character.Record) {
	id := rec.Identity
	fmt.Fprintf(w, "%s (%s) - %s %s %d\n", id.Name, rec.Meta.ID, id.Race, id.Class, id.Level)

	hp := rec.Combat.HP
	hd := rec.Combat.HitDice
	fmt.Fprintf(w, "HP %d/%d", hp.Current, hp.Max)
	if hp.Temp > 0 {
		fmt.Fprintf(w, " (+%d temp)", hp.Temp)
	}
	fmt.Fprintf(w, "  Hit Dice %d/%d %s  AC %d  Speed %d  Prof +%d  Passive Perception %d\n",
		hd.Remaining, hd.Total, hd.Die, rec.Combat.AC, rec.Combat.Speed, rec.ProficiencyBonus, rec.PassivePerception())

	if len(rec.Combat.Conditions) > 0 {
		conds := make([]string, len(rec.Combat.Conditions))
		for i, c := range rec.Combat.Conditions {
			conds[i] = string(c)
		}
		fmt.Fprintf(w, "Conditions: %s\n", strings.Join(conds, ", "))
	}

	abilities := make([]string, len(shared.Abilities))
	for i, ab := range shared.Abilities {
		abilities[i] = fmt.Sprintf("%s %d (%+d)", ab, rec.Abilities[ab], rec.AbilityModifier(ab))
	}
	fmt.Fprintf(w, "%s\n", strings.Join(abilities, "  "))

	fmt.Fprintf(w, "\n%s resources\n", id.Class)
	for _, row := range schema.ForClass(id.Class) {
		fmt.Fprintf(w, "  %-40s %s\n", row.Label, renderInstance(rec, row))
	}

	if rec.IsCaster(schema) || len(rec.Spells.Slots) > 0 {
		fmt.Fprintf(w, "\nSpell slots (%s caster)\n", rec.Spells.CasterType)
		levels := make([]int, 0, len(rec.Spells.Slots))
		for level := range rec.Spells.Slots {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			slot := rec.Spells.Slots[level]
			fmt.Fprintf(w, "  Level %d  %d/%d\n", level, slot.Remaining(), slot.Max)
		}
	}

	if rec.Notes != "" {
		fmt.Fprintf(w, "\nNotes\n  %s\n", rec.Notes)
	}

	if len(rec.Log) > 0 {
		fmt.Fprintf(w, "\nRecent actions\n")
		renderLog(w, rec.Log, shownLogEntries)
	}
}

func renderInstance(rec *character.Record, row rulebook.Row) string {
	inst, err := rec.Instance(row.Address)
	if err != nil {
		return "-"
	}

	var state string
	switch v := inst.(type) {
	case *shared.Counter:
		state = fmt.Sprintf("%d/%d", v.Remaining(), v.Max)
	case *shared.Toggle:
		state = "spent"
		if v.Available {
			state = "available"
		}
	case *shared.Pool:
		state = fmt.Sprintf("%d/%d", v.Remaining, v.Max)
	case *shared.Static:
		return string(v.Value)
	}
	if row.Cadence != rulebook.CadenceNone {
		state += fmt.Sprintf(" (%s)", row.Cadence)
	}
	return state
}

func renderLog(w io.Writer, log character.ActionLog, limit int) {
	for i, entry := range log {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Fprintf(w, "  %s\n", entry)
	}
}
