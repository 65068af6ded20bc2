package rulebook

import (
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
)

// Row describes one resource panel entry of a class
type Row struct {
	Kind    shared.Kind
	Address string
	Label   string
	Cadence Cadence

	// Default seeds the instance when a character takes the class.
	// Static rows may leave it nil.
	Default shared.Instance
}

// Name returns the resource name segment of the row's address
func (r Row) Name() string {
	addr, err := shared.ParseAddress(r.Address)
	if err != nil {
		return ""
	}
	return addr.Name
}

// Stateful reports whether the row stores an instance in the record
func (r Row) Stateful() bool {
	return r.Default != nil
}

func (r Row) clone() Row {
	r.Default = shared.CloneInstance(r.Default)
	return r
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.clone())
	}
	return out
}

// Schema is the validated, read-only set of class tables. Everything it
// hands out is a copy.
type Schema struct {
	tables    []ClassTable
	byClass   map[shared.Class]*ClassTable
	byAddress map[string]Row
}

// NewSchema validates tables and builds a schema. Every row address must
// parse, belong to its table's class and be unique; each default must have
// the row's kind.
func NewSchema(tables ...ClassTable) (*Schema, error) {
	s := &Schema{
		byClass:   make(map[shared.Class]*ClassTable, len(tables)),
		byAddress: make(map[string]Row),
	}

	seen := make(map[shared.Class]bool, len(tables))
	for _, table := range tables {
		if !table.Class.IsValid() {
			return nil, dnderr.InvalidArgumentf("unknown class %q", table.Class)
		}
		if seen[table.Class] {
			return nil, dnderr.InvalidArgumentf("class %q configured twice", table.Class)
		}
		seen[table.Class] = true
		if !table.CasterType.IsValid() {
			return nil, dnderr.InvalidArgumentf("class %q: unknown caster type %q", table.Class, table.CasterType)
		}

		for _, row := range table.Rows {
			if err := validateRow(table.Class, row); err != nil {
				return nil, err
			}
			if row.Address == "" {
				continue
			}
			if _, dup := s.byAddress[row.Address]; dup {
				return nil, dnderr.InvalidAddressf("address %q configured twice", row.Address).
					WithMeta("address", row.Address)
			}
			s.byAddress[row.Address] = row.clone()
		}

		table.Rows = cloneRows(table.Rows)
		s.tables = append(s.tables, table)
	}

	for i := range s.tables {
		s.byClass[s.tables[i].Class] = &s.tables[i]
	}
	return s, nil
}

func validateRow(class shared.Class, row Row) error {
	if !row.Cadence.IsValid() {
		return dnderr.InvalidArgumentf("row %q: unknown cadence %q", row.Label, row.Cadence)
	}

	if row.Kind == shared.KindStatic && row.Address == "" {
		// display-only text with no stored value
		if row.Cadence != CadenceNone || row.Default != nil {
			return dnderr.InvalidArgumentf("static row %q without an address cannot hold state", row.Label)
		}
		return nil
	}

	addr, err := shared.ParseAddress(row.Address)
	if err != nil {
		return err
	}
	if addr.IsSpellSlot() || addr.Field != "" {
		return dnderr.InvalidAddressf("row %q: address %q must name a class resource", row.Label, row.Address).
			WithMeta("address", row.Address)
	}
	if addr.Class != class {
		return dnderr.InvalidAddressf("row %q: address %q belongs to %s, not %s", row.Label, row.Address, addr.Class, class).
			WithMeta("address", row.Address)
	}

	switch row.Kind {
	case shared.KindCounter, shared.KindToggle, shared.KindPool:
		if row.Default == nil {
			return dnderr.InvalidArgumentf("row %q: %s needs a default", row.Label, row.Kind)
		}
	case shared.KindStatic:
		if row.Cadence != CadenceNone {
			return dnderr.InvalidArgumentf("static row %q cannot recover", row.Label)
		}
	default:
		return dnderr.InvalidArgumentf("row %q: unknown kind %q", row.Label, row.Kind)
	}

	if row.Default != nil && row.Default.Kind() != row.Kind {
		return dnderr.InvalidArgumentf("row %q: default is a %s, row is a %s", row.Label, row.Default.Kind(), row.Kind)
	}
	return nil
}

// Classes returns the configured classes in table order
func (s *Schema) Classes() []shared.Class {
	classes := make([]shared.Class, 0, len(s.tables))
	for _, t := range s.tables {
		classes = append(classes, t.Class)
	}
	return classes
}

// Table returns a copy of the configuration of one class
func (s *Schema) Table(class shared.Class) (*ClassTable, bool) {
	t, ok := s.byClass[class]
	if !ok {
		return nil, false
	}
	cp := *t
	cp.Rows = cloneRows(t.Rows)
	return &cp, true
}

// ForClass returns the rows of one class, in panel order
func (s *Schema) ForClass(class shared.Class) []Row {
	t, ok := s.byClass[class]
	if !ok {
		return nil
	}
	return cloneRows(t.Rows)
}

// Recovering returns every row, across all classes, that resets on trigger
func (s *Schema) Recovering(trigger Trigger) []Row {
	var rows []Row
	for _, t := range s.tables {
		for _, row := range t.Rows {
			if row.Cadence.RecoversOn(trigger) {
				rows = append(rows, row.clone())
			}
		}
	}
	return rows
}

// Row looks up a row by its instance address
func (s *Schema) Row(address string) (Row, bool) {
	row, ok := s.byAddress[address]
	if !ok {
		return Row{}, false
	}
	return row.clone(), true
}

// Seed returns fresh default instances for a class, keyed by resource name
func (s *Schema) Seed(class shared.Class) shared.ResourceSet {
	set := make(shared.ResourceSet)
	for _, row := range s.ForClass(class) {
		if row.Stateful() {
			set[row.Name()] = row.Default
		}
	}
	return set
}
