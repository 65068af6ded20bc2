package rulebook

import "github.com/KirkDiggler/dnd-sheet/internal/domain/shared"

// ClassTable is the sheet configuration for one class
type ClassTable struct {
	Class      shared.Class
	HitDie     string
	CasterType shared.CasterType
	Rows       []Row
}

// IsCaster reports whether the class shows a spell slot panel
func (t *ClassTable) IsCaster() bool {
	return t.CasterType != shared.CasterNone
}
