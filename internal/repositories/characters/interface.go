package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
)

// Repository stores whole character records keyed by meta.id
type Repository interface {
	// Get loads a record. Missing records are CodeNotFound; stored data that
	// cannot be decoded is CodeValidation.
	Get(ctx context.Context, id string) (*character.Record, error)

	// Save writes the full record, replacing any previous version. A record
	// without an id is assigned one.
	Save(ctx context.Context, rec *character.Record) error

	// Delete removes a record
	Delete(ctx context.Context, id string) error

	// List returns every stored record ordered by id
	List(ctx context.Context) ([]*character.Record, error)
}
