package characters

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-sheet/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and development
type InMemoryRepository struct {
	mu            sync.RWMutex
	records       map[string]*character.Record
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		records:       make(map[string]*character.Record),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

func (r *InMemoryRepository) Get(_ context.Context, id string) (*character.Record, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.records[id]
	if !exists {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	// Return a copy to avoid external modifications
	return rec.Clone(), nil
}

func (r *InMemoryRepository) Save(_ context.Context, rec *character.Record) error {
	if rec == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.Meta.ID == "" {
		rec.Meta.ID = r.uuidGenerator.New()
	}
	r.records[rec.Meta.ID] = rec.Clone()
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	delete(r.records, id)
	return nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*character.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*character.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Meta.ID < out[j].Meta.ID })
	return out, nil
}
