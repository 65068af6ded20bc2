// Package uuid generates record ids behind an interface so tests can pin them
package uuid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=mockuuid -source=uuid.go

// Generator is an interface for generating ids
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new random UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// Sequence yields "<prefix>-1", "<prefix>-2", ... and is safe for concurrent use
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence creates a deterministic generator
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) New() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1))
}

// Valid reports whether id parses as a UUID
func Valid(id string) bool {
	return uuid.Validate(id) == nil
}
