// Package idgen provides the identity generators owned by loan stores.
package idgen

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator hands out unique, opaque identifiers.
type Generator interface {
	NewID() (string, error)
}

// Format names a Generator implementation.
type Format string

const (
	FormatUUID Format = "uuid"
	FormatULID Format = "ulid"
)

// New returns the generator for format. An empty format selects UUIDs.
func New(format Format) (Generator, error) {
	switch format {
	case "", FormatUUID:
		return UUIDGenerator{}, nil
	case FormatULID:
		return NewULIDGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown id format %q", format)
	}
}

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ULIDGenerator issues lexicographically sortable ULIDs.
// Monotonic entropy is not safe for concurrent use, hence the mutex.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewULIDGenerator builds a generator with monotonic entropy seeded from crypto/rand.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (g *ULIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
