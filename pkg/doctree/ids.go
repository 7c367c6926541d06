package doctree

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDGenerator produces identifiers for new sections and documents
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random v4 UUIDs
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// ULIDGenerator issues lexicographically sortable ULIDs
type ULIDGenerator struct{}

func (ULIDGenerator) NewID() string {
	return ulid.Make().String()
}

// SequenceGenerator issues prefix-1, prefix-2, ... and is meant for tests
// and fixtures that need deterministic ids.
type SequenceGenerator struct {
	prefix string
	next   atomic.Int64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1))
}

// NewIDGenerator maps a configured scheme name to a generator.
func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch scheme {
	case "", "uuid":
		return UUIDGenerator{}, nil
	case "ulid":
		return ULIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}
