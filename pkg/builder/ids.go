package builder

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new groups, fields and options.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator issues prefix-1, prefix-2, ... and is safe for concurrent
// use. It exists for deterministic fixtures.
type SequenceGenerator struct {
	Prefix string
	next   atomic.Int64
}

// NewSequenceGenerator returns a SequenceGenerator using prefix.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{Prefix: prefix}
}

// NewID implements IDGenerator.
func (g *SequenceGenerator) NewID() string {
	n := g.next.Add(1)
	return g.Prefix + "-" + strconv.FormatInt(n, 10)
}
