package lexicon

import (
	"sync"

	"github.com/google/uuid"
)

// URIGenerator produces entry URIs.
type URIGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 URIs, so entries created
// later sort after earlier ones.
type UUIDv7Generator struct{}

// Generate panics if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined URIs in order. Used by tests and
// golden output.
type FixedGenerator struct {
	mu   sync.Mutex
	uris []string
	idx  int
}

// NewFixedGenerator creates a generator that returns uris in order.
func NewFixedGenerator(uris ...string) *FixedGenerator {
	return &FixedGenerator{uris: uris}
}

// Generate panics once every URI has been handed out.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.uris) {
		panic("FixedGenerator: all URIs exhausted")
	}
	uri := g.uris[g.idx]
	g.idx++
	return uri
}
