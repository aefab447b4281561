package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns predetermined attempt ids in order, so tests and
// golden files see stable ids.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator returning ids in order.
//
// Example:
//
//	gen := NewFixedIDGenerator("attempt-1", "attempt-2")
//	gen.Generate() // "attempt-1"
//	gen.Generate() // "attempt-2"
//	gen.Generate() // panic: all ids exhausted
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next predetermined id.
//
// Panics when all ids have been consumed; the test asked for more attempts
// than it configured.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic(fmt.Sprintf("FixedIDGenerator: all %d ids exhausted", len(g.ids)))
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
