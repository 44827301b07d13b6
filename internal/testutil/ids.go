package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator hands out the same sandbox ID every time.
//
// Scenarios run with a FixedIDGenerator produce byte-identical traces and
// snapshots, which keeps golden files stable.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator for id. An empty id becomes
// "sandbox-test".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "sandbox-test"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed ID. Implements dom.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}

// SequenceIDGenerator returns "<prefix>-1", "<prefix>-2", ... in order.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceIDGenerator creates a generator whose first ID is prefix-1.
func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	return &SequenceIDGenerator{prefix: prefix}
}

// Generate returns the next ID in the sequence.
func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
