package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGenerator(t *testing.T) {
	gen := NewFixedIDGenerator("sandbox-a")
	assert.Equal(t, "sandbox-a", gen.Generate())
	assert.Equal(t, "sandbox-a", gen.Generate())

	assert.Equal(t, "sandbox-test", NewFixedIDGenerator("").Generate())
}

func TestSequenceIDGenerator(t *testing.T) {
	gen := NewSequenceIDGenerator("sb")
	assert.Equal(t, "sb-1", gen.Generate())
	assert.Equal(t, "sb-2", gen.Generate())
}

func TestSequenceIDGenerator_Concurrent(t *testing.T) {
	gen := NewSequenceIDGenerator("sb")

	var wg sync.WaitGroup
	seen := make(chan string, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- gen.Generate()
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[string]bool{}
	for id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, 100)
}

func TestStepCounter(t *testing.T) {
	c := NewStepCounter()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())
}

func TestNewSandbox(t *testing.T) {
	sb, doc := NewDocument(t)
	assert.Equal(t, "sandbox-test", sb.ID())

	ctx, err := doc.Context()
	assert.NoError(t, err)
	assert.Same(t, sb, ctx)
}
