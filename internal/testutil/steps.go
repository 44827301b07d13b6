package testutil

import "sync"

// StepCounter numbers trace steps. The first call to Next returns 1.
//
// Thread-safety: All methods are safe for concurrent use.
type StepCounter struct {
	mu   sync.Mutex
	step int64
}

// NewStepCounter creates a counter at 0.
func NewStepCounter() *StepCounter {
	return &StepCounter{}
}

// Next advances the counter and returns the new value.
func (c *StepCounter) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step++
	return c.step
}

// Current returns the last value handed out, or 0.
func (c *StepCounter) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}
