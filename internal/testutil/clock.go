// Package testutil provides shared test helpers.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a watch.Clock that returns a preset time, advanced
// manually. Enables deterministic observation timestamps in tests.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock pinned at now.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the current pinned time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
