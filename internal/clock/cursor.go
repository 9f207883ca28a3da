// ABOUTME: Playback cursor tracking scheduled samples
// ABOUTME: Monotonic counter that positions the next buffer in time
package clock

import (
	"sync"
	"time"
)

// Cursor tracks the total number of samples scheduled since the last
// reset. It is the absolute sample offset at which the next buffer
// begins. All mutation happens on the player's event goroutine; the
// lock only makes reads safe from the UI refresh ticker.
type Cursor struct {
	mu      sync.RWMutex
	samples int64
}

// NewCursor creates a cursor at position zero
func NewCursor() *Cursor {
	return &Cursor{}
}

// Reset returns the cursor to zero. Called once per transition into
// the playing state.
func (c *Cursor) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = 0
}

// Advance moves the cursor forward by n samples. Negative values are
// ignored; the cursor never decreases.
func (c *Cursor) Advance(n int) {
	if n < 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples += int64(n)
}

// Pos returns the current sample position
func (c *Cursor) Pos() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.samples
}

// Offset converts the position to a start time at the given rate
func (c *Cursor) Offset(rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(c.Pos()) / float64(rate) * float64(time.Second))
}
