// Package timer provides the clock and deferred-callback primitives the
// simulation runs on. Everything fires on the goroutine that calls
// Queue.RunDue, so game state needs no locking.
package timer

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. Values returned by time.Now carry a
// monotonic reading, so deadline math is immune to wall-clock jumps.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when told to.
// Used by tests and the headless simulator for deterministic timelines.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d. Negative values are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now = c.now.Add(d)
	}
}

// Seconds converts a float second count to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
