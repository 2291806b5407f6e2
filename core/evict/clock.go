package evict

import "time"

// Clock is the time source used for entry timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// ManualClock is a logical clock that advances by a fixed step on every reading,
// so no two readings are ever equal. It is meant for deterministic tests of
// recency ordering. Not safe for concurrent use.
type ManualClock struct {
	now  time.Time
	step time.Duration
}

// NewManualClock creates a clock whose first reading is start. step defaults to
// one millisecond when not positive.
func NewManualClock(start time.Time, step time.Duration) *ManualClock {
	if step <= 0 {
		step = time.Millisecond
	}
	return &ManualClock{now: start.Add(-step), step: step}
}

func (c *ManualClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// Advance moves the clock forward by d without producing a reading.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var _ Clock = (*ManualClock)(nil)
