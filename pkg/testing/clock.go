package testing

import (
	"sync/atomic"
	"time"

	"github.com/go-drift/animwrap/pkg/animation"
)

var _ animation.Clock = (*FakeClock)(nil)

// fakeEpoch is where every FakeClock starts.
var fakeEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is an [animation.Clock] that only moves when advanced. It never
// runs backwards. Safe for concurrent use.
type FakeClock struct {
	offset atomic.Int64 // nanoseconds since fakeEpoch
}

// NewFakeClock returns a clock at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	return fakeEpoch.Add(c.Elapsed())
}

// Elapsed is the total time the clock has been advanced.
func (c *FakeClock) Elapsed() time.Duration {
	return time.Duration(c.offset.Load())
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (c *FakeClock) Advance(d time.Duration) {
	if d > 0 {
		c.offset.Add(int64(d))
	}
}
