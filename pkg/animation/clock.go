package animation

import "time"

// Clock provides time for animations. Hosts normally use [SystemClock];
// tests and offline renderers pass a controllable clock to [NewScheduler].
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall-clock time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
