// Package animation provides the frame-driven timing primitives that animated
// wrappers build on.
//
// # Core Components
//
//   - [Scheduler]: the host frame clock. The host calls [Scheduler.Step] once per
//     frame; every active [Ticker] receives the time elapsed since it started.
//
//   - [Timing]: a timed run from 0 to 1 over a duration, eased by a curve,
//     optionally repeated. It reports completion exactly once per run.
//
//   - [Spring]: a damped spring that settles a displacement back to zero.
//
//   - [Value]: the single mutable value an animated behavior owns.
//
//   - [LerpFloat64], [LerpOffset]: map eased progress onto a value range.
//
// # Basic Usage
//
//	sched := animation.NewScheduler(animation.SystemClock{})
//	run := animation.NewTiming(sched, 300*time.Millisecond)
//	run.Curve = animation.EaseOut
//	run.AddListener(func() { opacity.Set(run.Value()) })
//	run.Start(func() { log.Println("done") })
//
//	// once per frame, from the host loop
//	sched.Step()
//
// Nothing here spawns goroutines: progress happens only inside Step.
package animation

import (
	"sync"
	"time"
)

// Scheduler owns the set of active tickers and advances them once per frame.
//
// A Scheduler is driven by exactly one host loop. The ticker registry is
// guarded so that HasActive may be polled from another goroutine.
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	tickers map[*Ticker]struct{}
}

// NewScheduler creates a scheduler reading time from clock.
// A nil clock uses [SystemClock].
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock:   clock,
		tickers: make(map[*Ticker]struct{}),
	}
}

// Now returns the current time of the scheduler's clock.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// NewTicker creates an inactive ticker bound to this scheduler.
func (s *Scheduler) NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{scheduler: s, callback: callback}
}

// Step advances all active tickers.
// This should be called once per frame from the host.
func (s *Scheduler) Step() {
	s.mu.Lock()
	if len(s.tickers) == 0 {
		s.mu.Unlock()
		return
	}
	// Copy so callbacks may start or stop tickers.
	tickers := make([]*Ticker, 0, len(s.tickers))
	for ticker := range s.tickers {
		tickers = append(tickers, ticker)
	}
	s.mu.Unlock()

	now := s.clock.Now()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(now.Sub(ticker.start))
		}
	}
}

// HasActive reports whether any ticker is active, i.e. whether the host
// needs to keep producing frames.
func (s *Scheduler) HasActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickers) > 0
}

// Ticker calls a callback on each frame while active.
//
// Ticker is the low-level primitive used by [Timing] and [Spring].
type Ticker struct {
	scheduler *Scheduler
	callback  func(elapsed time.Duration)
	isActive  bool
	start     time.Time
}

// Start activates the ticker. Elapsed time is measured from this call.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = t.scheduler.Now()
	t.scheduler.mu.Lock()
	t.scheduler.tickers[t] = struct{}{}
	t.scheduler.mu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.scheduler.mu.Lock()
	delete(t.scheduler.tickers, t)
	t.scheduler.mu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return t.scheduler.Now().Sub(t.start)
}
