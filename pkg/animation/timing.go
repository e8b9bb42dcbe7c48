package animation

import (
	"fmt"
	"time"
)

// TimingStatus represents the state of a [Timing] run.
//
//	           Start()               natural end
//	Idle ─────────────────► Running ─────────────► Completed
//	  ▲                        │
//	  │        Reset()         │ Stop()
//	  └──────── Stopped ◄──────┘
//
// Start may be called from any status; it always begins a fresh run.
type TimingStatus int

const (
	// TimingIdle means no run has started since creation or the last Reset.
	TimingIdle TimingStatus = iota
	// TimingRunning means a run is in progress.
	TimingRunning
	// TimingCompleted means the last run reached its end.
	TimingCompleted
	// TimingStopped means the last run was aborted by Stop.
	TimingStopped
)

// String returns a human-readable representation of the status.
func (s TimingStatus) String() string {
	switch s {
	case TimingIdle:
		return "idle"
	case TimingRunning:
		return "running"
	case TimingCompleted:
		return "completed"
	case TimingStopped:
		return "stopped"
	default:
		return fmt.Sprintf("TimingStatus(%d)", int(s))
	}
}

// Timing drives a single timed run from 0 to 1 over Duration, repeated
// Iterations times. Value reports the eased progress within the current
// iteration.
//
// Timing is the "running animation handle" of a behavior: Start begins a run
// and registers a one-shot completion callback, Stop aborts it silently.
type Timing struct {
	// Duration is the length of one iteration.
	Duration time.Duration

	// Curve transforms linear progress. Nil means linear.
	Curve func(float64) float64

	// Iterations is the number of times the run repeats. Values below 1
	// are treated as 1.
	Iterations int

	scheduler       *Scheduler
	ticker          *Ticker
	status          TimingStatus
	value           float64
	iteration       int
	onDone          func()
	listeners       map[int]func()
	statusListeners map[int]func(TimingStatus)
	nextListenerID  int
}

// NewTiming creates an idle timing bound to scheduler.
func NewTiming(scheduler *Scheduler, duration time.Duration) *Timing {
	return &Timing{
		Duration:        duration,
		Curve:           LinearCurve,
		Iterations:      1,
		scheduler:       scheduler,
		status:          TimingIdle,
		listeners:       make(map[int]func()),
		statusListeners: make(map[int]func(TimingStatus)),
	}
}

// Start begins a new run from progress 0. Any run in flight is aborted
// first and its completion callback is discarded. onDone, if non-nil, is
// called once when this run reaches its end.
func (t *Timing) Start(onDone func()) {
	t.stopTicker()
	t.onDone = onDone
	t.value = t.ease(0)
	t.iteration = 0
	t.setStatus(TimingRunning)
	t.notifyListeners()

	t.ticker = t.scheduler.NewTicker(t.tick)
	t.ticker.Start()
}

func (t *Timing) tick(elapsed time.Duration) {
	iterations := max(t.Iterations, 1)
	if t.Duration <= 0 || elapsed >= t.Duration*time.Duration(iterations) {
		t.iteration = iterations - 1
		t.value = t.ease(1)
		t.notifyListeners()
		t.complete()
		return
	}

	t.iteration = int(elapsed / t.Duration)
	progress := float64(elapsed%t.Duration) / float64(t.Duration)
	t.value = t.ease(progress)
	t.notifyListeners()
}

func (t *Timing) ease(progress float64) float64 {
	if t.Curve == nil {
		return progress
	}
	return t.Curve(progress)
}

func (t *Timing) complete() {
	t.stopTicker()
	done := t.onDone
	t.onDone = nil
	t.setStatus(TimingCompleted)
	if done != nil {
		done()
	}
}

// Stop aborts the run at its current value. The completion callback of the
// aborted run is never called.
func (t *Timing) Stop() {
	if t.status != TimingRunning {
		return
	}
	t.stopTicker()
	t.onDone = nil
	t.setStatus(TimingStopped)
}

// Reset stops any run and returns progress to 0.
func (t *Timing) Reset() {
	t.stopTicker()
	t.onDone = nil
	t.value = 0
	t.iteration = 0
	t.setStatus(TimingIdle)
}

func (t *Timing) stopTicker() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

// Value returns the eased progress within the current iteration.
func (t *Timing) Value() float64 {
	return t.value
}

// Iteration returns the zero-based index of the current iteration.
func (t *Timing) Iteration() int {
	return t.iteration
}

// Status returns the current status.
func (t *Timing) Status() TimingStatus {
	return t.status
}

// IsRunning returns true while a run is in progress.
func (t *Timing) IsRunning() bool {
	return t.status == TimingRunning
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (t *Timing) AddListener(fn func()) func() {
	id := t.nextListenerID
	t.nextListenerID++
	t.listeners[id] = fn
	return func() {
		delete(t.listeners, id)
	}
}

// AddStatusListener adds a callback that fires whenever the status changes.
// Returns an unsubscribe function.
func (t *Timing) AddStatusListener(fn func(TimingStatus)) func() {
	id := t.nextListenerID
	t.nextListenerID++
	t.statusListeners[id] = fn
	return func() {
		delete(t.statusListeners, id)
	}
}

func (t *Timing) setStatus(status TimingStatus) {
	if t.status == status {
		return
	}
	t.status = status
	for _, listener := range t.statusListeners {
		listener(status)
	}
}

func (t *Timing) notifyListeners() {
	for _, listener := range t.listeners {
		listener()
	}
}

// Dispose stops the run and drops all listeners.
func (t *Timing) Dispose() {
	t.stopTicker()
	t.onDone = nil
	t.listeners = map[int]func(){}
	t.statusListeners = map[int]func(TimingStatus){}
}
