package animation

import (
	"math"
	"time"
)

// SpringDescription defines the physical parameters of a damped spring.
type SpringDescription struct {
	// Mass of the attached object. Must be positive.
	Mass float64
	// Stiffness is the spring constant k.
	Stiffness float64
	// Damping is the viscous damping coefficient c.
	Damping float64
}

// DefaultSpring is slightly underdamped: it overshoots once and settles in
// well under a second.
var DefaultSpring = SpringDescription{Mass: 1, Stiffness: 180, Damping: 20}

// SpringSimulation solves a damped harmonic oscillator in closed form for a
// displacement x0 released with velocity v0 and settling at 0.
type SpringSimulation struct {
	spring    SpringDescription
	x0, v0    float64
	tolerance float64
}

// NewSpringSimulation creates a simulation starting at displacement x0 with
// initial velocity v0.
func NewSpringSimulation(spring SpringDescription, x0, v0 float64) *SpringSimulation {
	if spring.Mass <= 0 {
		spring.Mass = 1
	}
	return &SpringSimulation{spring: spring, x0: x0, v0: v0, tolerance: 1e-3}
}

// Position returns the displacement at time t (seconds).
func (s *SpringSimulation) Position(t float64) float64 {
	x, _ := s.state(t)
	return x
}

// Velocity returns the velocity at time t (seconds).
func (s *SpringSimulation) Velocity(t float64) float64 {
	_, v := s.state(t)
	return v
}

// IsDone reports whether the spring has settled at time t.
func (s *SpringSimulation) IsDone(t float64) bool {
	x, v := s.state(t)
	return math.Abs(x) < s.tolerance && math.Abs(v) < s.tolerance
}

func (s *SpringSimulation) state(t float64) (x, v float64) {
	m, k, c := s.spring.Mass, s.spring.Stiffness, s.spring.Damping
	w0 := math.Sqrt(k / m)
	zeta := c / (2 * math.Sqrt(k*m))
	a := s.x0

	switch {
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		decay := zeta * w0
		b := (s.v0 + decay*a) / wd
		e := math.Exp(-decay * t)
		sin, cos := math.Sincos(wd * t)
		x = e * (a*cos + b*sin)
		v = e * ((b*wd-decay*a)*cos - (decay*b+a*wd)*sin)
	case zeta == 1:
		b := s.v0 + w0*a
		e := math.Exp(-w0 * t)
		x = (a + b*t) * e
		v = (b - w0*(a+b*t)) * e
	default:
		root := math.Sqrt(zeta*zeta - 1)
		r1 := -w0 * (zeta - root)
		r2 := -w0 * (zeta + root)
		c2 := (s.v0 - r1*a) / (r2 - r1)
		c1 := a - c2
		e1, e2 := math.Exp(r1*t), math.Exp(r2*t)
		x = c1*e1 + c2*e2
		v = c1*r1*e1 + c2*r2*e2
	}
	return x, v
}

// Spring runs a [SpringSimulation] on a scheduler. Value reports the
// displacement as a fraction of the starting displacement, so a run started
// with Start(1) moves Value from 1 to 0.
type Spring struct {
	Description SpringDescription

	scheduler *Scheduler
	ticker    *Ticker
	sim       *SpringSimulation
	value     float64
	onDone    func()
	listeners map[int]func()
	nextID    int
}

// NewSpring creates an idle spring bound to scheduler.
func NewSpring(scheduler *Scheduler, description SpringDescription) *Spring {
	return &Spring{
		Description: description,
		scheduler:   scheduler,
		listeners:   make(map[int]func()),
	}
}

// Start releases the spring from displacement from. onDone is called once
// when it settles; the final value is exactly 0.
func (s *Spring) Start(from float64, onDone func()) {
	s.Stop()
	s.sim = NewSpringSimulation(s.Description, from, 0)
	s.value = from
	s.onDone = onDone
	s.ticker = s.scheduler.NewTicker(s.tick)
	s.ticker.Start()
}

func (s *Spring) tick(elapsed time.Duration) {
	t := elapsed.Seconds()
	if s.sim.IsDone(t) {
		s.value = 0
		s.notify()
		s.ticker.Stop()
		s.ticker = nil
		done := s.onDone
		s.onDone = nil
		if done != nil {
			done()
		}
		return
	}
	s.value = s.sim.Position(t)
	s.notify()
}

// Stop halts the spring where it is. The completion callback is discarded.
func (s *Spring) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	s.onDone = nil
}

// IsRunning reports whether the spring is still moving.
func (s *Spring) IsRunning() bool {
	return s.ticker != nil
}

// Value returns the current displacement.
func (s *Spring) Value() float64 {
	return s.value
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (s *Spring) AddListener(fn func()) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

func (s *Spring) notify() {
	for _, listener := range s.listeners {
		listener()
	}
}
