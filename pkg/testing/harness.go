package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/transform"
	"github.com/go-drift/animwrap/pkg/wrapper"
)

// FrameDuration is the clock step PumpAndSettle uses per frame.
const FrameDuration = 16 * time.Millisecond

var (
	// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
	ErrSettleTimeout = errors.New("PumpAndSettle timed out: animation did not settle")
	// ErrNoTarget is returned by Tap and Drag when the built tree has no
	// matching gesture target.
	ErrNoTarget = errors.New("no gesture target in built tree")
)

// Harness drives a [wrapper.View] on a fake clock without a real host.
// Each Pump steps the scheduler and rebuilds the node tree, like a host frame.
type Harness struct {
	clock     *FakeClock
	scheduler *animation.Scheduler
	view      *wrapper.View
	root      wrapper.Node

	finished     int
	invalidated  int
	onFinishHook func()
}

// NewHarness creates a harness. Call Cleanup when done, or use
// NewHarnessWithT instead.
func NewHarness(opts wrapper.Options) *Harness {
	h := &Harness{clock: NewFakeClock()}
	h.scheduler = animation.NewScheduler(h.clock)
	opts.Scheduler = h.scheduler
	invalidate := opts.Invalidate
	opts.Invalidate = func() {
		h.invalidated++
		if invalidate != nil {
			invalidate()
		}
	}
	h.view = wrapper.NewView(opts)
	return h
}

// NewHarnessWithT creates a harness that unmounts via t.Cleanup().
// This is the recommended constructor for tests.
func NewHarnessWithT(t *testing.T) *Harness {
	h := NewHarness(wrapper.Options{})
	t.Cleanup(h.Cleanup)
	return h
}

// Cleanup unmounts the view.
func (h *Harness) Cleanup() {
	h.view.Unmount()
	h.root = nil
}

// Clock returns the fake clock.
func (h *Harness) Clock() *FakeClock { return h.clock }

// Scheduler returns the frame clock the view runs on.
func (h *Harness) Scheduler() *animation.Scheduler { return h.scheduler }

// View returns the view under test.
func (h *Harness) View() *wrapper.View { return h.view }

// OnFinish registers fn to run after each completion callback.
func (h *Harness) OnFinish(fn func()) { h.onFinishHook = fn }

// Mount mounts cfg around child and pumps one frame.
func (h *Harness) Mount(cfg config.Config, child wrapper.Node) error {
	return h.MountProps(wrapper.Props{Config: cfg, Children: []wrapper.Node{child}})
}

// MountProps mounts p as given, including its children and callback. The
// harness still counts completions.
func (h *Harness) MountProps(p wrapper.Props) error {
	if err := h.view.Mount(h.counting(p)); err != nil {
		return err
	}
	return h.Pump()
}

// Update applies cfg to the mounted view, keeping the current child, and
// pumps one frame.
func (h *Harness) Update(cfg config.Config, child wrapper.Node) error {
	p := wrapper.Props{Config: cfg, Children: []wrapper.Node{child}}
	if err := h.view.Update(h.counting(p)); err != nil {
		return err
	}
	return h.Pump()
}

func (h *Harness) counting(p wrapper.Props) wrapper.Props {
	user := p.OnAnimationFinish
	p.OnAnimationFinish = func() {
		h.finished++
		if user != nil {
			user()
		}
		if h.onFinishHook != nil {
			h.onFinishHook()
		}
	}
	return p
}

// Pump runs a single frame: step tickers, then rebuild the tree.
func (h *Harness) Pump() error {
	h.scheduler.Step()
	root, err := h.view.Build()
	if err != nil {
		return err
	}
	h.root = root
	return nil
}

// Advance moves the clock forward by d and pumps one frame.
func (h *Harness) Advance(d time.Duration) error {
	h.clock.Advance(d)
	return h.Pump()
}

// PumpAndSettle pumps frames until no ticker is active or timeout is
// reached. Each frame advances the fake clock by FrameDuration.
func (h *Harness) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		if err := h.Pump(); err != nil {
			return err
		}
		if !h.scheduler.HasActive() {
			return nil
		}
		h.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}

// Tap presses the tap target of the last built tree and pumps one frame.
func (h *Harness) Tap() error {
	target, ok := wrapper.Find[wrapper.TapTarget](h.root)
	if !ok || target.OnTap == nil {
		return ErrNoTarget
	}
	target.OnTap()
	return h.Pump()
}

// Drag runs a full drag gesture on the drag target: start, one update per
// delta, end. It pumps one frame afterwards.
func (h *Harness) Drag(deltas ...transform.Offset) error {
	target, ok := wrapper.Find[wrapper.DragTarget](h.root)
	if !ok {
		return ErrNoTarget
	}
	if target.OnDragStart != nil {
		target.OnDragStart()
	}
	for _, d := range deltas {
		if target.OnDragUpdate != nil {
			target.OnDragUpdate(d)
		}
	}
	if target.OnDragEnd != nil {
		target.OnDragEnd()
	}
	return h.Pump()
}

// Root returns the tree produced by the last frame.
func (h *Harness) Root() wrapper.Node { return h.root }

// Transform returns the view's current transform.
func (h *Harness) Transform() transform.Transform { return h.view.Transform() }

// Status returns the view's lifecycle status.
func (h *Harness) Status() wrapper.Status { return h.view.Status() }

// Finished returns how many completion callbacks have fired.
func (h *Harness) Finished() int { return h.finished }

// Invalidations returns how many times the view asked to be redrawn.
func (h *Harness) Invalidations() int { return h.invalidated }
