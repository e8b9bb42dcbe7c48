// Package preview renders an animation config offline, frame by frame, on a
// simulated clock. Output is deterministic for a given config and frame rate.
package preview

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/transform"
	"github.com/go-drift/animwrap/pkg/wrapper"
)

// ErrNotSettled is returned with the frames sampled so far when the
// animation is still running at Options.MaxDuration.
var ErrNotSettled = errors.New("preview: animation did not settle")

const (
	defaultFPS         = 30
	defaultMaxDuration = 10 * time.Second
)

// Options control sampling.
type Options struct {
	// FPS is the sampling rate. Zero means 30.
	FPS int
	// MaxDuration caps the sampled time. Zero means 10s.
	MaxDuration time.Duration
	// Drag is the displacement applied to draggable configs before release.
	// Zero means 60px to the right.
	Drag transform.Offset
	// Logger receives debug records from the wrapper.
	Logger *zerolog.Logger
}

func (o Options) frameStep() time.Duration {
	fps := o.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Frame is one sampled host frame.
type Frame struct {
	Index     int
	At        time.Duration
	Transform transform.Transform
	Status    wrapper.Status
}

// simClock is advanced by Sample only.
type simClock struct{ now time.Time }

func (c *simClock) Now() time.Time { return c.now }

// Sample mounts cfg, starts it the way a user would (ON_CLICK configs are
// pressed, draggables are dragged and released) and records one frame per
// tick until the run ends. The last frame holds the exact final value.
func Sample(cfg config.Config, opts Options) ([]Frame, error) {
	clock := &simClock{now: time.Unix(0, 0)}
	sched := animation.NewScheduler(clock)
	view := wrapper.NewView(wrapper.Options{Scheduler: sched, Logger: opts.Logger})
	if err := view.Mount(wrapper.Props{Config: cfg, Children: []wrapper.Node{"preview"}}); err != nil {
		return nil, err
	}
	defer view.Unmount()

	lc := view.Lifecycle()
	switch {
	case lc.IsDraggable():
		drag := opts.Drag
		if drag.IsZero() {
			drag = transform.Offset{X: 60}
		}
		lc.DragStart()
		lc.DragUpdate(drag)
		lc.DragEnd()
	case cfg.Common().Trigger() == config.OnClick:
		view.Press()
	}

	step := opts.frameStep()
	limit := opts.MaxDuration
	if limit <= 0 {
		limit = defaultMaxDuration
	}

	var (
		frames []Frame
		at     time.Duration
	)
	for {
		sched.Step()
		frames = append(frames, Frame{
			Index:     len(frames),
			At:        at,
			Transform: view.Transform(),
			Status:    view.Status(),
		})
		if view.Status() != wrapper.StatusRunning {
			return frames, nil
		}
		if at >= limit {
			return frames, ErrNotSettled
		}
		clock.now = clock.now.Add(step)
		at += step
	}
}
