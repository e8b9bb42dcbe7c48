package wrapper

import (
	"fmt"
	"time"

	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/errors"
	"github.com/go-drift/animwrap/pkg/transform"
)

// Status is the lifecycle status of a mounted behavior.
type Status int

const (
	// StatusIdle is the status after mount and after Reset.
	StatusIdle Status = iota
	// StatusRunning means a run is in flight.
	StatusRunning
	// StatusFinished means the last run completed or was finished early.
	StatusFinished
	// StatusStopped means the last run was aborted, or the behavior was unmounted.
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Observer is told about runs. Implementations must not call back into the
// lifecycle.
type Observer interface {
	AnimationStarted(t config.Type)
	// AnimationFinished is called for runs that complete naturally.
	AnimationFinished(t config.Type, elapsed time.Duration)
	// AnimationStopped is called for runs that are aborted.
	AnimationStopped(t config.Type)
}

// Lifecycle is the policy shared by every behavior: trigger handling,
// the status machine and the one-shot completion callback.
//
// Each run gets a generation number. Stop, Reset, Finish, Unmount and
// restarts bump the generation, so a completion signal from an older run
// is ignored even if it arrives later.
type Lifecycle struct {
	cfg      config.Config
	behavior Behavior
	env      Env

	status    Status
	run       uint64
	startedAt time.Time
	onFinish  func()
	unmounted bool
}

// NewLifecycle wraps behavior, which must have been built from cfg.
func NewLifecycle(cfg config.Config, behavior Behavior, env Env) *Lifecycle {
	return &Lifecycle{cfg: cfg, behavior: behavior, env: env}
}

// SetOnFinish sets the completion callback. It is invoked once per run that
// completes naturally.
func (l *Lifecycle) SetOnFinish(fn func()) {
	l.onFinish = fn
}

// Mount applies the trigger policy: ON_LOAD configs start immediately.
func (l *Lifecycle) Mount() {
	l.env.Logger.Debug().Str("trigger", string(l.cfg.Common().Trigger())).Msg("mounted")
	if l.cfg.Common().Trigger() == config.OnLoad {
		l.Start()
	}
}

// Press handles a tap on the child. Only ON_CLICK configs react, and a
// press while running is ignored. Draggable behaviors never react to taps.
func (l *Lifecycle) Press() {
	if l.unmounted || l.cfg.Common().Trigger() != config.OnClick || l.IsDraggable() {
		return
	}
	if l.status == StatusRunning {
		l.env.Logger.Debug().Msg("press ignored while running")
		return
	}
	l.Start()
}

// Start begins a run. Starting from any status other than Idle aborts the
// current run without completion and starts over.
func (l *Lifecycle) Start() {
	if l.unmounted {
		return
	}
	if l.status != StatusIdle {
		err := errors.Report("wrapper.Lifecycle.Start", &errors.StateError{Op: "start", Status: l.status.String()})
		l.env.Logger.Debug().Err(err).Msg("restarting")
		l.abort()
	}

	l.run++
	run := l.run
	l.status = StatusRunning
	l.startedAt = l.env.Scheduler.Now()
	if l.env.Observer != nil {
		l.env.Observer.AnimationStarted(l.cfg.Type())
	}
	l.behavior.Start(func() { l.complete(run) })
}

// Stop aborts a running animation. The completion callback of that run is
// never invoked. Stop is a no-op unless running.
func (l *Lifecycle) Stop() {
	if l.unmounted || l.status != StatusRunning {
		return
	}
	l.abort()
	l.status = StatusStopped
}

// Reset aborts any run and restores the configured initial value.
func (l *Lifecycle) Reset() {
	if l.unmounted {
		return
	}
	l.abort()
	l.behavior.Reset()
	l.status = StatusIdle
}

// Finish aborts any run and jumps to the final value. It does not invoke
// the completion callback.
func (l *Lifecycle) Finish() {
	if l.unmounted {
		return
	}
	l.abort()
	l.behavior.Finish()
	l.status = StatusFinished
}

// Unmount stops the behavior and releases it. It is terminal and idempotent.
func (l *Lifecycle) Unmount() {
	if l.unmounted {
		return
	}
	l.abort()
	l.behavior.Dispose()
	l.status = StatusStopped
	l.unmounted = true
	l.env.Logger.Debug().Msg("unmounted")
}

// Reconfigure adopts cfg, which must have the same discriminant. An idle
// behavior reseeds its value from cfg; otherwise the value and any run in
// flight are untouched and cfg applies from the next Start or Reset.
func (l *Lifecycle) Reconfigure(cfg config.Config) error {
	if typeOf(cfg) != l.cfg.Type() {
		return &errors.ConfigError{
			Field:  "type",
			Value:  typeOf(cfg),
			Reason: fmt.Sprintf("cannot reconfigure a %s animation in place", l.cfg.Type()),
		}
	}
	if err := l.behavior.Reconfigure(cfg, l.status == StatusIdle); err != nil {
		return err
	}
	l.cfg = cfg
	return nil
}

// DragStart hands the child to the pointer. A spring-back in flight is
// stopped and the lifecycle re-arms without moving the child.
func (l *Lifecycle) DragStart() {
	d, ok := l.behavior.(Dragger)
	if !ok || l.unmounted {
		return
	}
	l.Stop()
	d.DragStart()
	l.rearm()
}

// DragUpdate moves the child by delta.
func (l *Lifecycle) DragUpdate(delta transform.Offset) {
	if d, ok := l.behavior.(Dragger); ok && !l.unmounted {
		d.DragUpdate(delta)
	}
}

// DragEnd releases the child. With spring-back enabled this starts a run.
func (l *Lifecycle) DragEnd() {
	d, ok := l.behavior.(Dragger)
	if !ok || l.unmounted {
		return
	}
	if d.DragEnd() {
		l.Start()
	}
}

// IsDraggable reports whether the behavior follows the pointer.
func (l *Lifecycle) IsDraggable() bool {
	_, ok := l.behavior.(Dragger)
	return ok
}

// Status returns the current status.
func (l *Lifecycle) Status() Status {
	return l.status
}

// Config returns the config the behavior was last configured with.
func (l *Lifecycle) Config() config.Config {
	return l.cfg
}

// Transform returns the behavior's current visual transform.
func (l *Lifecycle) Transform() transform.Transform {
	return l.behavior.Transform()
}

func (l *Lifecycle) rearm() {
	l.run++
	l.status = StatusIdle
}

// abort latches the current run and halts the behavior.
func (l *Lifecycle) abort() {
	l.run++
	if l.status != StatusRunning {
		return
	}
	l.behavior.Stop()
	if l.env.Observer != nil {
		l.env.Observer.AnimationStopped(l.cfg.Type())
	}
}

func (l *Lifecycle) complete(run uint64) {
	if l.unmounted || run != l.run || l.status != StatusRunning {
		return
	}
	l.behavior.Finish()
	l.status = StatusFinished

	elapsed := l.env.Scheduler.Now().Sub(l.startedAt)
	l.env.Logger.Debug().Dur("elapsed", elapsed).Msg("finished")
	if l.env.Observer != nil {
		l.env.Observer.AnimationFinished(l.cfg.Type(), elapsed)
	}
	if l.onFinish != nil {
		defer errors.Recover("wrapper.onAnimationFinish")
		l.onFinish()
	}
}
