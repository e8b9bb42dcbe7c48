package wrapper

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/errors"
	"github.com/go-drift/animwrap/pkg/transform"
)

// Behavior is the algorithm of one animation kind. It owns a single
// animated value and the run that drives it. Policy (when to start, when
// to notify) lives in [Lifecycle]; a Behavior only does what it is told.
type Behavior interface {
	// Start begins a new run from the initial value. done is called once
	// if the run reaches its end; an aborted run never calls it.
	Start(done func())
	// Stop aborts the run, leaving the value where it is.
	Stop()
	// Reset aborts the run and restores the configured initial value.
	Reset()
	// Finish aborts the run and jumps to the exact final value.
	Finish()
	// Reconfigure adopts a config with the same discriminant. When reseed
	// is set the animated value is replaced with one seeded from cfg;
	// otherwise the value and any run in flight are left alone.
	Reconfigure(cfg config.Config, reseed bool) error
	// Transform maps the current value to a visual transform.
	Transform() transform.Transform
	// Dispose releases the run. The behavior is unusable afterwards.
	Dispose()
}

// Dragger is implemented by behaviors whose value follows the pointer.
type Dragger interface {
	DragStart()
	DragUpdate(delta transform.Offset)
	// DragEnd reports whether releasing should start a run.
	DragEnd() bool
}

// Env is what a behavior receives from its host.
type Env struct {
	// Scheduler is the host frame clock.
	Scheduler *animation.Scheduler
	// Invalidate is called whenever the animated value changes.
	Invalidate func()
	// Logger receives lifecycle records.
	Logger zerolog.Logger
	// Observer, if set, is told about runs.
	Observer Observer
}

func (e Env) invalidate() {
	if e.Invalidate != nil {
		e.Invalidate()
	}
}

// Constructor builds a behavior from a config.
type Constructor func(cfg config.Config, env Env) (Behavior, error)

// Resolve returns the constructor for a discriminant. Every type in
// [config.Types] resolves; anything else is a *errors.ConfigError.
func Resolve(t config.Type) (Constructor, error) {
	switch t {
	case config.TypeBounce:
		return NewBounce, nil
	case config.TypeRipple:
		return NewRipple, nil
	case config.TypeScale:
		return NewScale, nil
	case config.TypeDraggable:
		return NewDraggable, nil
	case config.TypeFadeIn, config.TypeFadeOut:
		return NewFade, nil
	case config.TypeSlideIn, config.TypeSlideOut:
		return NewSlide, nil
	case config.TypeWiggle:
		return NewWiggle, nil
	default:
		return nil, &errors.ConfigError{Field: "type", Value: t, Reason: "no behavior for animation type"}
	}
}

// as extracts a concrete config, accepting a value or a non-nil pointer.
func as[T config.Config](cfg config.Config) (T, error) {
	if v, ok := cfg.(T); ok {
		return v, nil
	}
	if p, ok := cfg.(*T); ok && p != nil {
		return *p, nil
	}
	var zero T
	return zero, &errors.ConfigError{
		Field:  "type",
		Value:  typeOf(cfg),
		Reason: fmt.Sprintf("config %T cannot drive a %T behavior", cfg, zero),
	}
}

func typeOf(cfg config.Config) config.Type {
	if cfg == nil {
		return ""
	}
	return cfg.Type()
}
