package wrapper

import (
	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/easing"
	"github.com/go-drift/animwrap/pkg/transform"
)

// variant is the per-kind part of a timed behavior.
type variant[T any] interface {
	// initial is the value before a run and after Reset.
	initial() T
	// sample maps eased progress within one iteration to a value.
	sample(t float64) T
	// final is the exact value a completed run rests on.
	final() T
	iterations() int
	render(value T) transform.Transform
}

// tweenBehavior runs a variant on a [animation.Timing]. It implements
// Behavior for every timed kind.
type tweenBehavior[T any] struct {
	env   Env
	parse func(config.Config) (variant[T], error)

	// latest is from the newest config; active is the one the current or
	// last run used.
	latest variant[T]
	active variant[T]
	base   config.Base
	curve  func(float64) float64

	value  *animation.Value[T]
	timing *animation.Timing
}

func newTweenBehavior[T any](cfg config.Config, env Env, parse func(config.Config) (variant[T], error)) (*tweenBehavior[T], error) {
	b := &tweenBehavior[T]{env: env, parse: parse}
	if err := b.configure(cfg); err != nil {
		return nil, err
	}
	b.active = b.latest
	b.value = b.seed()
	b.timing = animation.NewTiming(env.Scheduler, b.base.Duration.Std())
	b.timing.AddListener(func() {
		b.value.Set(b.active.sample(b.timing.Value()))
	})
	return b, nil
}

func (b *tweenBehavior[T]) configure(cfg config.Config) error {
	next, err := b.parse(cfg)
	if err != nil {
		return err
	}
	curve, err := easing.Resolve(cfg.Common().Interpolation)
	if err != nil {
		return err
	}
	b.latest, b.curve, b.base = next, curve, cfg.Common()
	return nil
}

func (b *tweenBehavior[T]) seed() *animation.Value[T] {
	v := animation.NewValue(b.latest.initial())
	v.AddListener(b.env.invalidate)
	return v
}

func (b *tweenBehavior[T]) Start(done func()) {
	b.active = b.latest
	b.timing.Duration = b.base.Duration.Std()
	b.timing.Curve = b.curve
	b.timing.Iterations = b.active.iterations()
	b.timing.Start(done)
}

func (b *tweenBehavior[T]) Stop() {
	b.timing.Stop()
}

func (b *tweenBehavior[T]) Reset() {
	b.timing.Reset()
	b.active = b.latest
	b.value.Set(b.active.initial())
}

func (b *tweenBehavior[T]) Finish() {
	b.timing.Stop()
	b.value.Set(b.active.final())
}

func (b *tweenBehavior[T]) Reconfigure(cfg config.Config, reseed bool) error {
	if err := b.configure(cfg); err != nil {
		return err
	}
	if reseed {
		b.active = b.latest
		b.value = b.seed()
		b.env.invalidate()
	}
	return nil
}

func (b *tweenBehavior[T]) Transform() transform.Transform {
	return b.active.render(b.value.Get())
}

func (b *tweenBehavior[T]) Dispose() {
	b.timing.Dispose()
}
