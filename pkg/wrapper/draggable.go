package wrapper

import (
	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/transform"
)

// draggableBehavior lets the pointer move the child. Its run is the spring
// that carries the child back to its origin after a release.
type draggableBehavior struct {
	env    Env
	cfg    config.Draggable
	value  *animation.Value[transform.Offset]
	spring *animation.Spring

	// release is where the current spring run began.
	release transform.Offset
}

// NewDraggable builds the DRAGGABLE behavior.
func NewDraggable(cfg config.Config, env Env) (Behavior, error) {
	c, err := as[config.Draggable](cfg)
	if err != nil {
		return nil, err
	}
	b := &draggableBehavior{env: env, cfg: c}
	b.value = b.seed()
	b.spring = animation.NewSpring(env.Scheduler, animation.DefaultSpring)
	b.spring.AddListener(func() {
		b.value.Set(b.release.Scale(b.spring.Value()))
	})
	return b, nil
}

func (b *draggableBehavior) seed() *animation.Value[transform.Offset] {
	v := animation.NewValue(transform.Offset{})
	v.AddListener(b.env.invalidate)
	return v
}

// Start springs the child home. A child already at its origin completes at once.
func (b *draggableBehavior) Start(done func()) {
	b.spring.Stop()
	b.release = b.value.Get()
	if b.release.IsZero() {
		if done != nil {
			done()
		}
		return
	}
	b.spring.Start(1, done)
}

func (b *draggableBehavior) Stop() {
	b.spring.Stop()
}

func (b *draggableBehavior) Reset() {
	b.spring.Stop()
	b.value.Set(transform.Offset{})
}

func (b *draggableBehavior) Finish() {
	b.spring.Stop()
	b.value.Set(transform.Offset{})
}

func (b *draggableBehavior) Reconfigure(cfg config.Config, reseed bool) error {
	c, err := as[config.Draggable](cfg)
	if err != nil {
		return err
	}
	b.cfg = c
	if reseed {
		b.value = b.seed()
		b.env.invalidate()
	}
	return nil
}

func (b *draggableBehavior) Transform() transform.Transform {
	tf := transform.Identity()
	tf.Translate = b.value.Get()
	return tf
}

func (b *draggableBehavior) Dispose() {
	b.spring.Stop()
}

func (b *draggableBehavior) DragStart() {
	b.spring.Stop()
}

func (b *draggableBehavior) DragUpdate(delta transform.Offset) {
	next := b.value.Get().Add(delta)
	if b.cfg.Bounds != nil {
		next = b.cfg.Bounds.Clamp(next)
	}
	b.value.Set(next)
}

func (b *draggableBehavior) DragEnd() bool {
	return b.cfg.ReturnsHome()
}
