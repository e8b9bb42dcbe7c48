package wrapper

import (
	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/transform"
)

type rippleVariant struct {
	spread  float64
	opacity float64
	repeats int
}

// NewRipple builds the RIPPLE behavior: a ring behind the child grows from
// the child's size to maxScale while fading out. The child is untouched.
func NewRipple(cfg config.Config, env Env) (Behavior, error) {
	b, err := newTweenBehavior(cfg, env, func(cfg config.Config) (variant[transform.Ring], error) {
		c, err := as[config.Ripple](cfg)
		if err != nil {
			return nil, err
		}
		return rippleVariant{spread: c.Spread(), opacity: c.StartOpacity(), repeats: c.Iterations()}, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (rippleVariant) initial() transform.Ring {
	return transform.Ring{Scale: 1, Opacity: 0}
}

func (v rippleVariant) final() transform.Ring {
	return transform.Ring{Scale: v.spread, Opacity: 0}
}

func (v rippleVariant) iterations() int { return v.repeats }

func (v rippleVariant) sample(t float64) transform.Ring {
	return transform.Ring{
		Scale:   animation.LerpFloat64(1, v.spread, t),
		Opacity: animation.LerpFloat64(v.opacity, 0, t),
	}
}

func (rippleVariant) render(ring transform.Ring) transform.Transform {
	tf := transform.Identity()
	if ring.Opacity > 0 {
		tf.Ring = &ring
	}
	return tf
}
