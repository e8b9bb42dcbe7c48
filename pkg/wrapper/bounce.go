package wrapper

import (
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/transform"
)

type bounceVariant struct {
	height  float64
	repeats int
}

// NewBounce builds the BOUNCE behavior: each iteration lifts the child by
// height on a parabolic arc and drops it back to rest.
func NewBounce(cfg config.Config, env Env) (Behavior, error) {
	b, err := newTweenBehavior(cfg, env, func(cfg config.Config) (variant[float64], error) {
		c, err := as[config.Bounce](cfg)
		if err != nil {
			return nil, err
		}
		return bounceVariant{height: c.Lift(), repeats: c.Iterations()}, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (bounceVariant) initial() float64  { return 0 }
func (bounceVariant) final() float64    { return 0 }
func (v bounceVariant) iterations() int { return v.repeats }

// sample returns the vertical offset; negative is up.
func (v bounceVariant) sample(t float64) float64 {
	return -v.height * 4 * t * (1 - t)
}

func (bounceVariant) render(dy float64) transform.Transform {
	tf := transform.Identity()
	tf.Translate = transform.Offset{Y: dy}
	return tf
}
