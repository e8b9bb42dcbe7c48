package wrapper

import (
	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/transform"
)

type scaleVariant struct {
	from, to float64
}

// NewScale builds the SCALE behavior: the child's scale factor runs from
// fromScale (default 1) to toScale and lands on toScale exactly.
func NewScale(cfg config.Config, env Env) (Behavior, error) {
	b, err := newTweenBehavior(cfg, env, func(cfg config.Config) (variant[float64], error) {
		c, err := as[config.Scale](cfg)
		if err != nil {
			return nil, err
		}
		return scaleVariant{from: c.From(), to: c.ToScale}, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (v scaleVariant) initial() float64 { return v.from }
func (v scaleVariant) final() float64   { return v.to }
func (scaleVariant) iterations() int    { return 1 }

func (v scaleVariant) sample(t float64) float64 {
	return animation.LerpFloat64(v.from, v.to, t)
}

func (scaleVariant) render(scale float64) transform.Transform {
	tf := transform.Identity()
	tf.Scale = scale
	return tf
}
