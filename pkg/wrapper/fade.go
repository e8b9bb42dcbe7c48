package wrapper

import (
	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/transform"
)

type fadeVariant struct {
	from, to float64
}

// NewFade builds FADE_IN (opacity 0 to 1) and FADE_OUT (1 to 0).
func NewFade(cfg config.Config, env Env) (Behavior, error) {
	b, err := newTweenBehavior(cfg, env, func(cfg config.Config) (variant[float64], error) {
		c, err := as[config.Fade](cfg)
		if err != nil {
			return nil, err
		}
		if c.Direction == config.DirectionOut {
			return fadeVariant{from: 1, to: 0}, nil
		}
		return fadeVariant{from: 0, to: 1}, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (v fadeVariant) initial() float64 { return v.from }
func (v fadeVariant) final() float64   { return v.to }
func (fadeVariant) iterations() int    { return 1 }

func (v fadeVariant) sample(t float64) float64 {
	return animation.LerpFloat64(v.from, v.to, t)
}

func (fadeVariant) render(opacity float64) transform.Transform {
	tf := transform.Identity()
	tf.Opacity = min(max(opacity, 0), 1)
	return tf
}
