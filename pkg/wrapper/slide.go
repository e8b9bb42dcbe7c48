package wrapper

import (
	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/transform"
)

type slideVariant struct {
	from, to transform.Offset
}

// NewSlide builds SLIDE_IN (from the displaced edge offset to rest) and
// SLIDE_OUT (from rest to the edge offset).
func NewSlide(cfg config.Config, env Env) (Behavior, error) {
	b, err := newTweenBehavior(cfg, env, func(cfg config.Config) (variant[transform.Offset], error) {
		c, err := as[config.Slide](cfg)
		if err != nil {
			return nil, err
		}
		if c.Direction == config.DirectionOut {
			return slideVariant{to: c.Offset()}, nil
		}
		return slideVariant{from: c.Offset()}, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (v slideVariant) initial() transform.Offset { return v.from }
func (v slideVariant) final() transform.Offset   { return v.to }
func (slideVariant) iterations() int             { return 1 }

func (v slideVariant) sample(t float64) transform.Offset {
	return animation.LerpOffset(v.from, v.to, t)
}

func (slideVariant) render(offset transform.Offset) transform.Transform {
	tf := transform.Identity()
	tf.Translate = offset
	return tf
}
