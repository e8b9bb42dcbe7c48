package wrapper

import (
	"math"

	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/transform"
)

type wiggleVariant struct {
	amplitude float64 // radians
	cycles    int
}

// NewWiggle builds the WIGGLE behavior: a sine rotation of angle degrees
// that decays to rest over oscillations cycles.
func NewWiggle(cfg config.Config, env Env) (Behavior, error) {
	b, err := newTweenBehavior(cfg, env, func(cfg config.Config) (variant[float64], error) {
		c, err := as[config.Wiggle](cfg)
		if err != nil {
			return nil, err
		}
		return wiggleVariant{amplitude: c.Amplitude() * math.Pi / 180, cycles: c.Cycles()}, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (wiggleVariant) initial() float64 { return 0 }
func (wiggleVariant) final() float64   { return 0 }
func (wiggleVariant) iterations() int  { return 1 }

func (v wiggleVariant) sample(t float64) float64 {
	return v.amplitude * math.Sin(2*math.Pi*float64(v.cycles)*t) * (1 - t)
}

func (wiggleVariant) render(rotation float64) transform.Transform {
	tf := transform.Identity()
	tf.Rotation = rotation
	return tf
}
