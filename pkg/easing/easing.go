// Package easing resolves declarative interpolation descriptors into
// easing curves.
//
// A descriptor names a curve and, for curve families, a direction:
//
//	interpolationDef:
//	  curve: QUAD
//	  mode: OUT
//
// or gives cubic-bezier control points:
//
//	interpolationDef:
//	  controlPoints: [0.25, 0.1, 0.25, 1.0]
//
// Resolve never substitutes a default for something it does not recognise;
// it returns a *errors.ConfigError instead.
package easing

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/errors"
)

// Curve names a built-in curve.
type Curve string

const (
	Linear    Curve = "LINEAR"
	Ease      Curve = "EASE"
	EaseIn    Curve = "EASE_IN"
	EaseOut   Curve = "EASE_OUT"
	EaseInOut Curve = "EASE_IN_OUT"
	Quad      Curve = "QUAD"
	Cubic     Curve = "CUBIC"
	Poly      Curve = "POLY"
	Sin       Curve = "SIN"
	Circle    Curve = "CIRCLE"
	Exp       Curve = "EXP"
	Bounce    Curve = "BOUNCE"
	Elastic   Curve = "ELASTIC"
	Back      Curve = "BACK"
	Bezier    Curve = "BEZIER"
)

// Mode selects the direction of a curve.
type Mode string

const (
	In    Mode = "IN"
	Out   Mode = "OUT"
	InOut Mode = "IN_OUT"
)

// Descriptor is the declarative form of an easing curve.
//
// The zero Descriptor means "not specified" and resolves to EASE_IN_OUT,
// the default of timed animations.
type Descriptor struct {
	Curve         Curve     `yaml:"curve,omitempty" json:"curve,omitempty"`
	Mode          Mode      `yaml:"mode,omitempty" json:"mode,omitempty"`
	ControlPoints []float64 `yaml:"controlPoints,omitempty" json:"controlPoints,omitempty"`
	// Exponent is required by POLY.
	Exponent float64 `yaml:"exponent,omitempty" json:"exponent,omitempty"`
	// Bounciness tunes ELASTIC (default 1) and BACK overshoot (default 1.70158).
	Bounciness float64 `yaml:"bounciness,omitempty" json:"bounciness,omitempty"`
}

// IsZero reports whether d specifies nothing.
func (d Descriptor) IsZero() bool {
	return d.Curve == "" && d.Mode == "" && len(d.ControlPoints) == 0 && d.Exponent == 0 && d.Bounciness == 0
}

func (d Descriptor) String() string {
	if d.IsZero() {
		return "default"
	}
	var sb strings.Builder
	sb.WriteString(string(d.Curve))
	if d.Mode != "" {
		sb.WriteString("/")
		sb.WriteString(string(d.Mode))
	}
	if len(d.ControlPoints) > 0 {
		fmt.Fprintf(&sb, "%v", d.ControlPoints)
	}
	return sb.String()
}

// Resolve maps d to an easing curve. The result is pure: it holds no
// state and returns the same output for the same input.
func Resolve(d Descriptor) (func(float64) float64, error) {
	if d.IsZero() {
		return animation.EaseInOut, nil
	}

	curve := d.Curve
	if curve == "" {
		if len(d.ControlPoints) == 0 {
			return nil, &errors.ConfigError{Field: "interpolationDef.curve", Value: "", Reason: "curve is required"}
		}
		curve = Bezier
	}
	if err := checkFinite(d); err != nil {
		return nil, err
	}
	if len(d.ControlPoints) > 0 && curve != Bezier {
		return nil, &errors.ConfigError{
			Field:  "interpolationDef.controlPoints",
			Value:  d.ControlPoints,
			Reason: fmt.Sprintf("control points are only valid for %s", Bezier),
		}
	}

	base, err := baseCurve(curve, d)
	if err != nil {
		return nil, err
	}
	return applyMode(base, d.Mode)
}

func baseCurve(curve Curve, d Descriptor) (func(float64) float64, error) {
	switch curve {
	case Linear:
		return animation.LinearCurve, nil
	case Ease:
		return animation.Ease, nil
	case EaseIn:
		return animation.EaseIn, nil
	case EaseOut:
		return animation.EaseOut, nil
	case EaseInOut:
		return animation.EaseInOut, nil
	case Quad:
		return animation.Quad, nil
	case Cubic:
		return animation.Cubic, nil
	case Poly:
		if d.Exponent <= 0 {
			return nil, &errors.ConfigError{Field: "interpolationDef.exponent", Value: d.Exponent, Reason: "POLY requires a positive exponent"}
		}
		return animation.Poly(d.Exponent), nil
	case Sin:
		return animation.Sin, nil
	case Circle:
		return animation.Circle, nil
	case Exp:
		return animation.Exp, nil
	case Bounce:
		return animation.Bounce, nil
	case Elastic:
		b := d.Bounciness
		if b == 0 {
			b = 1
		}
		if b < 0 {
			return nil, &errors.ConfigError{Field: "interpolationDef.bounciness", Value: d.Bounciness, Reason: "must not be negative"}
		}
		return animation.Elastic(b), nil
	case Back:
		s := d.Bounciness
		if s == 0 {
			s = 1.70158
		}
		return animation.Back(s), nil
	case Bezier:
		return bezier(d.ControlPoints)
	default:
		return nil, &errors.ConfigError{Field: "interpolationDef.curve", Value: string(curve), Reason: "unknown curve"}
	}
}

func bezier(points []float64) (func(float64) float64, error) {
	if len(points) != 4 {
		return nil, &errors.ConfigError{
			Field:  "interpolationDef.controlPoints",
			Value:  points,
			Reason: fmt.Sprintf("BEZIER needs 4 control points, got %d", len(points)),
		}
	}
	x1, y1, x2, y2 := points[0], points[1], points[2], points[3]
	if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return nil, &errors.ConfigError{
			Field:  "interpolationDef.controlPoints",
			Value:  points,
			Reason: "x control points must be within [0, 1]",
		}
	}
	return animation.CubicBezier(x1, y1, x2, y2), nil
}

func applyMode(curve func(float64) float64, mode Mode) (func(float64) float64, error) {
	switch mode {
	case "", In:
		return curve, nil
	case Out:
		return animation.Out(curve), nil
	case InOut:
		return animation.InOut(curve), nil
	default:
		return nil, &errors.ConfigError{Field: "interpolationDef.mode", Value: string(mode), Reason: "unknown mode"}
	}
}

func checkFinite(d Descriptor) error {
	values := append([]float64{d.Exponent, d.Bounciness}, d.ControlPoints...)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &errors.ConfigError{Field: "interpolationDef", Value: v, Reason: "numbers must be finite"}
		}
	}
	return nil
}
