// Package config defines AnimationConfig, the declarative description of an
// animated wrapper, as a closed tagged union.
//
// Every concrete config embeds [Base] for the fields shared by all
// behaviors. The discriminant is derived from the concrete value by
// [Config.Type] and cannot change for the lifetime of that value.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/animwrap/pkg/easing"
	"github.com/go-drift/animwrap/pkg/transform"
)

// Type is the discriminant of an animation config.
type Type string

const (
	TypeRipple    Type = "RIPPLE"
	TypeBounce    Type = "BOUNCE"
	TypeScale     Type = "SCALE"
	TypeFadeIn    Type = "FADE_IN"
	TypeFadeOut   Type = "FADE_OUT"
	TypeDraggable Type = "DRAGGABLE"
	TypeSlideIn   Type = "SLIDE_IN"
	TypeSlideOut  Type = "SLIDE_OUT"
	TypeWiggle    Type = "WIGGLE"
	// TypeJSON names Lottie-driven animations. It is recognised so that it
	// can be rejected with a clear error; no behavior implements it.
	TypeJSON Type = "JSON"
)

// Types lists every discriminant that has a behavior.
var Types = []Type{
	TypeRipple, TypeBounce, TypeScale, TypeFadeIn, TypeFadeOut,
	TypeDraggable, TypeSlideIn, TypeSlideOut, TypeWiggle,
}

// TriggerType decides when an animation starts.
type TriggerType string

const (
	// OnClick waits for a press on the child.
	OnClick TriggerType = "ON_CLICK"
	// OnLoad starts as soon as the wrapper mounts.
	OnLoad TriggerType = "ON_LOAD"
)

// Duration is a time.Duration that decodes from integer milliseconds or a
// Go duration string ("300ms", "1.5s").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: animationDuration must be a scalar", value.Line)
	}
	s := strings.TrimSpace(value.Value)
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(ms * float64(time.Millisecond))
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: animationDuration %q: want milliseconds or a duration like 300ms", value.Line, s)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Base holds the fields shared by every animation config.
type Base struct {
	TriggerType   TriggerType       `yaml:"triggerType,omitempty" validate:"omitempty,oneof=ON_CLICK ON_LOAD"`
	Duration      Duration          `yaml:"animationDuration,omitempty" validate:"gte=0"`
	Interpolation easing.Descriptor `yaml:"interpolationDef,omitempty" validate:"-"`
}

// Trigger returns the trigger type, defaulting to OnClick.
func (b Base) Trigger() TriggerType {
	if b.TriggerType == "" {
		return OnClick
	}
	return b.TriggerType
}

// Config is an animation config. The set of implementations is closed.
type Config interface {
	// Type returns the discriminant.
	Type() Type
	// Common returns the shared fields.
	Common() Base
	isConfig()
}

func (b Base) Common() Base { return b }
func (Base) isConfig()      {}

// Scale animates the child's scale factor from FromScale to ToScale.
type Scale struct {
	Base      `yaml:",inline"`
	FromScale *float64 `yaml:"fromScale,omitempty" validate:"omitempty,gte=0"`
	ToScale   float64  `yaml:"toScale" validate:"gte=0"`
}

func (Scale) Type() Type { return TypeScale }

// From returns FromScale, defaulting to 1.
func (s Scale) From() float64 {
	if s.FromScale == nil {
		return 1
	}
	return *s.FromScale
}

// Direction says whether an entrance or exit animation is described.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Fade animates opacity between 0 and 1. The direction comes from the
// discriminant (FADE_IN or FADE_OUT).
type Fade struct {
	Base      `yaml:",inline"`
	Direction Direction `yaml:"-"`
}

func (f Fade) Type() Type {
	if f.Direction == DirectionOut {
		return TypeFadeOut
	}
	return TypeFadeIn
}

// Edge is the side a slide enters from or exits to.
type Edge string

const (
	EdgeLeft   Edge = "LEFT"
	EdgeRight  Edge = "RIGHT"
	EdgeTop    Edge = "TOP"
	EdgeBottom Edge = "BOTTOM"
)

// DefaultSlideDistance is used when Slide.Distance is zero.
const DefaultSlideDistance = 100

// Slide animates a translation offset between the child's resting position
// and Distance pixels toward Edge.
type Slide struct {
	Base      `yaml:",inline"`
	Direction Direction `yaml:"-"`
	Edge      Edge      `yaml:"edge,omitempty" validate:"omitempty,oneof=LEFT RIGHT TOP BOTTOM"`
	Distance  float64   `yaml:"distance,omitempty" validate:"gte=0"`
}

func (s Slide) Type() Type {
	if s.Direction == DirectionOut {
		return TypeSlideOut
	}
	return TypeSlideIn
}

// Offset returns the displaced position: Distance toward Edge.
func (s Slide) Offset() transform.Offset {
	d := s.Distance
	if d == 0 {
		d = DefaultSlideDistance
	}
	switch s.Edge {
	case EdgeRight:
		return transform.Offset{X: d}
	case EdgeTop:
		return transform.Offset{Y: -d}
	case EdgeBottom:
		return transform.Offset{Y: d}
	default:
		return transform.Offset{X: -d}
	}
}

// DefaultBounceHeight is used when Bounce.Height is zero.
const DefaultBounceHeight = 20

// Bounce lifts the child by Height and drops it back, Repeat times.
type Bounce struct {
	Base   `yaml:",inline"`
	Height float64 `yaml:"height,omitempty" validate:"gte=0"`
	Repeat int     `yaml:"repeat,omitempty" validate:"gte=0"`
}

func (Bounce) Type() Type { return TypeBounce }

// Lift returns the bounce height, applying the default.
func (b Bounce) Lift() float64 {
	if b.Height == 0 {
		return DefaultBounceHeight
	}
	return b.Height
}

// Ripple paints a ring behind the child that grows to MaxScale while fading.
type Ripple struct {
	Base     `yaml:",inline"`
	MaxScale float64 `yaml:"maxScale,omitempty" validate:"omitempty,gte=1"`
	Opacity  float64 `yaml:"opacity,omitempty" validate:"gte=0,lte=1"`
	Repeat   int     `yaml:"repeat,omitempty" validate:"gte=0"`
}

func (Ripple) Type() Type { return TypeRipple }

// Spread returns MaxScale, defaulting to 2.
func (r Ripple) Spread() float64 {
	if r.MaxScale == 0 {
		return 2
	}
	return r.MaxScale
}

// StartOpacity returns Opacity, defaulting to 0.5.
func (r Ripple) StartOpacity() float64 {
	if r.Opacity == 0 {
		return 0.5
	}
	return r.Opacity
}

// Wiggle rocks the child around its center with a decaying oscillation.
type Wiggle struct {
	Base         `yaml:",inline"`
	Angle        float64 `yaml:"angle,omitempty" validate:"gte=0,lte=360"`
	Oscillations int     `yaml:"oscillations,omitempty" validate:"gte=0"`
}

func (Wiggle) Type() Type { return TypeWiggle }

// Amplitude returns Angle in degrees, defaulting to 15.
func (w Wiggle) Amplitude() float64 {
	if w.Angle == 0 {
		return 15
	}
	return w.Angle
}

// Cycles returns Oscillations, defaulting to 3.
func (w Wiggle) Cycles() int {
	if w.Oscillations == 0 {
		return 3
	}
	return w.Oscillations
}

// Bounds limits how far a draggable child may move from its origin.
type Bounds struct {
	MinX float64 `yaml:"minX"`
	MaxX float64 `yaml:"maxX" validate:"gtefield=MinX"`
	MinY float64 `yaml:"minY"`
	MaxY float64 `yaml:"maxY" validate:"gtefield=MinY"`
}

// Clamp returns o limited to b.
func (b Bounds) Clamp(o transform.Offset) transform.Offset {
	return transform.Offset{
		X: min(max(o.X, b.MinX), b.MaxX),
		Y: min(max(o.Y, b.MinY), b.MaxY),
	}
}

// Draggable lets the user move the child. With SpringBack the child returns
// to its origin when released.
type Draggable struct {
	Base       `yaml:",inline"`
	SpringBack *bool   `yaml:"springBack,omitempty"`
	Bounds     *Bounds `yaml:"bounds,omitempty"`
}

func (Draggable) Type() Type { return TypeDraggable }

// ReturnsHome reports whether the child springs back on release. Defaults to true.
func (d Draggable) ReturnsHome() bool {
	return d.SpringBack == nil || *d.SpringBack
}

func repeatCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Iterations returns Repeat, at least 1.
func (b Bounce) Iterations() int { return repeatCount(b.Repeat) }

// Iterations returns Repeat, at least 1.
func (r Ripple) Iterations() int { return repeatCount(r.Repeat) }

var (
	_ Config = Scale{}
	_ Config = Fade{}
	_ Config = Slide{}
	_ Config = Bounce{}
	_ Config = Ripple{}
	_ Config = Wiggle{}
	_ Config = Draggable{}
)
