// Package transform describes the visual adjustment an animated wrapper
// applies to its child.
package transform

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Offset is a 2D displacement in logical pixels.
type Offset struct {
	X, Y float64
}

// Add returns o+other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Scale returns o multiplied by f.
func (o Offset) Scale(f float64) Offset {
	return Offset{X: o.X * f, Y: o.Y * f}
}

// Length returns the distance of o from the origin.
func (o Offset) Length() float64 {
	return math.Hypot(o.X, o.Y)
}

// IsZero reports whether o is the origin.
func (o Offset) IsZero() bool {
	return o.X == 0 && o.Y == 0
}

// Ring is an expanding ring painted behind the child.
type Ring struct {
	// Scale is the ring radius relative to the child's half-diagonal.
	Scale float64
	// Opacity of the ring stroke, 0 to 1.
	Opacity float64
}

// Transform is the set of visual properties an animation drives.
// The zero value is not the identity; use [Identity].
type Transform struct {
	Opacity   float64
	Scale     float64
	Translate Offset
	// Rotation in radians, clockwise, about the child's center.
	Rotation float64
	// Ring is nil unless a ripple is painting.
	Ring *Ring
}

// Identity returns a transform that leaves the child unchanged.
func Identity() Transform {
	return Transform{Opacity: 1, Scale: 1}
}

// IsIdentity reports whether t leaves the child unchanged.
func (t Transform) IsIdentity() bool {
	return t.Opacity == 1 && t.Scale == 1 && t.Translate.IsZero() && t.Rotation == 0 && t.Ring == nil
}

// Matrix returns the affine matrix mapping child coordinates to parent
// coordinates. Scale and rotation pivot around anchor, usually the child's
// center; translation is applied last.
func (t Transform) Matrix(anchor Offset) f64.Aff3 {
	sin, cos := math.Sincos(t.Rotation)
	a := cos * t.Scale
	b := -sin * t.Scale
	c := sin * t.Scale
	d := cos * t.Scale
	// p' = R·S·(p - anchor) + anchor + translate
	tx := anchor.X + t.Translate.X - (a*anchor.X + b*anchor.Y)
	ty := anchor.Y + t.Translate.Y - (c*anchor.X + d*anchor.Y)
	return f64.Aff3{a, b, tx, c, d, ty}
}

// Apply maps a child-space point into parent space.
func (t Transform) Apply(p, anchor Offset) Offset {
	m := t.Matrix(anchor)
	return Offset{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}
