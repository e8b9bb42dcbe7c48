package animation

import "github.com/go-drift/animwrap/pkg/transform"

// LerpFloat64 maps eased progress t onto [a, b]. Curves that overshoot give
// t outside [0, 1]; the result is extrapolated. t == 1 returns b exactly.
func LerpFloat64(a, b, t float64) float64 {
	if t == 1 {
		return b
	}
	return a + (b-a)*t
}

// LerpOffset interpolates each axis with [LerpFloat64].
func LerpOffset(a, b transform.Offset, t float64) transform.Offset {
	return transform.Offset{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}
