package animation

import "math"

// Easing curves transform linear animation progress into natural-feeling motion.
//
// Each curve is a function that takes a value t in [0, 1] and returns a
// transformed value. Set a [Timing]'s Curve field to apply easing.
//
// Named curves ([Ease], [EaseIn], [EaseOut], [EaseInOut]) match their CSS
// counterparts. The families ([Quad], [Cubic], [Poly], [Sin], [Circle], [Exp],
// [Elastic], [Back], [Bounce]) are "in" curves; wrap them with [Out] or
// [InOut] for the other directions.

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates.
// Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.42, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates.
// Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.58, 1.0)

// EaseInOut starts and ends slowly with acceleration in the middle.
// Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)

// Quad is t².
func Quad(t float64) float64 { return t * t }

// Cubic is t³.
func Cubic(t float64) float64 { return t * t * t }

// Poly returns t raised to n.
func Poly(n float64) func(float64) float64 {
	return func(t float64) float64 { return math.Pow(t, n) }
}

// Sin is a quarter sine wave.
func Sin(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

// Circle is a quarter circle.
func Circle(t float64) float64 { return 1 - math.Sqrt(1-t*t) }

// Exp is an exponential curve.
func Exp(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

// Elastic overshoots and oscillates like a spring pulled back and released.
// bounciness 1 overshoots once; 0 does not overshoot.
func Elastic(bounciness float64) func(float64) float64 {
	p := bounciness * math.Pi
	return func(t float64) float64 {
		return 1 - math.Pow(math.Cos(t*math.Pi/2), 3)*math.Cos(t*p)
	}
}

// Back pulls back by s before moving forward. 1.70158 gives a 10% overshoot.
func Back(s float64) func(float64) float64 {
	return func(t float64) float64 {
		return t * t * ((s+1)*t - s)
	}
}

// Bounce is a bouncing-ball curve that settles at 1.
func Bounce(t float64) float64 {
	switch {
	case t < 1/2.75:
		return 7.5625 * t * t
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return 7.5625*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return 7.5625*t*t + 0.9375
	default:
		t -= 2.625 / 2.75
		return 7.5625*t*t + 0.984375
	}
}

// Out runs curve backwards.
func Out(curve func(float64) float64) func(float64) float64 {
	return func(t float64) float64 { return 1 - curve(1-t) }
}

// InOut runs curve forwards for the first half and backwards for the second.
func InOut(curve func(float64) float64) func(float64) float64 {
	return func(t float64) float64 {
		if t < 0.5 {
			return curve(t*2) / 2
		}
		return 1 - curve((1-t)*2)/2
	}
}

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := bezierAt(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezierAt(y1, y2, clampUnit(u))
			}
			dx := bezierSlope(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection keeps the solution inside [0,1] when Newton stalls.
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 16 {
			x := bezierAt(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return bezierAt(y1, y2, u)
	}
}

func bezierAt(p1, p2, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*p1 + 3*inv*t*t*p2 + t*t*t
}

func bezierSlope(p1, p2, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*p1 + 6*inv*t*(p2-p1) + 3*t*t*(1-p2)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
