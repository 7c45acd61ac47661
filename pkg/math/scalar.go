package math

import "math"

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Smoothstep performs Hermite interpolation between 0 and 1 across [edge0, edge1],
// matching GLSL smoothstep. A zero-width band degrades to a step at edge0.
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Mix blends a and b as a*(1-t) + b*t, which is exact at t == 0 and t == 1.
func Mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// Pow is a float32 wrapper around math.Pow.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// WrapAngle maps an angle in radians into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}
