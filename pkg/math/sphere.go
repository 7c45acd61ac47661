package math

import "math"

// SphereDirection maps an equirectangular texture coordinate to a point on
// the unit sphere. U runs around the Y axis starting at -X, V=1 is the
// north pole (+Y). This is the layout of a UV sphere whose seam sits at -X.
func SphereDirection(u, v float32) Vec3 {
	phi := float64(u) * TwoPi
	theta := (1 - float64(v)) * math.Pi
	sinTheta := math.Sin(theta)
	return Vec3{
		X: float32(-math.Cos(phi) * sinTheta),
		Y: float32(math.Cos(theta)),
		Z: float32(math.Sin(phi) * sinTheta),
	}
}

// SphereUV is the inverse of SphereDirection for a unit vector.
func SphereUV(dir Vec3) Vec2 {
	y := math.Max(-1, math.Min(1, float64(dir.Y)))
	phi := math.Atan2(float64(dir.Z), -float64(dir.X))
	if phi < 0 {
		phi += TwoPi
	}
	return Vec2{
		X: float32(phi / TwoPi),
		Y: float32(1 - math.Acos(y)/math.Pi),
	}
}
