// Package lighting computes where the light comes from: the star's position,
// the per-body light direction fed to the shading models, and the point
// light used for plainly lit bodies.
package lighting

import (
	"math"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

// SunPosition converts spherical coordinates to a world position.
// phi is the polar angle from +Y and theta the azimuth from +Z towards +X,
// so (1, π/2, 0) lands on (0, 0, 1).
func SunPosition(radius, phi, theta float64) m.Vec3 {
	sinPhi := math.Sin(phi) * radius
	return m.Vec3{
		X: float32(sinPhi * math.Sin(theta)),
		Y: float32(math.Cos(phi) * radius),
		Z: float32(sinPhi * math.Cos(theta)),
	}
}
