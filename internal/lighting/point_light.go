package lighting

import (
	"math"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

// PointLight is the star's light as seen by plainly lit bodies (planets
// without the day/night model, and moons). Irradiance falls off with
// distance^Decay; Ambient is added everywhere.
type PointLight struct {
	Position  m.Vec3
	Color     [3]float32 // linear RGB
	Intensity float32
	Decay     float32
	Ambient   float32
}

// Sanitized clamps the color to [0, 1] and keeps the other terms non-negative.
func (l PointLight) Sanitized() PointLight {
	for i := range l.Color {
		l.Color[i] = m.Clamp(l.Color[i], 0, 1)
	}
	if l.Intensity < 0 {
		l.Intensity = 0
	}
	if l.Decay < 0 {
		l.Decay = 0
	}
	if l.Ambient < 0 {
		l.Ambient = 0
	}
	return l
}

// Irradiance is the per-channel diffuse factor at a surface point with the
// given unit normal: ambient plus the colored Lambert term of the point
// light, as basic.frag computes it. A point sitting on the light only gets
// ambient.
func (l PointLight) Irradiance(position, normal m.Vec3) [3]float32 {
	e := [3]float32{l.Ambient, l.Ambient, l.Ambient}
	dir, err := Direction(l.Position, position)
	if err != nil {
		return e
	}
	lambert := normal.Dot(dir)
	if lambert <= 0 {
		return e
	}
	dist := l.Position.Distance(position)
	falloff := float32(1 / math.Pow(float64(dist), float64(l.Decay)))
	k := lambert * l.Intensity * falloff / math.Pi
	for i := range e {
		e[i] += l.Color[i] * k
	}
	return e
}
