package shading

import (
	m "github.com/Faultbox/orbitshade/pkg/math"
)

// Atmosphere shades one pixel of the enlarged shell drawn around a body.
// The returned color is the day/twilight tint; its alpha is the rim factor
// faded out on the night side. The shell is drawn back faces only and
// alpha-blended over whatever is already in the framebuffer.
func (p Params) Atmosphere(f Fragment, u Uniforms) Color {
	sun := SunOrientation(f.Normal, u.LightDir)
	tint := Mix(u.TwilightTint, u.DayTint, p.DayMix(sun))
	return tint.WithAlpha(p.Edge(f) * p.GlowFalloff(sun))
}

// Edge is the Fresnel-style rim factor: 0 when viewed head-on, 1 at grazing angles.
func (p Params) Edge(f Fragment) float32 {
	facing := f.Normal.Dot(f.View)
	if facing < 0 {
		facing = -facing
	}
	return m.Pow(m.Clamp(1-facing, 0, 1), p.FresnelExponent)
}
