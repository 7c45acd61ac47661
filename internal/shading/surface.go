package shading

import (
	m "github.com/Faultbox/orbitshade/pkg/math"
)

// Fragment is the interpolated geometry of one pixel.
type Fragment struct {
	// Normal is the unit world-space surface normal.
	Normal m.Vec3
	// View is the unit world-space direction from the camera to the surface point.
	View m.Vec3
}

// Texels are the three surface texture samples for one pixel. The mask's
// red channel drives the specular highlight and its green channel the clouds.
type Texels struct {
	Day            Color
	Night          Color
	SpecularClouds Color
}

// Surface shades one pixel of a body's day/night surface.
//
// At a day mix of 0 the result is exactly the night texel; at 1 it is the
// day texel with the cloud overlay plus the masked specular highlight.
func (p Params) Surface(f Fragment, t Texels, u Uniforms) Color {
	sun := SunOrientation(f.Normal, u.LightDir)
	dayMix := p.DayMix(sun)

	c := Mix(t.Night, t.Day, dayMix)

	// Twilight shift peaks mid-terminator and vanishes at both extremes.
	c = Mix(c, u.TwilightTint, p.TerminatorTint*4*dayMix*(1-dayMix))

	clouds := m.Smoothstep(p.CloudLow, p.CloudHigh, t.SpecularClouds.G) * dayMix * p.CloudStrength
	c = Mix(c, White, clouds)

	c = c.Add(White.Scale(p.Specular(f, u.LightDir, t.SpecularClouds.R) * dayMix))

	return c.WithAlpha(1)
}

// SurfaceAt samples the textures at uv and shades the pixel.
func (p Params) SurfaceAt(f Fragment, uv m.Vec2, textures TextureSet, u Uniforms) Color {
	return p.Surface(f, textures.Sample(uv), u)
}

// Specular is the mirror highlight of the light seen along f.View, scaled by
// the mask value.
func (p Params) Specular(f Fragment, light m.Vec3, mask float32) float32 {
	reflection := light.Negate().Reflect(f.Normal)
	s := m.Clamp(-reflection.Dot(f.View), 0, 1)
	return m.Pow(s, p.SpecularExponent) * mask * p.SpecularStrength
}
