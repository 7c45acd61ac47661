package shading

import (
	"image/color"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

// DefaultExposure brightens the filmic curve slightly.
const DefaultExposure = 1.1

// ToneMap scales linear color by exposure and compresses it with the ACES
// filmic fit by Krzysztof Narkowicz. Alpha passes through.
func ToneMap(c Color, exposure float32) Color {
	return Color{aces(c.R * exposure), aces(c.G * exposure), aces(c.B * exposure), c.A}
}

func aces(x float32) float32 {
	const (
		a = 2.51
		b = 0.03
		c = 2.43
		d = 0.59
		e = 0.14
	)
	return m.Clamp((x*(a*x+b))/(x*(c*x+d)+e), 0, 1)
}

// Encode turns a linear shaded color into a displayable 8-bit sRGB pixel.
func Encode(c Color, exposure float32) color.NRGBA {
	return ToneMap(c, exposure).SRGB().NRGBA()
}
