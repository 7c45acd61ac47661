// Package shading holds the per-pixel lighting model for shaded bodies: the
// day/night surface blend with its cloud and specular mask, and the rim-lit
// atmosphere shell. Every function here is pure; the GLSL programs under
// internal/engine/shader/glsl evaluate the same formulas on the GPU.
package shading

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

// Color is a floating point RGBA color. Shading math happens in linear space.
type Color struct {
	R, G, B, A float32
}

// White is opaque white.
var White = Color{1, 1, 1, 1}

// Black is opaque black.
var Black = Color{0, 0, 0, 1}

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// Gray returns an opaque gray of the given level.
func Gray(v float32) Color {
	return Color{v, v, v, 1}
}

// Mix blends the RGB channels of a and b by t; alpha comes from a.
func Mix(a, b Color, t float32) Color {
	return Color{
		R: m.Mix(a.R, b.R, t),
		G: m.Mix(a.G, b.G, t),
		B: m.Mix(a.B, b.B, t),
		A: a.A,
	}
}

// Add returns c + other on RGB, keeping c's alpha.
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A}
}

// Scale multiplies RGB by s, keeping alpha.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Clamp limits every channel to [0, 1].
func (c Color) Clamp() Color {
	return Color{m.Clamp(c.R, 0, 1), m.Clamp(c.G, 0, 1), m.Clamp(c.B, 0, 1), m.Clamp(c.A, 0, 1)}
}

// Over composites c (straight alpha) over dst and returns an opaque result.
func (c Color) Over(dst Color) Color {
	return Mix(dst, c, c.A).WithAlpha(1)
}

// Vec3 returns the RGB channels, the layout vec3 uniforms take.
func (c Color) Vec3() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// NRGBA converts to an 8-bit color without any transfer function.
func (c Color) NRGBA() color.NRGBA {
	c = c.Clamp()
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// FromNRGBA converts an 8-bit color to floating point without any transfer function.
func FromNRGBA(c color.NRGBA) Color {
	return Color{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// Linear converts sRGB-encoded RGB to linear light.
func (c Color) Linear() Color {
	return Color{srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B), c.A}
}

// SRGB converts linear RGB to the sRGB encoding.
func (c Color) SRGB() Color {
	return Color{linearToSRGB(c.R), linearToSRGB(c.G), linearToSRGB(c.B), c.A}
}

func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(math.Pow((float64(v)+0.055)/1.055, 2.4))
}

func linearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return float32(1.055*math.Pow(float64(v), 1/2.4) - 0.055)
}

// ParseHex parses "#rrggbb" or "rrggbb" into an opaque sRGB color.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB(
		float32((v>>16)&0xff)/255,
		float32((v>>8)&0xff)/255,
		float32(v&0xff)/255,
	), nil
}

// Hex formats the RGB channels as "#rrggbb".
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
