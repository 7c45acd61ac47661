package scene

import (
	"github.com/Faultbox/orbitshade/internal/lighting"
	"github.com/Faultbox/orbitshade/internal/shading"
	m "github.com/Faultbox/orbitshade/pkg/math"
)

// DrawKind selects the program a draw uses.
type DrawKind int

const (
	DrawStar DrawKind = iota
	DrawBasic
	DrawSurface
	DrawAtmosphere
)

func (k DrawKind) String() string {
	switch k {
	case DrawStar:
		return "star"
	case DrawBasic:
		return "basic"
	case DrawSurface:
		return "surface"
	case DrawAtmosphere:
		return "atmosphere"
	default:
		return "unknown"
	}
}

// Draw is one mesh draw. Only the fields for its Kind are set.
type Draw struct {
	Kind  DrawKind
	Name  string
	Model m.Mat4

	Basic      BasicMaterial
	Surface    SurfaceMaterial
	Atmosphere AtmosphereMaterial

	// Uniforms is shared by the surface and atmosphere draws of one body.
	Uniforms shading.Uniforms
}

// Frame is everything needed to draw one tick, in draw order: the star,
// then plain bodies and moons, then shaded surfaces, then the blended
// atmosphere shells.
type Frame struct {
	Tick       uint64
	Draws      []Draw
	Light      lighting.PointLight
	Params     shading.Params
	Exposure   float32
	Background shading.Color
}

// Count returns the number of draws of kind k.
func (f *Frame) Count(k DrawKind) int {
	n := 0
	for _, d := range f.Draws {
		if d.Kind == k {
			n++
		}
	}
	return n
}
