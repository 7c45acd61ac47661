package scene

import (
	"github.com/Faultbox/orbitshade/internal/shading"
)

// TextureRef names an asset and says how to stand in for it.
type TextureRef struct {
	Name string
	Slot TextureSlot
	// Fallback is the flat color drawn when nothing can be loaded.
	Fallback shading.Color
}

// TextureSlot is the role a texture plays in its material.
type TextureSlot int

const (
	SlotAlbedo TextureSlot = iota
	SlotDay
	SlotNight
	SlotSpecularClouds
)

func (s TextureSlot) String() string {
	switch s {
	case SlotAlbedo:
		return "albedo"
	case SlotDay:
		return "day"
	case SlotNight:
		return "night"
	case SlotSpecularClouds:
		return "specular_clouds"
	default:
		return "unknown"
	}
}

// SRGB reports whether the texture holds display-encoded color. The
// specular/cloud mask is data and is sampled as is.
func (s TextureSlot) SRGB() bool {
	return s != SlotSpecularClouds
}

// SurfaceMaterial is the day/night surface of a shaded body.
type SurfaceMaterial struct {
	Day            TextureRef
	Night          TextureRef
	SpecularClouds TextureRef
	Tints          shading.TintView
}

// Textures lists the three surface textures in slot order.
func (m SurfaceMaterial) Textures() []TextureRef {
	return []TextureRef{m.Day, m.Night, m.SpecularClouds}
}

// AtmosphereMaterial is the rim-lit shell drawn around a shaded body.
type AtmosphereMaterial struct {
	Tints shading.TintView
}

// BasicMaterial is a plainly lit (or, for the star, unlit) textured sphere.
type BasicMaterial struct {
	Albedo TextureRef
	Unlit  bool
}

func surfaceRefs(day, night, mask string) (d, n, s TextureRef) {
	d = TextureRef{Name: day, Slot: SlotDay, Fallback: shading.SlotDay.Fallback()}
	n = TextureRef{Name: night, Slot: SlotNight, Fallback: shading.SlotNight.Fallback()}
	s = TextureRef{Name: mask, Slot: SlotSpecularClouds, Fallback: shading.SlotSpecularClouds.Fallback()}
	return d, n, s
}
