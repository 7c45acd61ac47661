package shading

import m "github.com/Faultbox/orbitshade/pkg/math"

// Tints is the single owned record of a body's atmosphere colors. Materials
// never copy it; they hold a TintView, so one write is seen by both the
// surface and the atmosphere on the next draw.
type Tints struct {
	day      Color
	twilight Color
}

// NewTints creates a tint record.
func NewTints(day, twilight Color) *Tints {
	return &Tints{day: day, twilight: twilight}
}

// Set replaces both colors.
func (t *Tints) Set(day, twilight Color) {
	t.day = day
	t.twilight = twilight
}

// SetDay replaces the day-side atmosphere color.
func (t *Tints) SetDay(c Color) {
	t.day = c
}

// SetTwilight replaces the twilight atmosphere color.
func (t *Tints) SetTwilight(c Color) {
	t.twilight = c
}

// View returns a read-only handle onto the record.
func (t *Tints) View() TintView {
	return TintView{t: t}
}

// TintView reads a Tints record without being able to change it.
type TintView struct {
	t *Tints
}

// Day returns the current day-side color.
func (v TintView) Day() Color {
	return v.t.day
}

// Twilight returns the current twilight color.
func (v TintView) Twilight() Color {
	return v.t.twilight
}

// Same reports whether both views read the same record.
func (v TintView) Same(other TintView) bool {
	return v.t == other.t
}

// Uniforms captures the view's colors together with this frame's light direction.
func (v TintView) Uniforms(light m.Vec3) Uniforms {
	return Uniforms{
		LightDir:     light,
		DayTint:      v.t.day,
		TwilightTint: v.t.twilight,
	}
}

// Uniforms are the per-draw inputs shared by the surface and atmosphere
// draws of one body. Build one value per body per frame and pass it to both.
type Uniforms struct {
	LightDir     m.Vec3
	DayTint      Color
	TwilightTint Color
}
