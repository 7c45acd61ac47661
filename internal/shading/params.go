package shading

import (
	"errors"
	"fmt"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid shading parameters")

// Params are the artistic constants of the surface and atmosphere models.
// None of them has a physical derivation; they are tuned by eye.
type Params struct {
	// TerminatorLow and TerminatorHigh bound the smoothstep that turns
	// dot(normal, light) into the day/night mix. Both models share it.
	TerminatorLow  float32
	TerminatorHigh float32

	// TerminatorTint is how strongly the twilight tint colors the surface
	// inside the terminator band. Zero disables the shift.
	TerminatorTint float32

	// CloudLow and CloudHigh bound the smoothstep applied to the mask's
	// cloud (green) channel; CloudStrength scales the resulting opacity.
	CloudLow      float32
	CloudHigh     float32
	CloudStrength float32

	// SpecularExponent sharpens the highlight driven by the mask's red channel.
	SpecularExponent float32
	SpecularStrength float32

	// FresnelExponent controls rim thickness; larger means thinner.
	FresnelExponent float32

	// GlowLow and GlowHigh bound the falloff that fades the atmosphere
	// out on the night side.
	GlowLow  float32
	GlowHigh float32
}

// DefaultParams returns the tuned defaults.
func DefaultParams() Params {
	return Params{
		TerminatorLow:    -0.25,
		TerminatorHigh:   0.5,
		TerminatorTint:   0.15,
		CloudLow:         0.5,
		CloudHigh:        1.0,
		CloudStrength:    1.0,
		SpecularExponent: 32,
		SpecularStrength: 1.0,
		FresnelExponent:  3.0,
		GlowLow:          -0.5,
		GlowHigh:         0.0,
	}
}

// Validate reports every out-of-range field.
func (p Params) Validate() error {
	var errs []error
	if !(p.TerminatorLow < p.TerminatorHigh) {
		errs = append(errs, fmt.Errorf("terminator band [%g, %g] is empty", p.TerminatorLow, p.TerminatorHigh))
	}
	if !(p.CloudLow < p.CloudHigh) {
		errs = append(errs, fmt.Errorf("cloud band [%g, %g] is empty", p.CloudLow, p.CloudHigh))
	}
	if !(p.GlowLow < p.GlowHigh) {
		errs = append(errs, fmt.Errorf("glow band [%g, %g] is empty", p.GlowLow, p.GlowHigh))
	}
	if !(p.FresnelExponent > 0) {
		errs = append(errs, fmt.Errorf("fresnel exponent %g must be positive", p.FresnelExponent))
	}
	if !(p.SpecularExponent > 0) {
		errs = append(errs, fmt.Errorf("specular exponent %g must be positive", p.SpecularExponent))
	}
	if p.TerminatorTint < 0 || p.TerminatorTint > 1 {
		errs = append(errs, fmt.Errorf("terminator tint %g outside [0, 1]", p.TerminatorTint))
	}
	if p.CloudStrength < 0 || p.SpecularStrength < 0 {
		errs = append(errs, fmt.Errorf("strengths must be non-negative"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
}

// SunOrientation is dot(normal, light) for unit vectors, clamped to [-1, 1]
// so rounding on nearly parallel inputs cannot leave the range.
func SunOrientation(normal, light m.Vec3) float32 {
	return m.Clamp(normal.Dot(light), -1, 1)
}

// DayMix maps a sun orientation to the day/night blend factor in [0, 1].
// The surface and atmosphere models both call this so their terminators align.
func (p Params) DayMix(sunOrientation float32) float32 {
	return m.Smoothstep(p.TerminatorLow, p.TerminatorHigh, sunOrientation)
}

// GlowFalloff fades the atmosphere towards zero on the night side.
func (p Params) GlowFalloff(sunOrientation float32) float32 {
	return m.Smoothstep(p.GlowLow, p.GlowHigh, sunOrientation)
}
