package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/orbitshade/internal/shading"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Params converts the shading section to model parameters.
func (s ShadingConfig) Params() shading.Params {
	return shading.Params{
		TerminatorLow:    s.TerminatorLow,
		TerminatorHigh:   s.TerminatorHigh,
		TerminatorTint:   s.TerminatorTint,
		CloudLow:         s.CloudLow,
		CloudHigh:        s.CloudHigh,
		CloudStrength:    s.CloudStrength,
		SpecularExponent: s.SpecularExponent,
		SpecularStrength: s.SpecularStrength,
		FresnelExponent:  s.FresnelExponent,
		GlowLow:          s.GlowLow,
		GlowHigh:         s.GlowHigh,
	}
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		add("graphics: size %dx%d must be positive", g.Width, g.Height)
	}
	if !(g.Exposure > 0) {
		add("graphics: exposure %g must be positive", g.Exposure)
	}
	if g.SphereSegments < 3 {
		add("graphics: sphere_segments %d must be at least 3", g.SphereSegments)
	}
	if _, err := shading.ParseHex(g.Background); err != nil {
		add("graphics: background: %w", err)
	}

	cam := c.Camera
	if !(cam.FOV > 0 && cam.FOV < 180) {
		add("camera: fov %g outside (0, 180)", cam.FOV)
	}
	if !(cam.Near > 0 && cam.Near < cam.Far) {
		add("camera: clip planes near=%g far=%g", cam.Near, cam.Far)
	}
	if cam.Damping < 0 || cam.Damping > 1 {
		add("camera: damping %g outside [0, 1]", cam.Damping)
	}
	if cam.MinDistance > cam.MaxDistance {
		add("camera: min_distance %g exceeds max_distance %g", cam.MinDistance, cam.MaxDistance)
	}

	if c.Simulation.TickRate <= 0 {
		add("simulation: tick_rate %d must be positive", c.Simulation.TickRate)
	}

	if !(c.Sun.Radius > 0) {
		add("sun: radius %g must be positive", c.Sun.Radius)
	}
	for _, hex := range []string{c.Sun.Color, c.Sun.Light} {
		if _, err := shading.ParseHex(hex); err != nil {
			add("sun: %w", err)
		}
	}

	if err := c.Shading.Params().Validate(); err != nil {
		add("shading: %w", err)
	}

	names := make(map[string]bool, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.Name == "" {
			add("bodies[%d]: missing name", i)
		} else if names[b.Name] {
			add("bodies[%d]: duplicate name %q", i, b.Name)
		}
		names[b.Name] = true
		errs = append(errs, validateBody(b)...)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func validateBody(b BodyConfig) []error {
	var errs []error
	if !(b.Radius > 0) {
		errs = append(errs, fmt.Errorf("%s: radius %g must be positive", b.Name, b.Radius))
	}
	if b.Distance < 0 {
		errs = append(errs, fmt.Errorf("%s: distance %g is negative", b.Name, b.Distance))
	}
	if b.Color != "" {
		if _, err := shading.ParseHex(b.Color); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))
		}
	}
	if s := b.Surface; s != nil {
		for _, hex := range []string{s.Atmosphere.DayColor, s.Atmosphere.TwilightColor} {
			if _, err := shading.ParseHex(hex); err != nil {
				errs = append(errs, fmt.Errorf("%s: atmosphere: %w", b.Name, err))
			}
		}
		if s.Atmosphere.Scale != 0 && s.Atmosphere.Scale < 1 {
			errs = append(errs, fmt.Errorf("%s: atmosphere scale %g below 1", b.Name, s.Atmosphere.Scale))
		}
	}
	moons := make(map[string]bool, len(b.Moons))
	for _, m := range b.Moons {
		if m.Name == "" || moons[m.Name] {
			errs = append(errs, fmt.Errorf("%s: moon name %q missing or duplicated", b.Name, m.Name))
		}
		moons[m.Name] = true
		if !(m.Radius > 0) || m.Distance < 0 {
			errs = append(errs, fmt.Errorf("%s/%s: radius %g, distance %g", b.Name, m.Name, m.Radius, m.Distance))
		}
		if m.Color != "" {
			if _, err := shading.ParseHex(m.Color); err != nil {
				errs = append(errs, fmt.Errorf("%s/%s: %w", b.Name, m.Name, err))
			}
		}
	}
	return errs
}
