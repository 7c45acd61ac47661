// Package orbit advances the orbital kinematics of the scene and composes
// the world transforms of bodies, their atmosphere shells and their moons.
package orbit

import (
	"errors"
	"fmt"
	"math"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

// ErrInvalidBody is returned when a body or moon definition cannot be simulated.
var ErrInvalidBody = errors.New("invalid body")

// DefaultAtmosphereScale is the shell radius relative to the body radius.
const DefaultAtmosphereScale = 1.04

// Motion is the orbital state shared by bodies and moons. Speed and Spin are
// radians per tick; Angle and SpinAngle stay in [0, 2π).
type Motion struct {
	Radius    float64
	Distance  float64
	Speed     float64
	Spin      float64
	Angle     float64
	SpinAngle float64
}

func (mo *Motion) tick() {
	mo.Angle = m.WrapAngle(mo.Angle + mo.Speed)
	mo.SpinAngle = m.WrapAngle(mo.SpinAngle + mo.Spin)
}

// pivot is RotY(angle) · T(distance, 0, 0): the orbit node before spin and scale.
func (mo *Motion) pivot() m.Mat4 {
	return m.RotateY(float32(mo.Angle)).Mul(m.Translate(float32(mo.Distance), 0, 0))
}

// mesh appends the body's own spin and scale to its orbit node.
func (mo *Motion) mesh(node m.Mat4) m.Mat4 {
	return node.Mul(m.RotateY(float32(mo.SpinAngle))).Mul(m.UniformScale(float32(mo.Radius)))
}

func (mo *Motion) validate(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidBody)
	}
	if !(mo.Radius > 0) {
		return fmt.Errorf("%w: %s: radius %g must be positive", ErrInvalidBody, name, mo.Radius)
	}
	if mo.Distance < 0 {
		return fmt.Errorf("%w: %s: distance %g is negative", ErrInvalidBody, name, mo.Distance)
	}
	for _, v := range []float64{mo.Radius, mo.Distance, mo.Speed, mo.Spin, mo.Angle, mo.SpinAngle} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s: non-finite parameter", ErrInvalidBody, name)
		}
	}
	return nil
}

// Moon orbits its parent body's orbit node. It follows the parent around
// the star but is not affected by the parent's spin or scale.
type Moon struct {
	Name string
	Motion
}

// Body is a planet orbiting the scene origin.
type Body struct {
	Name string
	Motion
	// AtmosphereScale is the shell radius relative to Radius; zero selects
	// DefaultAtmosphereScale.
	AtmosphereScale float64
	Moons           []Moon
}

// MoonConfig describes a moon at construction time.
type MoonConfig struct {
	Name     string
	Radius   float64
	Distance float64
	Speed    float64
	Spin     float64
	// Phase is the starting orbit angle.
	Phase float64
}

// BodyConfig describes a body at construction time.
type BodyConfig struct {
	Name            string
	Radius          float64
	Distance        float64
	Speed           float64
	Spin            float64
	Phase           float64
	AtmosphereScale float64
	Moons           []MoonConfig
}

func newBody(cfg BodyConfig) (Body, error) {
	b := Body{
		Name: cfg.Name,
		Motion: Motion{
			Radius:   cfg.Radius,
			Distance: cfg.Distance,
			Speed:    cfg.Speed,
			Spin:     cfg.Spin,
			Angle:    m.WrapAngle(cfg.Phase),
		},
		AtmosphereScale: cfg.AtmosphereScale,
	}
	if err := b.validate(b.Name); err != nil {
		return Body{}, err
	}
	if b.AtmosphereScale != 0 && !(b.AtmosphereScale >= 1) {
		return Body{}, fmt.Errorf("%w: %s: atmosphere scale %g must be at least 1", ErrInvalidBody, b.Name, b.AtmosphereScale)
	}

	seen := make(map[string]bool, len(cfg.Moons))
	for _, mc := range cfg.Moons {
		moon := Moon{
			Name: mc.Name,
			Motion: Motion{
				Radius:   mc.Radius,
				Distance: mc.Distance,
				Speed:    mc.Speed,
				Spin:     mc.Spin,
				Angle:    m.WrapAngle(mc.Phase),
			},
		}
		if err := moon.validate(moon.Name); err != nil {
			return Body{}, fmt.Errorf("moon of %s: %w", b.Name, err)
		}
		if seen[moon.Name] {
			return Body{}, fmt.Errorf("%w: %s: duplicate moon %q", ErrInvalidBody, b.Name, moon.Name)
		}
		seen[moon.Name] = true
		b.Moons = append(b.Moons, moon)
	}
	return b, nil
}
