package orbit

import (
	"fmt"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

// BodyHandle identifies a body for the lifetime of its System.
type BodyHandle int

// MoonHandle identifies a moon for the lifetime of its System.
type MoonHandle struct {
	Body  BodyHandle
	Index int
}

// Star is the light-emitting body. It sits at the light position and only spins.
type Star struct {
	Radius    float64
	Spin      float64
	SpinAngle float64
}

// System owns every body and moon plus the single point light. Handles are
// assigned once in New and stay valid; bodies are never added or removed.
type System struct {
	bodies []Body
	star   Star
	light  m.Vec3
	ticks  uint64
}

// New validates the definitions and builds a system. light is the world
// position of the point light (and of the star mesh).
func New(star Star, light m.Vec3, bodies []BodyConfig) (*System, error) {
	if !(star.Radius > 0) {
		return nil, fmt.Errorf("%w: star radius %g must be positive", ErrInvalidBody, star.Radius)
	}
	if !light.IsFinite() {
		return nil, fmt.Errorf("%w: light position %v is not finite", ErrInvalidBody, light)
	}

	s := &System{star: star, light: light}
	seen := make(map[string]bool, len(bodies))
	for _, cfg := range bodies {
		if seen[cfg.Name] {
			return nil, fmt.Errorf("%w: duplicate body %q", ErrInvalidBody, cfg.Name)
		}
		seen[cfg.Name] = true

		b, err := newBody(cfg)
		if err != nil {
			return nil, err
		}
		s.bodies = append(s.bodies, b)
	}
	return s, nil
}

// Tick advances every orbit and spin by one step.
func (s *System) Tick() {
	s.star.SpinAngle = m.WrapAngle(s.star.SpinAngle + s.star.Spin)
	for i := range s.bodies {
		b := &s.bodies[i]
		b.tick()
		for j := range b.Moons {
			b.Moons[j].tick()
		}
	}
	s.ticks++
}

// Advance runs n ticks.
func (s *System) Advance(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// Ticks returns how many ticks have run.
func (s *System) Ticks() uint64 {
	return s.ticks
}

// Lookup resolves a body name to its handle. Use it while wiring the scene,
// not per frame.
func (s *System) Lookup(name string) (BodyHandle, bool) {
	for i := range s.bodies {
		if s.bodies[i].Name == name {
			return BodyHandle(i), true
		}
	}
	return -1, false
}

// LookupMoon resolves a moon by its parent and name.
func (s *System) LookupMoon(body BodyHandle, name string) (MoonHandle, bool) {
	b := s.body(body)
	for i := range b.Moons {
		if b.Moons[i].Name == name {
			return MoonHandle{Body: body, Index: i}, true
		}
	}
	return MoonHandle{}, false
}

// Bodies returns a handle for every body in definition order.
func (s *System) Bodies() []BodyHandle {
	handles := make([]BodyHandle, len(s.bodies))
	for i := range handles {
		handles[i] = BodyHandle(i)
	}
	return handles
}

// Moons returns a handle for every moon of body.
func (s *System) Moons(body BodyHandle) []MoonHandle {
	b := s.body(body)
	handles := make([]MoonHandle, len(b.Moons))
	for i := range handles {
		handles[i] = MoonHandle{Body: body, Index: i}
	}
	return handles
}

// Body returns a copy of the body's current state.
func (s *System) Body(h BodyHandle) Body {
	return *s.body(h)
}

// Moon returns a copy of the moon's current state.
func (s *System) Moon(h MoonHandle) Moon {
	return s.body(h.Body).Moons[h.Index]
}

func (s *System) body(h BodyHandle) *Body {
	if h < 0 || int(h) >= len(s.bodies) {
		panic(fmt.Sprintf("orbit: body handle %d out of range", h))
	}
	return &s.bodies[h]
}

// Light returns the point light's world position.
func (s *System) Light() m.Vec3 {
	return s.light
}

// SetLightPosition moves the point light and the star with it.
func (s *System) SetLightPosition(p m.Vec3) {
	s.light = p
}

// Star returns the star's current state.
func (s *System) Star() Star {
	return s.star
}

// StarTransform places the star mesh at the light.
func (s *System) StarTransform() m.Mat4 {
	return m.Translate(s.light.X, s.light.Y, s.light.Z).
		Mul(m.RotateY(float32(s.star.SpinAngle))).
		Mul(m.UniformScale(float32(s.star.Radius)))
}

// NodeTransform is the body's orbit node: pivot rotation and orbital offset,
// without spin or scale. Moons hang off this node.
func (s *System) NodeTransform(h BodyHandle) m.Mat4 {
	return s.body(h).pivot()
}

// BodyTransform is the world transform of the body mesh.
func (s *System) BodyTransform(h BodyHandle) m.Mat4 {
	b := s.body(h)
	return b.mesh(b.pivot())
}

// AtmosphereTransform is the body mesh transform composed with the shell
// scale, so the shell shares the body's origin and rotation. Bodies without
// an atmosphere get DefaultAtmosphereScale.
func (s *System) AtmosphereTransform(h BodyHandle) m.Mat4 {
	b := s.body(h)
	k := b.AtmosphereScale
	if k == 0 {
		k = DefaultAtmosphereScale
	}
	return b.mesh(b.pivot()).Mul(m.UniformScale(float32(k)))
}

// MoonTransform is the world transform of a moon mesh.
func (s *System) MoonTransform(h MoonHandle) m.Mat4 {
	b := s.body(h.Body)
	moon := &b.Moons[h.Index]
	return moon.mesh(b.pivot().Mul(moon.pivot()))
}

// WorldPosition is the body's center in world space.
func (s *System) WorldPosition(h BodyHandle) m.Vec3 {
	return s.NodeTransform(h).Position()
}

// MoonWorldPosition is the moon's center in world space.
func (s *System) MoonWorldPosition(h MoonHandle) m.Vec3 {
	b := s.body(h.Body)
	return b.pivot().Mul(b.Moons[h.Index].pivot()).Position()
}
