// Package scene turns a configuration into a running solar scene: the
// orbit system, one light tracker and tint record per shaded body, and the
// materials that read them. Each tick it produces a Frame for a renderer.
package scene

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitshade/internal/config"
	"github.com/Faultbox/orbitshade/internal/engine/picking"
	"github.com/Faultbox/orbitshade/internal/lighting"
	"github.com/Faultbox/orbitshade/internal/logger"
	"github.com/Faultbox/orbitshade/internal/orbit"
	"github.com/Faultbox/orbitshade/internal/shading"
	m "github.com/Faultbox/orbitshade/pkg/math"
)

// ErrUnknownBody is returned when a name does not match a shaded body.
var ErrUnknownBody = errors.New("unknown body")

// body is the per-body state the scene keeps next to the orbit system.
type body struct {
	handle orbit.BodyHandle
	name   string
	basic  BasicMaterial

	// Set for shaded bodies only.
	tints      *shading.Tints
	surface    *SurfaceMaterial
	atmosphere *AtmosphereMaterial
	tracker    *lighting.Tracker

	moons []moon
}

type moon struct {
	handle orbit.MoonHandle
	name   string
	basic  BasicMaterial
}

// Scene is the live scene. It is not safe for concurrent use; the frame
// loop owns it.
type Scene struct {
	system *orbit.System
	bodies []*body
	star   BasicMaterial

	light      lighting.PointLight
	params     shading.Params
	exposure   float32
	background shading.Color
	paused     bool

	log *zap.Logger
}

// Build validates cfg and constructs the scene at tick zero.
func Build(cfg *config.Config) (*Scene, error) {
	s := &Scene{
		exposure: cfg.Graphics.Exposure,
		paused:   cfg.Simulation.Paused,
		log:      logger.Named("scene"),
	}

	params := cfg.Shading.Params()
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	s.params = params

	bg, err := shading.ParseHex(cfg.Graphics.Background)
	if err != nil {
		return nil, fmt.Errorf("building scene: background: %w", err)
	}
	s.background = bg.Linear()

	light, err := pointLight(cfg.Sun)
	if err != nil {
		return nil, fmt.Errorf("building scene: sun: %w", err)
	}
	s.light = light

	starColor, err := parseColor(cfg.Sun.Color, shading.White)
	if err != nil {
		return nil, fmt.Errorf("building scene: sun: %w", err)
	}
	s.star = BasicMaterial{
		Albedo: TextureRef{Name: cfg.Sun.Texture, Slot: SlotAlbedo, Fallback: starColor},
		Unlit:  true,
	}

	defs := make([]orbit.BodyConfig, 0, len(cfg.Bodies))
	for _, b := range cfg.Bodies {
		defs = append(defs, orbitBody(b))
	}
	system, err := orbit.New(orbit.Star{Radius: cfg.Sun.Radius, Spin: cfg.Sun.Spin}, light.Position, defs)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	s.system = system

	for i, h := range system.Bodies() {
		b, err := s.newBody(h, cfg.Bodies[i])
		if err != nil {
			return nil, fmt.Errorf("building scene: %s: %w", cfg.Bodies[i].Name, err)
		}
		s.bodies = append(s.bodies, b)
	}

	// Trackers start from the construction-time geometry.
	s.updateTrackers()

	s.log.Info("scene built",
		zap.Int("bodies", len(s.bodies)),
		zap.Int("shaded", len(s.Shaded())),
		zap.Bool("paused", s.paused))
	return s, nil
}

func (s *Scene) newBody(h orbit.BodyHandle, cfg config.BodyConfig) (*body, error) {
	b := &body{handle: h, name: cfg.Name}

	fallback, err := parseColor(cfg.Color, shading.Gray(0.5))
	if err != nil {
		return nil, err
	}
	b.basic = BasicMaterial{Albedo: TextureRef{Name: cfg.Texture, Slot: SlotAlbedo, Fallback: fallback}}

	if cfg.Surface != nil {
		day, err := shading.ParseHex(cfg.Surface.Atmosphere.DayColor)
		if err != nil {
			return nil, fmt.Errorf("atmosphere day color: %w", err)
		}
		twilight, err := shading.ParseHex(cfg.Surface.Atmosphere.TwilightColor)
		if err != nil {
			return nil, fmt.Errorf("atmosphere twilight color: %w", err)
		}

		b.tints = shading.NewTints(day.Linear(), twilight.Linear())
		d, n, sc := surfaceRefs(cfg.Surface.DayTexture, cfg.Surface.NightTexture, cfg.Surface.SpecularCloudsTexture)
		b.surface = &SurfaceMaterial{Day: d, Night: n, SpecularClouds: sc, Tints: b.tints.View()}
		b.atmosphere = &AtmosphereMaterial{Tints: b.tints.View()}
		b.tracker = lighting.NewTracker(cfg.Name, lighting.DefaultFallback)
	}

	for i, mh := range s.system.Moons(h) {
		mc := cfg.Moons[i]
		c, err := parseColor(mc.Color, shading.Gray(0.6))
		if err != nil {
			return nil, fmt.Errorf("moon %s: %w", mc.Name, err)
		}
		b.moons = append(b.moons, moon{
			handle: mh,
			name:   mc.Name,
			basic:  BasicMaterial{Albedo: TextureRef{Name: mc.Texture, Slot: SlotAlbedo, Fallback: c}},
		})
	}
	return b, nil
}

// Tick advances the orbits by one step, unless paused, and re-aims every
// light tracker at the star.
func (s *Scene) Tick() {
	if !s.paused {
		s.system.Tick()
	}
	s.updateTrackers()
}

func (s *Scene) updateTrackers() {
	light := s.system.Light()
	for _, b := range s.bodies {
		if b.tracker != nil {
			b.tracker.Update(light, s.system.WorldPosition(b.handle))
		}
	}
}

// Advance runs n ticks.
func (s *Scene) Advance(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// Ticks returns how many times the orbits have advanced.
func (s *Scene) Ticks() uint64 {
	return s.system.Ticks()
}

// Paused reports whether orbital motion is frozen.
func (s *Scene) Paused() bool {
	return s.paused
}

// SetPaused freezes or resumes orbital motion.
func (s *Scene) SetPaused(p bool) {
	if p != s.paused {
		s.log.Info("simulation paused", zap.Bool("paused", p), zap.Uint64("tick", s.system.Ticks()))
	}
	s.paused = p
}

// TogglePause flips the paused state and returns the new value.
func (s *Scene) TogglePause() bool {
	s.SetPaused(!s.paused)
	return s.paused
}

// System exposes the orbit system.
func (s *Scene) System() *orbit.System {
	return s.system
}

// Params returns the current shading parameters.
func (s *Scene) Params() shading.Params {
	return s.params
}

// Exposure returns the tone-mapping exposure.
func (s *Scene) Exposure() float32 {
	return s.exposure
}

// Light returns the point light used for plain bodies, at the star's
// current position.
func (s *Scene) Light() lighting.PointLight {
	l := s.light
	l.Position = s.system.Light()
	return l
}

// SetLightPosition moves the star and its light, and re-aims the trackers
// so shaded and plain bodies are lit from the same place in the next frame.
func (s *Scene) SetLightPosition(p m.Vec3) {
	s.system.SetLightPosition(p)
	s.light.Position = p
	s.updateTrackers()
	s.log.Debug("light moved",
		zap.Float32("x", p.X),
		zap.Float32("y", p.Y),
		zap.Float32("z", p.Z))
}

// Background returns the linear clear color.
func (s *Scene) Background() shading.Color {
	return s.background
}

// Shaded lists the names of the bodies drawn with the day/night model.
func (s *Scene) Shaded() []string {
	var names []string
	for _, b := range s.bodies {
		if b.tints != nil {
			names = append(names, b.name)
		}
	}
	return names
}

// SetTints writes both atmosphere colors of a shaded body. The surface and
// atmosphere materials read the same record, so the next frame shows the
// change on both.
func (s *Scene) SetTints(name, dayHex, twilightHex string) error {
	b, err := s.shaded(name)
	if err != nil {
		return err
	}
	day, err := shading.ParseHex(dayHex)
	if err != nil {
		return fmt.Errorf("%s day tint: %w", name, err)
	}
	twilight, err := shading.ParseHex(twilightHex)
	if err != nil {
		return fmt.Errorf("%s twilight tint: %w", name, err)
	}
	b.tints.Set(day.Linear(), twilight.Linear())
	return nil
}

// Tints returns the current colors of a shaded body in sRGB.
func (s *Scene) Tints(name string) (day, twilight shading.Color, err error) {
	b, err := s.shaded(name)
	if err != nil {
		return shading.Color{}, shading.Color{}, err
	}
	v := b.tints.View()
	return v.Day().SRGB(), v.Twilight().SRGB(), nil
}

// SurfaceMaterial returns the surface material of a shaded body.
func (s *Scene) SurfaceMaterial(name string) (SurfaceMaterial, error) {
	b, err := s.shaded(name)
	if err != nil {
		return SurfaceMaterial{}, err
	}
	return *b.surface, nil
}

// AtmosphereMaterial returns the atmosphere material of a shaded body.
func (s *Scene) AtmosphereMaterial(name string) (AtmosphereMaterial, error) {
	b, err := s.shaded(name)
	if err != nil {
		return AtmosphereMaterial{}, err
	}
	return *b.atmosphere, nil
}

// LightDirection returns the tracked unit direction from a shaded body to the star.
func (s *Scene) LightDirection(name string) (m.Vec3, error) {
	b, err := s.shaded(name)
	if err != nil {
		return m.Vec3{}, err
	}
	return b.tracker.Direction(), nil
}

// BasicMaterial returns the plainly lit material of a body. Shaded bodies
// have one too; it is what they would look like without the day/night model.
func (s *Scene) BasicMaterial(name string) (BasicMaterial, error) {
	for _, b := range s.bodies {
		if b.name == name {
			return b.basic, nil
		}
	}
	return BasicMaterial{}, fmt.Errorf("%w: %q", ErrUnknownBody, name)
}

// IsShaded reports whether name is a body drawn with the day/night model.
func (s *Scene) IsShaded(name string) bool {
	_, err := s.shaded(name)
	return err == nil
}

// Handle returns the orbit handle of a body.
func (s *Scene) Handle(name string) (orbit.BodyHandle, bool) {
	return s.system.Lookup(name)
}

// Spheres lists the star, every body and every moon at their current
// positions for picking.
func (s *Scene) Spheres() []picking.Sphere {
	spheres := []picking.Sphere{{
		Name:   "Sun",
		Center: s.system.Light(),
		Radius: float32(s.system.Star().Radius),
	}}
	for _, b := range s.bodies {
		spheres = append(spheres, picking.Sphere{
			Name:   b.name,
			Center: s.system.WorldPosition(b.handle),
			Radius: float32(s.system.Body(b.handle).Radius),
		})
		for _, mo := range b.moons {
			spheres = append(spheres, picking.Sphere{
				Name:   mo.name,
				Center: s.system.MoonWorldPosition(mo.handle),
				Radius: float32(s.system.Moon(mo.handle).Radius),
			})
		}
	}
	return spheres
}

// Position returns the current center of the star, a body or a moon.
func (s *Scene) Position(name string) (m.Vec3, bool) {
	for _, sp := range s.Spheres() {
		if sp.Name == name {
			return sp.Center, true
		}
	}
	return m.Vec3{}, false
}

func (s *Scene) shaded(name string) (*body, error) {
	for _, b := range s.bodies {
		if b.name == name && b.tints != nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not a shaded body", ErrUnknownBody, name)
}

// ApplyTuning takes the live-tunable parts of a reloaded config: shading
// params, exposure, and the tints of bodies that exist in both. Orbits and
// textures are fixed at build time and are ignored. Nothing changes when
// any tunable value is invalid.
func (s *Scene) ApplyTuning(cfg *config.Config) error {
	params := cfg.Shading.Params()
	if err := params.Validate(); err != nil {
		return err
	}
	if !(cfg.Graphics.Exposure > 0) {
		return fmt.Errorf("exposure %g must be positive", cfg.Graphics.Exposure)
	}

	type update struct {
		b             *body
		day, twilight shading.Color
	}
	var updates []update
	for _, bc := range cfg.Bodies {
		if bc.Surface == nil {
			continue
		}
		b, err := s.shaded(bc.Name)
		if err != nil {
			continue
		}
		day, err := shading.ParseHex(bc.Surface.Atmosphere.DayColor)
		if err != nil {
			return fmt.Errorf("%s day tint: %w", bc.Name, err)
		}
		twilight, err := shading.ParseHex(bc.Surface.Atmosphere.TwilightColor)
		if err != nil {
			return fmt.Errorf("%s twilight tint: %w", bc.Name, err)
		}
		updates = append(updates, update{b, day.Linear(), twilight.Linear()})
	}

	s.params = params
	s.exposure = cfg.Graphics.Exposure
	for _, u := range updates {
		u.b.tints.Set(u.day, u.twilight)
	}
	s.log.Info("tuning applied", zap.Int("tints", len(updates)), zap.Float32("exposure", s.exposure))
	return nil
}

// Frame snapshots the current tick as a draw list.
func (s *Scene) Frame() Frame {
	f := Frame{
		Tick:       s.system.Ticks(),
		Light:      s.Light(),
		Params:     s.params,
		Exposure:   s.exposure,
		Background: s.background,
	}

	f.Draws = append(f.Draws, Draw{
		Kind:  DrawStar,
		Name:  "Sun",
		Model: s.system.StarTransform(),
		Basic: s.star,
	})

	var surfaces, shells []Draw
	for _, b := range s.bodies {
		if b.tints == nil {
			f.Draws = append(f.Draws, Draw{
				Kind:  DrawBasic,
				Name:  b.name,
				Model: s.system.BodyTransform(b.handle),
				Basic: b.basic,
			})
		} else {
			// One Uniforms value per body, shared by both of its draws.
			u := b.tints.View().Uniforms(b.tracker.Direction())
			surfaces = append(surfaces, Draw{
				Kind:     DrawSurface,
				Name:     b.name,
				Model:    s.system.BodyTransform(b.handle),
				Surface:  *b.surface,
				Uniforms: u,
			})
			shells = append(shells, Draw{
				Kind:       DrawAtmosphere,
				Name:       b.name,
				Model:      s.system.AtmosphereTransform(b.handle),
				Atmosphere: *b.atmosphere,
				Uniforms:   u,
			})
		}
		for _, mo := range b.moons {
			f.Draws = append(f.Draws, Draw{
				Kind:  DrawBasic,
				Name:  mo.name,
				Model: s.system.MoonTransform(mo.handle),
				Basic: mo.basic,
			})
		}
	}
	f.Draws = append(f.Draws, surfaces...)
	f.Draws = append(f.Draws, shells...)
	return f
}

// Textures lists every texture the scene can draw with, so a renderer can
// load them up front. References are deduplicated as whole values: bodies
// sharing a file but not a fallback color keep separate entries.
func (s *Scene) Textures() []TextureRef {
	seen := make(map[TextureRef]bool)
	var refs []TextureRef
	add := func(r TextureRef) {
		if seen[r] {
			return
		}
		seen[r] = true
		refs = append(refs, r)
	}

	add(s.star.Albedo)
	for _, b := range s.bodies {
		if b.surface != nil {
			for _, r := range b.surface.Textures() {
				add(r)
			}
		} else {
			add(b.basic.Albedo)
		}
		for _, mo := range b.moons {
			add(mo.basic.Albedo)
		}
	}
	return refs
}

func pointLight(sun config.SunConfig) (lighting.PointLight, error) {
	c, err := parseColor(sun.Light, shading.White)
	if err != nil {
		return lighting.PointLight{}, err
	}
	return lighting.PointLight{
		Position:  lighting.SunPosition(sun.Distance, radians(sun.Polar), radians(sun.Azimuth)),
		Color:     c.Vec3(),
		Intensity: sun.Intensity,
		Decay:     sun.Decay,
		Ambient:   sun.Ambient,
	}.Sanitized(), nil
}

func orbitBody(b config.BodyConfig) orbit.BodyConfig {
	ob := orbit.BodyConfig{
		Name:     b.Name,
		Radius:   b.Radius,
		Distance: b.Distance,
		Speed:    b.Speed,
		Spin:     b.Spin,
		Phase:    b.Phase,
	}
	if b.Surface != nil {
		ob.AtmosphereScale = b.Surface.Atmosphere.Scale
	}
	for _, mc := range b.Moons {
		ob.Moons = append(ob.Moons, orbit.MoonConfig{
			Name:     mc.Name,
			Radius:   mc.Radius,
			Distance: mc.Distance,
			Speed:    mc.Speed,
			Spin:     mc.Spin,
			Phase:    mc.Phase,
		})
	}
	return ob
}

// parseColor parses an optional sRGB hex color into linear space.
func parseColor(hex string, fallback shading.Color) (shading.Color, error) {
	if hex == "" {
		return fallback, nil
	}
	c, err := shading.ParseHex(hex)
	if err != nil {
		return shading.Color{}, err
	}
	return c.Linear(), nil
}

func radians(deg float64) float64 {
	return deg * gomath.Pi / 180
}
