// Package renderer draws scene frames with OpenGL.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitshade/internal/engine/model"
	"github.com/Faultbox/orbitshade/internal/engine/shader"
	"github.com/Faultbox/orbitshade/internal/engine/texture"
	"github.com/Faultbox/orbitshade/internal/lighting"
	"github.com/Faultbox/orbitshade/internal/logger"
	"github.com/Faultbox/orbitshade/internal/scene"
	"github.com/Faultbox/orbitshade/internal/shading"
	m "github.com/Faultbox/orbitshade/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width          int
	Height         int
	SphereSegments int
}

// ImageSource supplies decoded images for texture references.
type ImageSource interface {
	Image(ref scene.TextureRef) (image.Image, bool)
}

// View is the camera state for one frame.
type View struct {
	View       m.Mat4
	Projection m.Mat4
	Camera     m.Vec3
}

// Texture units of the surface program.
const (
	unitDay = iota
	unitNight
	unitSpecularClouds
)

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	surface    *shader.Program
	atmosphere *shader.Program
	basic      *shader.Program

	sphere *model.GPUMesh
	// Keyed by the whole reference: a shared file with two fallback colors
	// is two textures when the file is missing.
	textures map[scene.TextureRef]*texture.Texture

	log *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		textures: make(map[scene.TextureRef]*texture.Texture),
		log:      logger.Named("renderer"),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.MULTISAMPLE)

	var err error
	for _, p := range []struct {
		dst  **shader.Program
		name string
	}{
		{&r.surface, shader.Surface},
		{&r.atmosphere, shader.Atmosphere},
		{&r.basic, shader.Basic},
	} {
		if *p.dst, err = shader.Load(p.name); err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to create shader program: %w", err)
		}
	}

	segments := cfg.SphereSegments
	mesh := model.NewSphere(segments, segments)
	if r.sphere, err = model.Upload(mesh); err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to upload sphere: %w", err)
	}
	r.log.Debug("sphere uploaded",
		zap.Int("segments", segments),
		zap.Int("triangles", mesh.TriangleCount()))

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// LoadTextures uploads every referenced texture. References without an
// image get a 1x1 texture of their fallback color.
func (r *Renderer) LoadTextures(src ImageSource, refs []scene.TextureRef) {
	for _, ref := range refs {
		if _, ok := r.textures[ref]; ok {
			continue
		}
		r.textures[ref] = r.loadTexture(src, ref)
	}
	r.log.Info("textures ready", zap.Int("count", len(r.textures)))
}

func (r *Renderer) loadTexture(src ImageSource, ref scene.TextureRef) *texture.Texture {
	srgb := ref.Slot.SRGB()
	if img, ok := src.Image(ref); ok {
		tex, err := texture.Upload(img, texture.Options{SRGB: srgb, Mipmaps: true})
		if err == nil {
			return tex
		}
		r.log.Warn("texture upload failed", zap.String("name", ref.Name), zap.Error(err))
	}
	r.log.Debug("using fallback color",
		zap.String("name", ref.Name),
		zap.Stringer("slot", ref.Slot),
		zap.String("color", ref.Fallback.SRGB().Hex()))
	return texture.Solid(fallbackTexel(ref).NRGBA(), srgb)
}

// fallbackTexel is the stored value of a fallback texture: display encoded
// for color slots, raw for data slots.
func fallbackTexel(ref scene.TextureRef) shading.Color {
	if ref.Slot.SRGB() {
		return ref.Fallback.SRGB()
	}
	return ref.Fallback
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for key, tex := range r.textures {
		tex.Destroy()
		delete(r.textures, key)
	}
	if r.sphere != nil {
		r.sphere.Destroy()
	}
	for _, p := range []*shader.Program{r.surface, r.atmosphere, r.basic} {
		if p != nil {
			p.Delete()
		}
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (width, height int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame by clearing to the background color.
func (r *Renderer) Begin(background shading.Color) {
	c := background.SRGB()
	gl.ClearColor(c.R, c.G, c.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders every draw of the frame in order.
func (r *Renderer) Draw(f *scene.Frame, v View) {
	for _, p := range []*shader.Program{r.surface, r.atmosphere, r.basic} {
		p.Use()
		p.SetMat4(shader.UniformView, v.View)
		p.SetMat4(shader.UniformProjection, v.Projection)
		p.SetFloat(shader.UniformExposure, f.Exposure)
		p.SetVec3(shader.UniformCamera, v.Camera.Array())
	}

	for i := range f.Draws {
		d := &f.Draws[i]
		switch d.Kind {
		case scene.DrawStar, scene.DrawBasic:
			r.drawBasic(d, f.Light)
		case scene.DrawSurface:
			r.drawSurface(d, f.Params)
		case scene.DrawAtmosphere:
			r.drawAtmosphere(d, f.Params)
		}
	}
}

func (r *Renderer) drawBasic(d *scene.Draw, light lighting.PointLight) {
	p := r.basic
	p.Use()
	p.SetMat4(shader.UniformModel, d.Model)
	p.SetVec3(shader.UniformLightPosition, light.Position.Array())
	p.SetVec3(shader.UniformLightColor, light.Color)
	p.SetFloat(shader.UniformLightIntensity, light.Intensity)
	p.SetFloat(shader.UniformLightDecay, light.Decay)
	p.SetFloat(shader.UniformAmbient, light.Ambient)
	unlit := int32(0)
	if d.Basic.Unlit {
		unlit = 1
	}
	p.SetInt(shader.UniformUnlit, unlit)

	r.bind(d.Basic.Albedo, 0)
	p.SetInt(shader.UniformAlbedoTexture, 0)
	r.sphere.Draw()
}

func (r *Renderer) drawSurface(d *scene.Draw, params shading.Params) {
	p := r.surface
	p.Use()
	p.SetMat4(shader.UniformModel, d.Model)
	setShared(p, d.Uniforms, params)
	p.SetFloat(shader.UniformTerminatorTint, params.TerminatorTint)
	p.SetFloat(shader.UniformCloudLow, params.CloudLow)
	p.SetFloat(shader.UniformCloudHigh, params.CloudHigh)
	p.SetFloat(shader.UniformCloudStrength, params.CloudStrength)
	p.SetFloat(shader.UniformSpecularExp, params.SpecularExponent)
	p.SetFloat(shader.UniformSpecularStrength, params.SpecularStrength)

	r.bind(d.Surface.Day, unitDay)
	r.bind(d.Surface.Night, unitNight)
	r.bind(d.Surface.SpecularClouds, unitSpecularClouds)
	p.SetInt(shader.UniformDayTexture, unitDay)
	p.SetInt(shader.UniformNightTexture, unitNight)
	p.SetInt(shader.UniformSpecularClouds, unitSpecularClouds)
	r.sphere.Draw()
}

// drawAtmosphere draws the shell's inside faces blended over the scene,
// without writing depth so later shells do not clip each other.
func (r *Renderer) drawAtmosphere(d *scene.Draw, params shading.Params) {
	p := r.atmosphere
	p.Use()
	p.SetMat4(shader.UniformModel, d.Model)
	setShared(p, d.Uniforms, params)
	p.SetFloat(shader.UniformFresnelExponent, params.FresnelExponent)
	p.SetFloat(shader.UniformGlowLow, params.GlowLow)
	p.SetFloat(shader.UniformGlowHigh, params.GlowHigh)

	gl.CullFace(gl.FRONT)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)

	r.sphere.Draw()

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.CullFace(gl.BACK)
}

// setShared uploads the uniforms both shaded programs read, so the two
// draws of a body see identical light and tint values.
func setShared(p *shader.Program, u shading.Uniforms, params shading.Params) {
	p.SetVec3(shader.UniformSunDirection, u.LightDir.Array())
	p.SetVec3(shader.UniformDayTint, u.DayTint.Vec3())
	p.SetVec3(shader.UniformTwilightTint, u.TwilightTint.Vec3())
	p.SetFloat(shader.UniformTerminatorLow, params.TerminatorLow)
	p.SetFloat(shader.UniformTerminatorHigh, params.TerminatorHigh)
}

func (r *Renderer) bind(ref scene.TextureRef, unit uint32) {
	tex, ok := r.textures[ref]
	if !ok {
		// Not preloaded; upload the fallback once and keep it.
		tex = texture.Solid(fallbackTexel(ref).NRGBA(), ref.Slot.SRGB())
		r.textures[ref] = tex
	}
	tex.Bind(unit)
}
