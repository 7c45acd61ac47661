// Package preview renders a body on the CPU with the same shading models the
// GL programs use: the day/night surface and atmosphere for shaded bodies,
// the point light for the rest. It needs no display, which
// makes it suitable for headless snapshots and for checking the models
// against real textures.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	gomath "math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/orbitshade/internal/engine/picking"
	"github.com/Faultbox/orbitshade/internal/lighting"
	"github.com/Faultbox/orbitshade/internal/logger"
	"github.com/Faultbox/orbitshade/internal/orbit"
	"github.com/Faultbox/orbitshade/internal/scene"
	"github.com/Faultbox/orbitshade/internal/shading"
	m "github.com/Faultbox/orbitshade/pkg/math"
)

// ErrInvalidOptions is returned for unusable image or camera settings.
var ErrInvalidOptions = errors.New("invalid preview options")

// Options describe the snapshot.
type Options struct {
	Width  int
	Height int
	// Body is the body to frame.
	Body string
	// Phase is the camera's angle around the body in degrees, measured from
	// the direction of the star: 0 looks at the full day side, 90 at the
	// terminator, 180 at the night side.
	Phase float64
	// Elevation lifts the camera above the orbital plane, in degrees.
	Elevation float64
	// Distance is the camera distance in body radii.
	Distance float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Workers bounds the number of rows shaded in parallel; 0 means GOMAXPROCS.
	Workers int
}

// DefaultOptions frames Earth half lit, filling most of the image.
func DefaultOptions() Options {
	return Options{
		Width:     512,
		Height:    512,
		Body:      "Earth",
		Phase:     70,
		Elevation: 15,
		Distance:  4.5,
		FOV:       35,
	}
}

func (o Options) validate() error {
	var errs []error
	if o.Width <= 0 || o.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", o.Width, o.Height))
	}
	if !(o.FOV > 0 && o.FOV < 180) {
		errs = append(errs, fmt.Errorf("fov %g outside (0, 180)", o.FOV))
	}
	if !(o.Distance > 1) {
		errs = append(errs, fmt.Errorf("distance %g radii puts the camera inside the body", o.Distance))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
}

// TextureSource builds CPU samplers for materials. Sampler returns nil when
// the reference has no image.
type TextureSource interface {
	TextureSet(mat scene.SurfaceMaterial) shading.TextureSet
	Sampler(ref scene.TextureRef) shading.Sampler
}

// target is the body being drawn, in world space.
type target struct {
	center  m.Vec3
	radius  float32
	toLocal m.Mat4 // world direction to texture-space direction

	// Shaded bodies.
	shell    float32
	textures shading.TextureSet
	uniforms shading.Uniforms

	// Plain bodies.
	plain  bool
	albedo shading.Sampler
	light  lighting.PointLight
}

// Render draws the named body of s as it stands at its current tick.
func Render(ctx context.Context, s *scene.Scene, src TextureSource, opts Options) (*image.NRGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := logger.Named("preview")

	h, ok := s.Handle(opts.Body)
	if !ok {
		return nil, fmt.Errorf("%w: %q", scene.ErrUnknownBody, opts.Body)
	}

	sys := s.System()
	body := sys.Body(h)
	tgt := target{
		center:  sys.WorldPosition(h),
		radius:  float32(body.Radius),
		toLocal: sys.BodyTransform(h).Transpose(),
	}

	var lightDir m.Vec3
	if s.IsShaded(opts.Body) {
		surface, err := s.SurfaceMaterial(opts.Body)
		if err != nil {
			return nil, err
		}
		if lightDir, err = s.LightDirection(opts.Body); err != nil {
			return nil, err
		}
		tgt.textures = src.TextureSet(surface)
		tgt.uniforms = surface.Tints.Uniforms(lightDir)
		scale := body.AtmosphereScale
		if scale == 0 {
			scale = orbit.DefaultAtmosphereScale
		}
		tgt.shell = float32(body.Radius * scale)
	} else {
		mat, err := s.BasicMaterial(opts.Body)
		if err != nil {
			return nil, err
		}
		tgt.plain = true
		tgt.light = s.Light()
		if tgt.albedo = src.Sampler(mat.Albedo); tgt.albedo == nil {
			tgt.albedo = shading.Solid(mat.Albedo.Fallback)
		}
		if lightDir, err = lighting.Direction(tgt.light.Position, tgt.center); err != nil {
			lightDir = lighting.DefaultFallback
		}
	}

	cam := newCamera(tgt.center, lightDir, opts, float32(body.Radius))
	params := s.Params()
	exposure := s.Exposure()
	// The GL path clears to the encoded background without tone mapping.
	bg := s.Background().SRGB().WithAlpha(1)

	img := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := 0; y < opts.Height; y++ {
		y := y // per-iteration copy (go directive is 1.21)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := img.Pix[y*img.Stride : y*img.Stride+opts.Width*4]
			for x := 0; x < opts.Width; x++ {
				c := shadePixel(params, exposure, tgt, cam.PixelRay(x, y, opts.Width, opts.Height), bg)
				n := c.NRGBA()
				row[x*4+0], row[x*4+1], row[x*4+2], row[x*4+3] = n.R, n.G, n.B, 255
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rendering preview: %w", err)
	}

	log.Info("preview rendered",
		zap.String("body", opts.Body),
		zap.Bool("plain", tgt.plain),
		zap.Uint64("tick", s.Ticks()),
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Int("workers", workers))
	return img, nil
}

// newCamera places the eye around the body relative to the light direction.
func newCamera(center, lightDir m.Vec3, opts Options, radius float32) picking.Camera {
	phase := opts.Phase * gomath.Pi / 180
	elev := opts.Elevation * gomath.Pi / 180

	// Orbit-plane basis with the light along +A.
	a := m.Vec3{X: lightDir.X, Z: lightDir.Z}
	if a.Length() < 1e-6 {
		a = m.Vec3{Z: 1}
	}
	a = a.Normalize()
	b := m.Vec3{Y: 1}.Cross(a).Normalize()

	horizontal := a.Scale(float32(gomath.Cos(phase))).Add(b.Scale(float32(gomath.Sin(phase))))
	offset := horizontal.Scale(float32(gomath.Cos(elev))).Add(m.Vec3{Y: float32(gomath.Sin(elev))})
	eye := center.Add(offset.Normalize().Scale(radius * float32(opts.Distance)))

	fov := float32(opts.FOV * gomath.Pi / 180)
	return picking.NewCamera(eye, center, fov, float32(opts.Width)/float32(opts.Height))
}

// shadePixel returns the display-encoded color seen along one ray. The
// surface is tone mapped and encoded; the shell, like the GL blend, is
// composited in encoded space over whatever lies behind it. Plain bodies
// have no shell.
func shadePixel(p shading.Params, exposure float32, t target, ray picking.Ray, bg shading.Color) shading.Color {
	dir := ray.Direction
	if near, _, ok := ray.IntersectSphere(t.center, t.radius); ok {
		hit := ray.At(near)
		normal := hit.Sub(t.center).Normalize()
		uv := m.SphereUV(t.toLocal.TransformDirection(normal).Normalize())
		if t.plain {
			return shading.FromNRGBA(shading.Encode(t.lit(hit, normal, uv), exposure))
		}
		c := p.SurfaceAt(shading.Fragment{Normal: normal, View: dir}, uv, t.textures, t.uniforms)
		return shading.FromNRGBA(shading.Encode(c, exposure))
	}

	if t.plain {
		return bg
	}

	// Only the shell's far side is drawn; its outward normal faces away from the eye.
	_, far, ok := ray.IntersectSphere(t.center, t.shell)
	if !ok || far <= 0 {
		return bg
	}
	exit := ray.At(far)
	normal := exit.Sub(t.center).Normalize()
	atmo := p.Atmosphere(shading.Fragment{Normal: normal, View: dir}, t.uniforms)
	tint := shading.ToneMap(atmo, exposure).SRGB().WithAlpha(atmo.A)
	return tint.Over(bg)
}

// lit is the point-lit albedo of a plain body, as basic.frag computes it.
func (t target) lit(position, normal m.Vec3, uv m.Vec2) shading.Color {
	a := t.albedo.Sample(uv)
	e := t.light.Irradiance(position, normal)
	return shading.RGB(a.R*e[0], a.G*e[1], a.B*e[2])
}
