package assets

import (
	"image"
	"image/color"
	"math"
	"runtime"

	"github.com/aquilax/go-perlin"
	"golang.org/x/sync/errgroup"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

// Noise parameters for every procedural field.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 6
	seaLevel     = 0.0
)

// Terrain is a procedurally generated planet: a height field, a cloud
// field and a city-light field sampled on an equirectangular grid twice as
// wide as it is tall. Generate once, then derive the day, night and
// specular/cloud textures from it so they line up.
type Terrain struct {
	Width, Height int

	height []float32
	clouds []float32
	lights []float32
	lat    []float32
}

// GenerateTerrain builds the fields for a planet whose textures are size
// pixels tall. The same seed always yields the same planet.
func GenerateTerrain(size int, seed int64) *Terrain {
	if size < 2 {
		size = 2
	}
	t := &Terrain{Width: size * 2, Height: size}
	n := t.Width * t.Height
	t.height = make([]float32, n)
	t.clouds = make([]float32, n)
	t.lights = make([]float32, n)
	t.lat = make([]float32, n)

	ground := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	sky := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed+1)
	cities := perlin.NewPerlin(noiseAlpha, noiseBeta, 3, seed+2)

	fillRows(t.Width, t.Height, func(x, y int) {
		p := gridDirection(x, y, t.Width, t.Height)
		i := y*t.Width + x

		t.height[i] = float32(ground.Noise3D(float64(p.X)*1.5, float64(p.Y)*1.5, float64(p.Z)*1.5))
		// Stretch clouds along latitude.
		t.clouds[i] = float32(sky.Noise3D(float64(p.X)*2.5, float64(p.Y)*6, float64(p.Z)*2.5))
		t.lights[i] = float32(cities.Noise3D(float64(p.X)*24, float64(p.Y)*24, float64(p.Z)*24))
		t.lat[i] = p.Y
	})
	return t
}

// Day returns the sRGB albedo: oceans by depth, land by elevation, ice caps.
func (t *Terrain) Day() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for i, h := range t.height {
		var c color.NRGBA
		switch {
		case t.isIce(i):
			c = color.NRGBA{236, 240, 245, 255}
		case h <= seaLevel:
			depth := m.Clamp(-h*3, 0, 1)
			c = lerpNRGBA(color.NRGBA{28, 84, 150, 255}, color.NRGBA{8, 30, 78, 255}, depth)
		default:
			elev := m.Clamp(h*3, 0, 1)
			if elev < 0.5 {
				c = lerpNRGBA(color.NRGBA{70, 120, 52, 255}, color.NRGBA{150, 132, 86, 255}, elev*2)
			} else {
				c = lerpNRGBA(color.NRGBA{150, 132, 86, 255}, color.NRGBA{110, 96, 84, 255}, (elev-0.5)*2)
			}
		}
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = 255
	}
	return img
}

// Night returns the sRGB city-light texture: warm dots on populated land.
func (t *Terrain) Night() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for i, h := range t.height {
		var v float32
		if h > seaLevel && !t.isIce(i) {
			v = m.Smoothstep(0.15, 0.45, t.lights[i])
		}
		img.Pix[i*4+0] = uint8(255 * v)
		img.Pix[i*4+1] = uint8(200 * v)
		img.Pix[i*4+2] = uint8(110 * v)
		img.Pix[i*4+3] = 255
	}
	return img
}

// SpecularClouds returns the linear mask: red is 1 over open water, green
// is cloud cover.
func (t *Terrain) SpecularClouds() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for i, h := range t.height {
		var spec uint8
		if h <= seaLevel && !t.isIce(i) {
			spec = 255
		}
		cloud := m.Clamp(t.clouds[i]*1.6+0.55, 0, 1)
		img.Pix[i*4+0] = spec
		img.Pix[i*4+1] = uint8(255 * cloud)
		img.Pix[i*4+2] = 0
		img.Pix[i*4+3] = 255
	}
	return img
}

func (t *Terrain) isIce(i int) bool {
	return float32(math.Abs(float64(t.lat[i])))+t.height[i]*0.3 > 0.88
}

// Albedo returns a mottled texture around base for plainly lit bodies.
func Albedo(size int, seed int64, base color.NRGBA) *image.NRGBA {
	if size < 2 {
		size = 2
	}
	w, h := size*2, size
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)

	fillRows(w, h, func(x, y int) {
		p := gridDirection(x, y, w, h)
		n := float32(noise.Noise3D(float64(p.X)*3, float64(p.Y)*3, float64(p.Z)*3))
		f := m.Clamp(1+n*0.6, 0.4, 1.4)
		i := (y*w + x) * 4
		img.Pix[i+0] = scaleChannel(base.R, f)
		img.Pix[i+1] = scaleChannel(base.G, f)
		img.Pix[i+2] = scaleChannel(base.B, f)
		img.Pix[i+3] = 255
	})
	return img
}

// gridDirection is the unit sphere point under the center of pixel (x, y).
func gridDirection(x, y, w, h int) m.Vec3 {
	u := (float32(x) + 0.5) / float32(w)
	v := 1 - (float32(y)+0.5)/float32(h)
	return m.SphereDirection(u, v)
}

// fillRows calls fn for every pixel, one row per task. fn must only write
// to its own pixel.
func fillRows(w, h int, fn func(x, y int)) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < h; y++ {
		y := y // per-iteration copy (go directive is 1.21)
		g.Go(func() error {
			for x := 0; x < w; x++ {
				fn(x, y)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func lerpNRGBA(a, b color.NRGBA, t float32) color.NRGBA {
	return color.NRGBA{
		R: uint8(m.Mix(float32(a.R), float32(b.R), t) + 0.5),
		G: uint8(m.Mix(float32(a.G), float32(b.G), t) + 0.5),
		B: uint8(m.Mix(float32(a.B), float32(b.B), t) + 0.5),
		A: 255,
	}
}

func scaleChannel(c uint8, f float32) uint8 {
	return uint8(m.Clamp(float32(c)*f, 0, 255))
}
