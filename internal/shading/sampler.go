package shading

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

// ErrMissingTexture marks a texture slot that has nothing bound to it.
var ErrMissingTexture = errors.New("missing texture")

// Sampler returns a color for a texture coordinate. U wraps, V clamps,
// matching a sphere's equirectangular mapping.
type Sampler interface {
	Sample(uv m.Vec2) Color
}

// Solid samples the same color everywhere.
type Solid Color

// Sample implements Sampler.
func (s Solid) Sample(m.Vec2) Color {
	return Color(s)
}

// ImageSampler bilinearly samples a decoded image.
type ImageSampler struct {
	img    *image.NRGBA
	linear bool
}

// NewImageSampler wraps img. Color textures (day, night, albedo) are stored
// sRGB-encoded and should pass linear=true; data textures such as the
// specular/cloud mask pass false.
func NewImageSampler(img image.Image, linear bool) *ImageSampler {
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		b := img.Bounds()
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return &ImageSampler{img: nrgba, linear: linear}
}

// Sample implements Sampler. V=1 is the top row of the image.
func (s *ImageSampler) Sample(uv m.Vec2) Color {
	w := s.img.Rect.Dx()
	h := s.img.Rect.Dy()
	if w == 0 || h == 0 {
		return Black
	}

	u := float64(uv.X) - math.Floor(float64(uv.X))
	v := math.Max(0, math.Min(1, float64(uv.Y)))

	// Texel centers sit at half-integer positions.
	x := u*float64(w) - 0.5
	y := (1-v)*float64(h) - 0.5

	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := float32(x - x0)
	fy := float32(y - y0)

	ix0 := wrap(int(x0), w)
	ix1 := wrap(int(x0)+1, w)
	iy0 := clampInt(int(y0), h)
	iy1 := clampInt(int(y0)+1, h)

	top := lerp4(s.texel(ix0, iy0), s.texel(ix1, iy0), fx)
	bottom := lerp4(s.texel(ix0, iy1), s.texel(ix1, iy1), fx)
	c := lerp4(top, bottom, fy)

	if s.linear {
		return c.Linear()
	}
	return c
}

func (s *ImageSampler) texel(x, y int) Color {
	return FromNRGBA(s.img.NRGBAAt(x, y))
}

func lerp4(a, b Color, t float32) Color {
	return Mix(a, b, t).WithAlpha(m.Mix(a.A, b.A, t))
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func clampInt(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Slot identifies one of the three surface textures.
type Slot int

const (
	SlotDay Slot = iota
	SlotNight
	SlotSpecularClouds
)

func (s Slot) String() string {
	switch s {
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

// Fallback is what an unbound slot samples as: a mid-gray day side, a black
// night side and an empty mask (no highlight, no clouds). The GL renderer
// uploads the same colors as 1x1 textures.
func (s Slot) Fallback() Color {
	switch s {
	case SlotDay:
		return Gray(0.5)
	case SlotNight:
		return Black
	default:
		return Color{0, 0, 0, 1}
	}
}

// TextureSet binds the surface's three textures. Nil slots sample their Fallback.
type TextureSet struct {
	Day            Sampler
	Night          Sampler
	SpecularClouds Sampler
}

// Sampler returns the sampler bound to slot, or ErrMissingTexture.
func (t TextureSet) Sampler(slot Slot) (Sampler, error) {
	var s Sampler
	switch slot {
	case SlotDay:
		s = t.Day
	case SlotNight:
		s = t.Night
	case SlotSpecularClouds:
		s = t.SpecularClouds
	}
	if s == nil {
		return nil, ErrMissingTexture
	}
	return s, nil
}

// Missing lists the slots with nothing bound.
func (t TextureSet) Missing() []Slot {
	var missing []Slot
	for _, slot := range []Slot{SlotDay, SlotNight, SlotSpecularClouds} {
		if _, err := t.Sampler(slot); err != nil {
			missing = append(missing, slot)
		}
	}
	return missing
}

// Sample looks up all three textures at uv.
func (t TextureSet) Sample(uv m.Vec2) Texels {
	return Texels{
		Day:            t.sample(SlotDay, uv),
		Night:          t.sample(SlotNight, uv),
		SpecularClouds: t.sample(SlotSpecularClouds, uv),
	}
}

func (t TextureSet) sample(slot Slot, uv m.Vec2) Color {
	s, err := t.Sampler(slot)
	if err != nil {
		return slot.Fallback()
	}
	return s.Sample(uv)
}
