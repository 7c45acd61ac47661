package shading

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#00aaff", RGB(0, 170.0/255, 1), false},
		{"ff6600", RGB(1, 102.0/255, 0), false},
		{"  #FFFFFF ", White, false},
		{"#fff", Color{}, true},
		{"#gg0000", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHex(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{"#00aaff", "#ff6600", "#000000", "#123456"} {
		c, err := ParseHex(s)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.Hex(); got != s {
			t.Errorf("Hex() = %q, want %q", got, s)
		}
	}
}

func TestMixEndpoints(t *testing.T) {
	a := RGB(0.1, 0.2, 0.3)
	b := RGB(0.9, 0.8, 0.7)
	if got := Mix(a, b, 0); got != a {
		t.Errorf("Mix(a, b, 0) = %+v, want %+v", got, a)
	}
	if got := Mix(a, b, 1); got != b {
		t.Errorf("Mix(a, b, 1) = %+v, want %+v", got, b)
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 0.001, 0.02, 0.18, 0.5, 0.9, 1} {
		c := Gray(v)
		back := c.Linear().SRGB()
		if !near(back.R, v, 1e-5) {
			t.Errorf("sRGB round trip of %v = %v", v, back.R)
		}
	}
	if mid := Gray(0.5).Linear().R; !near(mid, 0.214, 1e-3) {
		t.Errorf("sRGB 0.5 linearized = %v, want ~0.214", mid)
	}
}

func TestOver(t *testing.T) {
	dst := Black
	src := RGB(1, 0.5, 0).WithAlpha(0.5)
	got := src.Over(dst)
	want := Color{0.5, 0.25, 0, 1}
	if got != want {
		t.Errorf("Over() = %+v, want %+v", got, want)
	}
	if got := src.WithAlpha(0).Over(dst); got != dst {
		t.Errorf("transparent Over() = %+v, want dst", got)
	}
}

func TestToneMap(t *testing.T) {
	if got := ToneMap(Black, DefaultExposure); got != Black {
		t.Errorf("ToneMap(black) = %+v", got)
	}
	bright := ToneMap(Gray(100), DefaultExposure)
	if bright.R > 1 || bright.R < 0.99 {
		t.Errorf("ToneMap(100) = %v, want just under or at 1", bright.R)
	}
	prev := float32(0)
	for i := 1; i <= 100; i++ {
		v := ToneMap(Gray(float32(i)/20), DefaultExposure).R
		if v < prev {
			t.Fatalf("tone curve not monotonic at %d", i)
		}
		prev = v
	}
	if px := Encode(White.WithAlpha(0.5), DefaultExposure); px.A != 128 {
		t.Errorf("Encode alpha = %d, want 128", px.A)
	}
}

func TestTintsWriteThrough(t *testing.T) {
	tints := NewTints(RGB(0, 0.5, 1), RGB(1, 0.4, 0))
	surface := tints.View()
	atmosphere := tints.View()
	if !surface.Same(atmosphere) {
		t.Fatal("views of one record should be Same")
	}

	tints.SetDay(RGB(0.2, 0.2, 0.2))
	if surface.Day() != atmosphere.Day() || surface.Day() != RGB(0.2, 0.2, 0.2) {
		t.Errorf("day write not seen by both views: %+v / %+v", surface.Day(), atmosphere.Day())
	}

	tints.Set(White, Black)
	u1 := surface.Uniforms(m.Vec3{Z: 1})
	u2 := atmosphere.Uniforms(m.Vec3{Z: 1})
	if u1 != u2 {
		t.Errorf("uniforms differ after Set: %+v vs %+v", u1, u2)
	}

	other := NewTints(White, Black).View()
	if surface.Same(other) {
		t.Error("views of different records should not be Same")
	}
}

func TestTextureSetFallback(t *testing.T) {
	var set TextureSet
	if got := set.Missing(); len(got) != 3 {
		t.Fatalf("Missing() = %v, want all three slots", got)
	}
	if _, err := set.Sampler(SlotNight); !errors.Is(err, ErrMissingTexture) {
		t.Errorf("Sampler(night) error = %v, want ErrMissingTexture", err)
	}

	texels := set.Sample(m.Vec2{X: 0.3, Y: 0.7})
	if texels.Day != Gray(0.5) || texels.Night != Black || texels.SpecularClouds.R != 0 || texels.SpecularClouds.G != 0 {
		t.Errorf("fallback texels = %+v", texels)
	}

	set.Day = Solid(RGB(0, 1, 0))
	if got := set.Missing(); len(got) != 2 {
		t.Errorf("Missing() after binding day = %v", got)
	}
	if got := set.Sample(m.Vec2{}).Day; got != RGB(0, 1, 0) {
		t.Errorf("bound day sample = %+v", got)
	}
}

func TestSlotString(t *testing.T) {
	if SlotSpecularClouds.String() != "specular_clouds" || Slot(9).String() != "unknown" {
		t.Error("unexpected slot names")
	}
}

func TestImageSampler(t *testing.T) {
	// 2x2: top row red/green, bottom row blue/white.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})
	s := NewImageSampler(img, false)

	tests := []struct {
		name string
		uv   m.Vec2
		want Color
	}{
		{"top-left texel center", m.Vec2{X: 0.25, Y: 0.75}, RGB(1, 0, 0)},
		{"top-right texel center", m.Vec2{X: 0.75, Y: 0.75}, RGB(0, 1, 0)},
		{"bottom-left texel center", m.Vec2{X: 0.25, Y: 0.25}, RGB(0, 0, 1)},
		{"u wraps", m.Vec2{X: 1.25, Y: 0.75}, RGB(1, 0, 0)},
		{"negative u wraps", m.Vec2{X: -0.25, Y: 0.75}, RGB(0, 1, 0)},
		{"v clamps above", m.Vec2{X: 0.25, Y: 5}, RGB(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Sample(tt.uv)
			if !near(got.R, tt.want.R, 1e-4) || !near(got.G, tt.want.G, 1e-4) || !near(got.B, tt.want.B, 1e-4) {
				t.Errorf("Sample(%v) = %+v, want %+v", tt.uv, got, tt.want)
			}
		})
	}

	// Halfway between left and right texels wraps across the seam.
	seam := s.Sample(m.Vec2{X: 0, Y: 0.75})
	if !near(seam.R, 0.5, 1e-4) || !near(seam.G, 0.5, 1e-4) {
		t.Errorf("seam sample = %+v, want a red/green blend", seam)
	}
}

func TestImageSamplerLinearizes(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 128})

	raw := NewImageSampler(img, false).Sample(m.Vec2{X: 0.5, Y: 0.5})
	lin := NewImageSampler(img, true).Sample(m.Vec2{X: 0.5, Y: 0.5})
	if !near(raw.R, 128.0/255, 1e-4) {
		t.Errorf("raw sample = %v", raw.R)
	}
	if !(lin.R < raw.R) {
		t.Errorf("linear sample %v should be darker than encoded %v", lin.R, raw.R)
	}
}
