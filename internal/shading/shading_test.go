package shading

import (
	"math"
	"testing"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

var (
	testDay   = RGB(0.2, 0.5, 0.9)
	testNight = RGB(0.05, 0.04, 0.01)
	noMask    = Color{0, 0, 0, 1}
)

func testUniforms(light m.Vec3) Uniforms {
	return NewTints(RGB(0, 0.67, 1), RGB(1, 0.4, 0)).View().Uniforms(light)
}

// unitVectors spreads directions over the sphere.
func unitVectors(n int) []m.Vec3 {
	vs := make([]m.Vec3, 0, n*n)
	for i := 0; i < n; i++ {
		theta := math.Pi * (float64(i) + 0.5) / float64(n)
		for j := 0; j < n; j++ {
			phi := 2 * math.Pi * float64(j) / float64(n)
			vs = append(vs, m.Vec3{
				X: float32(math.Sin(theta) * math.Cos(phi)),
				Y: float32(math.Cos(theta)),
				Z: float32(math.Sin(theta) * math.Sin(phi)),
			})
		}
	}
	return vs
}

func TestSunOrientationAndDayMixRange(t *testing.T) {
	p := DefaultParams()
	dirs := unitVectors(12)
	for _, n := range dirs {
		for _, l := range dirs {
			s := SunOrientation(n, l)
			if s < -1 || s > 1 {
				t.Fatalf("SunOrientation(%v, %v) = %v, outside [-1, 1]", n, l, s)
			}
			d := p.DayMix(s)
			if d < 0 || d > 1 {
				t.Fatalf("DayMix(%v) = %v, outside [0, 1]", s, d)
			}
		}
	}
}

func TestDayMixMonotonic(t *testing.T) {
	p := DefaultParams()
	prev := p.DayMix(-1)
	for i := 1; i <= 2000; i++ {
		s := -1 + 2*float32(i)/2000
		d := p.DayMix(s)
		if d < prev {
			t.Fatalf("DayMix decreased at %v: %v < %v", s, d, prev)
		}
		prev = d
	}
}

func TestDayMixExtremes(t *testing.T) {
	p := DefaultParams()
	if got := p.DayMix(-1); got != 0 {
		t.Errorf("DayMix(-1) = %v, want 0", got)
	}
	if got := p.DayMix(1); got != 1 {
		t.Errorf("DayMix(1) = %v, want 1", got)
	}
}

func TestSurfaceAndAtmosphereTerminatorsAlign(t *testing.T) {
	// Both models derive their mix from the same Params.DayMix; verify via
	// observable output: with twilight black and day white, the atmosphere
	// tint's red channel is exactly the day mix.
	p := DefaultParams()
	tints := NewTints(White, Black)
	for _, n := range unitVectors(10) {
		light := m.Vec3{X: 0.6, Y: 0.0, Z: 0.8}
		u := tints.View().Uniforms(light)
		atm := p.Atmosphere(Fragment{Normal: n, View: m.Vec3{Z: -1}}, u)
		want := p.DayMix(SunOrientation(n, light))
		if atm.R != want {
			t.Fatalf("atmosphere mix %v != surface mix %v for normal %v", atm.R, want, n)
		}
	}
}

func TestSurfaceFullNightIsNightTexel(t *testing.T) {
	p := DefaultParams()
	light := m.Vec3{Z: 1}
	mask := RGB(1, 1, 1) // full highlight and clouds must still vanish at night
	f := Fragment{Normal: m.Vec3{Z: -1}, View: m.Vec3{Z: 1}}

	got := p.Surface(f, Texels{Day: testDay, Night: testNight, SpecularClouds: mask}, testUniforms(light))
	if got != testNight {
		t.Errorf("night side = %+v, want night texel %+v", got, testNight)
	}
}

func TestSurfaceFullDayIsDayTexel(t *testing.T) {
	p := DefaultParams()
	light := m.Vec3{Z: 1}
	f := Fragment{Normal: m.Vec3{Z: 1}, View: m.Vec3{Z: -1}}

	got := p.Surface(f, Texels{Day: testDay, Night: testNight, SpecularClouds: noMask}, testUniforms(light))
	if got != testDay {
		t.Errorf("day side = %+v, want day texel %+v", got, testDay)
	}
}

func TestSurfaceFullDayCloudOverlayOnly(t *testing.T) {
	p := DefaultParams()
	light := m.Vec3{Z: 1}
	f := Fragment{Normal: m.Vec3{Z: 1}, View: m.Vec3{Z: -1}}
	mask := Color{R: 0, G: 0.75, B: 0, A: 1}

	got := p.Surface(f, Texels{Day: testDay, Night: testNight, SpecularClouds: mask}, testUniforms(light))
	want := Mix(testDay, White, m.Smoothstep(p.CloudLow, p.CloudHigh, 0.75))
	if got != want.WithAlpha(1) {
		t.Errorf("cloudy day = %+v, want %+v", got, want)
	}
}

func TestSurfaceSpecularOnlyOnDaySide(t *testing.T) {
	p := DefaultParams()
	light := m.Vec3{Z: 1}
	mask := Color{R: 1, A: 1}
	f := Fragment{Normal: m.Vec3{Z: 1}, View: m.Vec3{Z: -1}}

	got := p.Surface(f, Texels{Day: testDay, Night: testNight, SpecularClouds: mask}, testUniforms(light))
	if !(got.R > testDay.R && got.G > testDay.G && got.B > testDay.B) {
		t.Errorf("expected highlight on top of day texel, got %+v", got)
	}

	// Same geometry with the light behind: no highlight survives.
	back := p.Surface(f, Texels{Day: testDay, Night: testNight, SpecularClouds: mask}, testUniforms(m.Vec3{Z: -1}))
	if back != testNight {
		t.Errorf("night side with specular mask = %+v, want %+v", back, testNight)
	}
}

func TestSurfaceTerminatorShiftsTowardsTwilight(t *testing.T) {
	p := DefaultParams()
	light := m.Vec3{Z: 1}
	// Normal chosen so dot(N, L) sits inside the terminator band.
	n := m.Vec3{X: float32(math.Sqrt(1 - 0.125*0.125)), Z: 0.125}
	f := Fragment{Normal: n, View: m.Vec3{X: -1}}
	u := testUniforms(light)

	plain := p
	plain.TerminatorTint = 0
	base := plain.Surface(f, Texels{Day: testDay, Night: testNight, SpecularClouds: noMask}, u)
	tinted := p.Surface(f, Texels{Day: testDay, Night: testNight, SpecularClouds: noMask}, u)

	// Twilight tint is orange, so red must rise.
	if !(tinted.R > base.R) {
		t.Errorf("terminator tint did not shift red: base %+v tinted %+v", base, tinted)
	}
}

func TestSurfaceIsDeterministic(t *testing.T) {
	p := DefaultParams()
	f := Fragment{Normal: m.Vec3{X: 0.6, Z: 0.8}, View: m.Vec3{Z: -1}}
	tex := Texels{Day: testDay, Night: testNight, SpecularClouds: RGB(0.4, 0.8, 0)}
	u := testUniforms(m.Vec3{X: 1})

	a := p.Surface(f, tex, u)
	b := p.Surface(f, tex, u)
	if a != b {
		t.Errorf("Surface not deterministic: %+v vs %+v", a, b)
	}
}

func TestAtmosphereAlphaZeroAtAntisolarPoint(t *testing.T) {
	p := DefaultParams()
	light := m.Vec3{Y: 1}
	n := m.Vec3{Y: -1}
	for _, view := range unitVectors(8) {
		a := p.Atmosphere(Fragment{Normal: n, View: view}, testUniforms(light))
		if a.A != 0 {
			t.Fatalf("alpha at antisolar point with view %v = %v, want 0", view, a.A)
		}
	}
}

func TestAtmosphereAlphaPeaksAtGrazingOnDaySide(t *testing.T) {
	p := DefaultParams()
	light := m.Vec3{Z: 1}
	n := m.Vec3{Z: 1}
	u := testUniforms(light)

	grazing := p.Atmosphere(Fragment{Normal: n, View: m.Vec3{X: 1}}, u)
	if grazing.A != 1 {
		t.Errorf("grazing alpha on day side = %v, want 1", grazing.A)
	}

	prev := grazing.A
	for i := 1; i <= 10; i++ {
		angle := float64(i) / 10 * math.Pi / 2
		view := m.Vec3{X: float32(math.Cos(angle)), Z: -float32(math.Sin(angle))}
		a := p.Atmosphere(Fragment{Normal: n, View: view}, u).A
		if a > prev+1e-6 {
			t.Fatalf("alpha rose when turning towards head-on: %v > %v", a, prev)
		}
		prev = a
	}
}

func TestAtmosphereTintEndpoints(t *testing.T) {
	p := DefaultParams()
	tints := NewTints(RGB(0, 0.67, 1), RGB(1, 0.4, 0))
	u := tints.View().Uniforms(m.Vec3{Z: 1})

	day := p.Atmosphere(Fragment{Normal: m.Vec3{Z: 1}, View: m.Vec3{X: 1}}, u)
	if day.WithAlpha(1) != tints.View().Day() {
		t.Errorf("day-side tint = %+v, want %+v", day, tints.View().Day())
	}
	night := p.Atmosphere(Fragment{Normal: m.Vec3{Z: -1}, View: m.Vec3{X: 1}}, u)
	if night.WithAlpha(1) != tints.View().Twilight() {
		t.Errorf("night-side tint = %+v, want %+v", night, tints.View().Twilight())
	}
}

func TestEdgeNeverNaN(t *testing.T) {
	p := DefaultParams()
	// Slightly over-unit vectors push dot() above 1.
	f := Fragment{Normal: m.Vec3{Z: 1.0000001}, View: m.Vec3{Z: -1.0000001}}
	e := p.Edge(f)
	if math.IsNaN(float64(e)) || e != 0 {
		t.Errorf("Edge() = %v, want 0", e)
	}
}

// Scenario: body at the origin lit from +Z, camera looking down -Z.
func TestScenarioSubsolarPoint(t *testing.T) {
	p := DefaultParams()
	u := testUniforms(m.Vec3{Z: 1})
	f := Fragment{Normal: m.Vec3{Z: 1}, View: m.Vec3{Z: -1}}

	if s := SunOrientation(f.Normal, u.LightDir); s != 1 {
		t.Fatalf("sunOrientation = %v, want 1", s)
	}
	surface := p.Surface(f, Texels{Day: testDay, Night: testNight, SpecularClouds: noMask}, u)
	if surface != testDay {
		t.Errorf("surface = %+v, want day texel", surface)
	}
	if a := p.Atmosphere(f, u).A; a > 1e-6 {
		t.Errorf("atmosphere alpha facing camera = %v, want ~0", a)
	}
}

func TestScenarioFarSide(t *testing.T) {
	p := DefaultParams()
	u := testUniforms(m.Vec3{Z: 1})
	f := Fragment{Normal: m.Vec3{Z: -1}, View: m.Vec3{Z: -1}}

	if s := SunOrientation(f.Normal, u.LightDir); s != -1 {
		t.Fatalf("sunOrientation = %v, want -1", s)
	}
	surface := p.Surface(f, Texels{Day: testDay, Night: testNight, SpecularClouds: RGB(1, 1, 1)}, u)
	if surface != testNight {
		t.Errorf("surface = %+v, want night texel", surface)
	}
	if a := p.Atmosphere(f, u).A; a != 0 {
		t.Errorf("atmosphere alpha = %v, want 0", a)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		ok     bool
	}{
		{"defaults", func(*Params) {}, true},
		{"empty terminator band", func(p *Params) { p.TerminatorHigh = p.TerminatorLow }, false},
		{"inverted cloud band", func(p *Params) { p.CloudLow, p.CloudHigh = 1, 0.5 }, false},
		{"zero fresnel exponent", func(p *Params) { p.FresnelExponent = 0 }, false},
		{"negative specular", func(p *Params) { p.SpecularStrength = -1 }, false},
		{"tint out of range", func(p *Params) { p.TerminatorTint = 2 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected an error")
			}
		})
	}
}
