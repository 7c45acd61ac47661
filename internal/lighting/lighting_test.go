package lighting

import (
	"errors"
	"math"
	"testing"

	m "github.com/Faultbox/orbitshade/pkg/math"
)

func near(a, b m.Vec3, eps float64) bool {
	return math.Abs(float64(a.X-b.X)) <= eps &&
		math.Abs(float64(a.Y-b.Y)) <= eps &&
		math.Abs(float64(a.Z-b.Z)) <= eps
}

func TestSunPosition(t *testing.T) {
	tests := []struct {
		name               string
		radius, phi, theta float64
		want               m.Vec3
	}{
		{"equator facing +Z", 1, math.Pi / 2, 0, m.Vec3{Z: 1}},
		{"north pole", 2, 0, 1.3, m.Vec3{Y: 2}},
		{"equator facing +X", 3, math.Pi / 2, math.Pi / 2, m.Vec3{X: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunPosition(tt.radius, tt.phi, tt.theta)
			if !near(got, tt.want, 1e-6) {
				t.Errorf("SunPosition(%v, %v, %v) = %v, want %v", tt.radius, tt.phi, tt.theta, got, tt.want)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	dir, err := Direction(m.Vec3{Z: 1}, m.Vec3{X: 22, Z: 1})
	if err != nil {
		t.Fatalf("Direction() error: %v", err)
	}
	if !near(dir, m.Vec3{X: -1}, 1e-6) {
		t.Errorf("Direction() = %v, want (-1, 0, 0)", dir)
	}
	if l := dir.Length(); math.Abs(float64(l)-1) > 1e-6 {
		t.Errorf("direction length = %v", l)
	}
}

func TestDirectionDegenerate(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		name        string
		light, body m.Vec3
	}{
		{"coincident", m.Vec3{X: 1, Y: 2, Z: 3}, m.Vec3{X: 1, Y: 2, Z: 3}},
		{"below epsilon", m.Vec3{}, m.Vec3{X: 1e-7}},
		{"nan", m.Vec3{X: nan}, m.Vec3{}},
		{"inf", m.Vec3{}, m.Vec3{Y: inf}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Direction(tt.light, tt.body); !errors.Is(err, ErrDegenerateVector) {
				t.Errorf("Direction() error = %v, want ErrDegenerateVector", err)
			}
		})
	}
}

func TestTrackerIdempotent(t *testing.T) {
	tr := NewTracker("Earth", DefaultFallback)
	light := m.Vec3{Z: 1}
	body := m.Vec3{X: 13.7, Z: -9.1}

	first := tr.Update(light, body)
	for i := 0; i < 5; i++ {
		if got := tr.Update(light, body); got != first {
			t.Fatalf("update %d = %v, want %v", i, got, first)
		}
	}
	if tr.Degenerate() {
		t.Error("Degenerate() should be false")
	}
}

func TestTrackerFallbackOnCoincidentPositions(t *testing.T) {
	tr := NewTracker("Earth", DefaultFallback)
	p := m.Vec3{X: 5, Y: 5, Z: 5}

	got := tr.Update(p, p)
	if got != (m.Vec3{Z: 1}) {
		t.Errorf("first degenerate update = %v, want fallback (0, 0, 1)", got)
	}
	if !tr.Degenerate() {
		t.Error("Degenerate() should be true")
	}
}

func TestTrackerHoldsLastGood(t *testing.T) {
	tr := NewTracker("Earth", DefaultFallback)
	good := tr.Update(m.Vec3{}, m.Vec3{X: 10})

	nan := float32(math.NaN())
	for _, body := range []m.Vec3{{}, {X: nan}, {Y: float32(math.Inf(-1))}} {
		got := tr.Update(m.Vec3{}, body)
		if got != good {
			t.Errorf("degenerate update with %v = %v, want last good %v", body, got, good)
		}
		if !got.IsFinite() {
			t.Errorf("degenerate update produced non-finite %v", got)
		}
	}

	recovered := tr.Update(m.Vec3{}, m.Vec3{Z: 4})
	if !near(recovered, m.Vec3{Z: -1}, 1e-6) || tr.Degenerate() {
		t.Errorf("recovery = %v degenerate=%v", recovered, tr.Degenerate())
	}
	if tr.Direction() != recovered {
		t.Errorf("Direction() = %v, want %v", tr.Direction(), recovered)
	}
}

func TestNewTrackerRejectsBadFallback(t *testing.T) {
	tr := NewTracker("x", m.Vec3{})
	if tr.Direction() != DefaultFallback {
		t.Errorf("zero fallback replaced with %v", tr.Direction())
	}
	tr = NewTracker("x", m.Vec3{Y: 3})
	if tr.Direction() != (m.Vec3{Y: 1}) {
		t.Errorf("fallback not normalized: %v", tr.Direction())
	}
}

// whiteLight matches the default star: white, 400 at distance 1, inverse square.
func whiteLight() PointLight {
	return PointLight{Color: [3]float32{1, 1, 1}, Intensity: 400, Decay: 2, Ambient: 0.2}
}

func TestPointLightIrradiance(t *testing.T) {
	l := whiteLight()
	ambient := [3]float32{l.Ambient, l.Ambient, l.Ambient}

	// Facing away: ambient only.
	if got := l.Irradiance(m.Vec3{X: 10}, m.Vec3{X: 1}); got != ambient {
		t.Errorf("back side = %v, want ambient %v", got, ambient)
	}
	// On the light: ambient only, no division by zero.
	if got := l.Irradiance(m.Vec3{}, m.Vec3{X: 1}); got != ambient {
		t.Errorf("at light = %v, want ambient", got)
	}

	nearBody := l.Irradiance(m.Vec3{X: 10}, m.Vec3{X: -1})
	farBody := l.Irradiance(m.Vec3{X: 27}, m.Vec3{X: -1})
	if !(nearBody[0] > farBody[0] && farBody[0] > l.Ambient) {
		t.Errorf("irradiance should fall off with distance: %v, %v", nearBody, farBody)
	}
	want := l.Ambient + 400/100/float32(math.Pi)
	for i, v := range nearBody {
		if math.Abs(float64(v-want)) > 1e-4 {
			t.Errorf("irradiance[%d] at 10 = %v, want %v", i, v, want)
		}
	}
}

func TestPointLightIrradianceColored(t *testing.T) {
	l := whiteLight()
	l.Color = [3]float32{1, 0.5, 0}

	got := l.Irradiance(m.Vec3{X: 10}, m.Vec3{X: -1})
	lit := 400 / 100 / float32(math.Pi)
	want := [3]float32{l.Ambient + lit, l.Ambient + 0.5*lit, l.Ambient}
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > 1e-4 {
			t.Errorf("irradiance[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPointLightSanitized(t *testing.T) {
	l := PointLight{Color: [3]float32{2, -1, 0.5}, Intensity: -3, Decay: -1, Ambient: -0.1}.Sanitized()
	if l.Color != [3]float32{1, 0, 0.5} || l.Intensity != 0 || l.Decay != 0 || l.Ambient != 0 {
		t.Errorf("Sanitized() = %+v", l)
	}
}
