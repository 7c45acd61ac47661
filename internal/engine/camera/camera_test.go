package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/orbitshade/pkg/math"
)

func near(a, b math.Vec3, eps float64) bool {
	return gomath.Abs(float64(a.X-b.X)) <= eps &&
		gomath.Abs(float64(a.Y-b.Y)) <= eps &&
		gomath.Abs(float64(a.Z-b.Z)) <= eps
}

func TestLookFromRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		position math.Vec3
		target   math.Vec3
	}{
		{"default view", math.Vec3{X: 0, Y: 20, Z: 80}, math.Vec3{}},
		{"from the side", math.Vec3{X: 40, Y: -10, Z: 0}, math.Vec3{}},
		{"off-center target", math.Vec3{X: 25, Y: 5, Z: 30}, math.Vec3{X: 22, Y: 0, Z: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.LookFrom(tt.position, tt.target)
			if got := c.Position(); !near(got, tt.position, 1e-3) {
				t.Errorf("Position() = %v, want %v", got, tt.position)
			}
		})
	}
}

func TestViewMatrixCentersTarget(t *testing.T) {
	c := NewOrbitCamera()
	c.LookFrom(math.Vec3{Y: 20, Z: 80}, math.Vec3{})
	p := c.ViewMatrix().TransformPoint(math.Vec3{})
	if gomath.Abs(float64(p.X)) > 1e-4 || gomath.Abs(float64(p.Y)) > 1e-4 || p.Z >= 0 {
		t.Errorf("target in view space = %v, want on -Z", p)
	}
}

func TestDragIsDamped(t *testing.T) {
	c := NewOrbitCamera()
	c.LookFrom(math.Vec3{Z: 80}, math.Vec3{})
	c.HandleDrag(-100, 0)

	c.Update()
	first := c.RotationY
	if first <= 0 {
		t.Fatalf("drag left should turn yaw positive, got %v", first)
	}
	c.Update()
	second := c.RotationY - first
	if !(second > 0 && second < first) {
		t.Errorf("second step %v should be smaller than the first %v", second, first)
	}

	for i := 0; i < 2000 && c.Moving(); i++ {
		c.Update()
	}
	if c.Moving() {
		t.Error("camera should come to rest")
	}
	// Geometric series: total = step / damping.
	if total := c.RotationY; gomath.Abs(float64(total)-0.5/0.05) > 0.01 {
		t.Errorf("total yaw = %v, want about %v", total, 0.5/0.05)
	}
}

func TestZoomAndPitchClamped(t *testing.T) {
	c := NewOrbitCamera()
	c.Damping = 1
	c.LookFrom(math.Vec3{Z: 80}, math.Vec3{})

	c.HandleZoom(1000)
	c.Update()
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want min %v", c.Distance, c.MinDistance)
	}

	c.HandleDrag(0, 1e6)
	c.Update()
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want max %v", c.RotationX, c.MaxPitch)
	}
	if c.Moving() {
		t.Error("full damping should stop immediately")
	}
}

func TestProjectionMatrix(t *testing.T) {
	c := NewOrbitCamera()
	p := c.ProjectionMatrix(16.0 / 9.0)
	if p[11] != -1 {
		t.Errorf("projection [11] = %v, want -1", p[11])
	}
	if bad := c.ProjectionMatrix(0); bad[0] != bad[5] {
		t.Error("zero aspect should fall back to 1")
	}
}
