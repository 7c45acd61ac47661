package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/orbitshade/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func TestIntersectSphere(t *testing.T) {
	tests := []struct {
		name      string
		ray       Ray
		near, far float32
		hit       bool
	}{
		{"head on", Ray{math.Vec3{Z: 5}, math.Vec3{Z: -1}}, 4, 6, true},
		{"miss", Ray{math.Vec3{X: 2, Z: 5}, math.Vec3{Z: -1}}, 0, 0, false},
		{"behind", Ray{math.Vec3{Z: 5}, math.Vec3{Z: 1}}, 0, 0, false},
		{"inside", Ray{math.Vec3{}, math.Vec3{X: 1}}, 1, 1, true},
		{"tangent", Ray{math.Vec3{X: 1, Z: 5}, math.Vec3{Z: -1}}, 5, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			near, far, hit := tt.ray.IntersectSphere(math.Vec3{}, 1)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if !approx(near, tt.near) || !approx(far, tt.far) {
				t.Errorf("IntersectSphere() = (%v, %v), want (%v, %v)", near, far, tt.near, tt.far)
			}
		})
	}
}

func TestScreenToRayCenter(t *testing.T) {
	c := NewCamera(math.Vec3{Y: 20, Z: 80}, math.Vec3{}, float32(20*gomath.Pi/180), 16.0/9.0)
	r := c.ScreenToRay(640, 360, 1280, 720)
	want := math.Vec3{Y: -20, Z: -80}.Normalize()
	if r.Direction.Sub(want).Length() > 1e-5 {
		t.Errorf("center ray = %v, want %v", r.Direction, want)
	}

	// The top edge of the viewport is half the field of view above center.
	top := c.ScreenToRay(640, 0, 1280, 720)
	angle := gomath.Acos(float64(top.Direction.Dot(r.Direction)))
	if gomath.Abs(angle-10*gomath.Pi/180) > 1e-4 {
		t.Errorf("top edge angle = %v rad, want 10 degrees", angle)
	}
	if top.Direction.Y <= r.Direction.Y {
		t.Error("screen top should map to world up")
	}
}

func TestNewCameraLookingStraightDown(t *testing.T) {
	c := NewCamera(math.Vec3{Y: 10}, math.Vec3{}, 1, 1)
	if !c.Right.IsFinite() || c.Right.Length() < 0.99 {
		t.Errorf("Right = %v, want a unit vector", c.Right)
	}
}

func TestPick(t *testing.T) {
	spheres := []Sphere{
		{Name: "far", Center: math.Vec3{Z: -10}, Radius: 1},
		{Name: "near", Center: math.Vec3{Z: -4}, Radius: 1},
		{Name: "off", Center: math.Vec3{X: 5}, Radius: 1},
	}
	r := Ray{Origin: math.Vec3{}, Direction: math.Vec3{Z: -1}}

	i, dist, hit := r.Pick(spheres)
	if !hit || spheres[i].Name != "near" || !approx(dist, 3) {
		t.Errorf("Pick() = (%d, %v, %v), want near at 3", i, dist, hit)
	}

	if _, _, hit := (Ray{Direction: math.Vec3{Y: 1}}).Pick(spheres); hit {
		t.Error("upward ray should miss")
	}
	if p := r.At(2); p != (math.Vec3{Z: -2}) {
		t.Errorf("At(2) = %v", p)
	}
}
