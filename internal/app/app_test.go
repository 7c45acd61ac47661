package app

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/orbitshade/internal/config"
)

func TestNewCameraFromConfig(t *testing.T) {
	cfg := config.Default().Camera
	cam := NewCamera(cfg)

	p := cam.Position()
	if gomath.Abs(float64(p.X)) > 1e-3 || gomath.Abs(float64(p.Y-20)) > 1e-3 || gomath.Abs(float64(p.Z-80)) > 1e-3 {
		t.Errorf("Position() = %v, want (0, 20, 80)", p)
	}
	if got := float64(cam.FOV) * 180 / gomath.Pi; gomath.Abs(got-20) > 1e-4 {
		t.Errorf("FOV = %v degrees, want 20", got)
	}
	if cam.Damping != cfg.Damping || cam.Near != cfg.Near || cam.Far != cfg.Far {
		t.Errorf("camera settings not copied: %+v", cam)
	}
}
