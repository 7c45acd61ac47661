package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector normalized to %v", got)
	}
}

func TestVec3Reflect(t *testing.T) {
	// Light arriving straight down onto an upward normal bounces straight up.
	got := Vec3{0, -1, 0}.Reflect(Vec3{0, 1, 0})
	if got != (Vec3{0, 1, 0}) {
		t.Errorf("Reflect() = %v, want (0, 1, 0)", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		v    Vec3
		want bool
	}{
		{Vec3{1, 2, 3}, true},
		{Vec3{nan, 0, 0}, false},
		{Vec3{0, inf, 0}, false},
		{Vec3{0, 0, -inf}, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFinite(); got != tt.want {
			t.Errorf("%v.IsFinite() = %v, want %v", tt.v, got, tt.want)
		}
	}
}
