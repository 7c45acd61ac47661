package math

import (
	"math"
	"testing"
)

func TestSmoothstepEdges(t *testing.T) {
	tests := []struct {
		name string
		x    float32
		want float32
	}{
		{"below band", -1, 0},
		{"at low edge", -0.25, 0},
		{"at high edge", 0.5, 1},
		{"above band", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Smoothstep(-0.25, 0.5, tt.x); got != tt.want {
				t.Errorf("Smoothstep(-0.25, 0.5, %v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestSmoothstepMidpoint(t *testing.T) {
	got := Smoothstep(0, 1, 0.5)
	if got != 0.5 {
		t.Errorf("Smoothstep(0, 1, 0.5) = %v, want 0.5", got)
	}
}

func TestSmoothstepZeroWidth(t *testing.T) {
	if Smoothstep(0.2, 0.2, 0.1) != 0 || Smoothstep(0.2, 0.2, 0.3) != 1 {
		t.Error("zero-width band should act as a step")
	}
}

func TestMixExactAtEnds(t *testing.T) {
	a, b := float32(0.1), float32(0.7)
	if Mix(a, b, 0) != a {
		t.Errorf("Mix(a, b, 0) = %v, want %v", Mix(a, b, 0), a)
	}
	if Mix(a, b, 1) != b {
		t.Errorf("Mix(a, b, 1) = %v, want %v", Mix(a, b, 1), b)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{TwoPi, 0},
		{TwoPi + 1, 1},
		{-1, TwoPi - 1},
	}
	for _, tt := range tests {
		got := WrapAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= TwoPi {
			t.Errorf("WrapAngle(%v) = %v, outside [0, 2π)", tt.in, got)
		}
	}
}
