package renderer

import (
	"testing"

	"github.com/Faultbox/orbitshade/internal/scene"
	"github.com/Faultbox/orbitshade/internal/shading"
)

func TestFallbackTexel(t *testing.T) {
	tests := []struct {
		name string
		ref  scene.TextureRef
		want string
	}{
		{"day gray is stored encoded", scene.TextureRef{Slot: scene.SlotDay, Fallback: shading.Gray(0.5)}, "#bcbcbc"},
		{"night black", scene.TextureRef{Slot: scene.SlotNight, Fallback: shading.Black}, "#000000"},
		{"mask stays raw", scene.TextureRef{Slot: scene.SlotSpecularClouds, Fallback: shading.Gray(0.5)}, "#808080"},
		{"albedo encoded", scene.TextureRef{Slot: scene.SlotAlbedo, Fallback: shading.White}, "#ffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fallbackTexel(tt.ref).Hex(); got != tt.want {
				t.Errorf("fallbackTexel() = %s, want %s", got, tt.want)
			}
		})
	}
}
