package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/orbitshade/internal/assets"
	"github.com/Faultbox/orbitshade/internal/config"
	"github.com/Faultbox/orbitshade/internal/shading"
	m "github.com/Faultbox/orbitshade/pkg/math"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImageSourceLoadsFiles(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "earth", "day.png"), color.NRGBA{R: 255, A: 255})

	src := NewImageSource(assets.NewManager(dir), config.AssetsConfig{})
	img, ok := src.Image(TextureRef{Name: "earth/day.png", Slot: SlotDay})
	if !ok {
		t.Fatal("Image() should find the file")
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 255 {
		t.Errorf("red = %d, want 255", r>>8)
	}
}

func TestImageSourceFallbacks(t *testing.T) {
	ref := TextureRef{Name: "missing.jpg", Slot: SlotAlbedo, Fallback: shading.Gray(0.5)}

	plain := NewImageSource(assets.NewManager(t.TempDir()), config.AssetsConfig{})
	if _, ok := plain.Image(ref); ok {
		t.Error("without procedural textures a missing file should report !ok")
	}

	gen := NewImageSource(assets.NewManager(t.TempDir()), config.AssetsConfig{Procedural: true, ProceduralSize: 8, Seed: 3})
	img, ok := gen.Image(ref)
	if !ok {
		t.Fatal("procedural source should always produce an image")
	}
	if b := img.Bounds(); b.Dx() != 2*b.Dy() {
		t.Errorf("albedo bounds = %v, want 2:1", b)
	}

	day, _ := gen.Image(TextureRef{Slot: SlotDay})
	night, _ := gen.Image(TextureRef{Slot: SlotNight})
	if day.Bounds() != night.Bounds() {
		t.Errorf("day %v and night %v should share a grid", day.Bounds(), night.Bounds())
	}
}

func TestTextureSetFallsBack(t *testing.T) {
	src := NewImageSource(assets.NewManager(t.TempDir()), config.AssetsConfig{})
	d, n, s := surfaceRefs("a.jpg", "b.jpg", "c.jpg")
	set := src.TextureSet(SurfaceMaterial{Day: d, Night: n, SpecularClouds: s})

	if missing := set.Missing(); len(missing) != 3 {
		t.Fatalf("Missing() = %v, want all three", missing)
	}
	texels := set.Sample(m.Vec2{X: 0.3, Y: 0.4})
	if texels.Day != shading.Gray(0.5) || texels.Night != shading.Black {
		t.Errorf("fallback texels = %+v", texels)
	}
}
