package framebuffer

import "testing"

func TestPixelsToImageFlipsRows(t *testing.T) {
	// Two rows, bottom row first as OpenGL returns them.
	pixels := []byte{
		1, 2, 3, 0, 4, 5, 6, 10, // bottom
		7, 8, 9, 20, 10, 11, 12, 30, // top
	}
	img := PixelsToImage(pixels, 2, 2)

	if c := img.NRGBAAt(0, 0); c.R != 7 || c.G != 8 || c.B != 9 {
		t.Errorf("top-left = %v, want (7, 8, 9)", c)
	}
	if c := img.NRGBAAt(1, 1); c.R != 4 || c.G != 5 || c.B != 6 {
		t.Errorf("bottom-right = %v, want (4, 5, 6)", c)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("alpha at %d = %d, want opaque", i, img.Pix[i])
		}
	}
}
