// Package texture converts decoded images for upload and manages GL textures.
package texture

import (
	"errors"
	"image"
	"image/color"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
)

// ToNRGBA converts img to straight-alpha RGBA with its origin at (0, 0).
// With flipY the bottom row comes first, which is the row order
// glTexImage2D expects for V=1 to address the top of the image.
func ToNRGBA(img image.Image, flipY bool) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	if flipY {
		FlipRows(dst.Pix, dst.Stride, dst.Rect.Dy())
	}
	return dst
}

// FlipRows reverses the row order of a packed pixel buffer in place.
func FlipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for y := 0; y < rows/2; y++ {
		top := pix[y*stride : (y+1)*stride]
		bottom := pix[(rows-1-y)*stride : (rows-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// Texture is a 2D GL texture.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// Options control how an image is uploaded.
type Options struct {
	// SRGB stores the texels as sRGB so sampling returns linear values.
	// Color textures want this; data textures such as masks do not.
	SRGB bool
	// Mipmaps enables trilinear filtering.
	Mipmaps bool
}

// Upload creates a texture from img. U repeats and V clamps, matching the
// sphere's equirectangular layout.
func Upload(img image.Image, opts Options) (*Texture, error) {
	if img.Bounds().Empty() {
		return nil, errors.New("empty image")
	}
	nrgba := ToNRGBA(img, true)
	return upload(nrgba, opts), nil
}

// Solid creates a 1x1 texture of a single color.
func Solid(c color.NRGBA, srgb bool) *Texture {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	return upload(img, Options{SRGB: srgb})
}

func upload(img *image.NRGBA, opts Options) *Texture {
	t := &Texture{Width: img.Rect.Dx(), Height: img.Rect.Dy()}

	internal := int32(gl.RGBA8)
	if opts.SRGB {
		internal = gl.SRGB8_ALPHA8
	}

	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(t.Width), int32(t.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if opts.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// Bind binds the texture to a texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Destroy releases the texture.
func (t *Texture) Destroy() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
