package grade

import (
	"image"

	"golang.org/x/image/draw"
)

// Buffer is an 8-bit RGBA raster, row-major and without padding: the pixel
// at (x, y) starts at Pix[(y*Width+x)*4]. Colour is not alpha-premultiplied.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromImage copies img into a new buffer of the same size.
func FromImage(img image.Image) *Buffer {
	b := img.Bounds()
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == 4*b.Dx() {
		buf := NewBuffer(b.Dx(), b.Dy())
		copy(buf.Pix, nrgba.Pix)
		return buf
	}

	buf := NewBuffer(b.Dx(), b.Dy())
	draw.Draw(buf.Image(), image.Rect(0, 0, b.Dx(), b.Dy()), img, b.Min, draw.Src)
	return buf
}

// Image wraps the buffer as an image without copying.
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: 4 * b.Width,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
