package render

import (
	"image"
	"math"

	"picgrade/grade"

	"golang.org/x/image/draw"
)

// CropRect maps a normalised crop onto bounds. Origin and size are floored
// the way a canvas copy truncates them; a nil or empty crop selects the
// whole image.
func CropRect(bounds image.Rectangle, c *grade.Crop) image.Rectangle {
	if c == nil {
		return bounds
	}

	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	x0 := bounds.Min.X + int(math.Floor(c.X*w))
	y0 := bounds.Min.Y + int(math.Floor(c.Y*h))
	r := image.Rect(x0, y0, x0+int(math.Floor(c.Width*w)), y0+int(math.Floor(c.Height*h))).Intersect(bounds)
	if r.Empty() {
		return bounds
	}
	return r
}

// Fit returns the largest size with the aspect ratio of src that fits in
// maxWidth × maxHeight without upscaling. A zero bound leaves that side free.
func Fit(src image.Rectangle, maxWidth, maxHeight int) (int, int) {
	srcWidth := float64(src.Dx())
	srcHeight := float64(src.Dy())
	if srcWidth == 0 || srcHeight == 0 {
		return src.Dx(), src.Dy()
	}

	scale := 1.0
	if maxWidth > 0 {
		scale = min(scale, float64(maxWidth)/srcWidth)
	}
	if maxHeight > 0 {
		scale = min(scale, float64(maxHeight)/srcHeight)
	}

	return max(1, int(math.Round(srcWidth*scale))), max(1, int(math.Round(srcHeight*scale)))
}

// Cover trims src symmetrically to the aspect ratio of width × height, so
// that scaling the result fills the whole destination.
func Cover(src image.Rectangle, width, height int) image.Rectangle {
	if width <= 0 || height <= 0 || src.Empty() {
		return src
	}

	srcAR := float64(src.Dx()) / float64(src.Dy())
	destAR := float64(width) / float64(height)
	if srcAR < destAR {
		dh := int(math.Round((float64(src.Dy()) - float64(src.Dx())/destAR) / 2))
		src.Min.Y += dh
		src.Max.Y -= dh
	} else if srcAR > destAR {
		dw := int(math.Round((float64(src.Dx()) - float64(src.Dy())*destAR) / 2))
		src.Min.X += dw
		src.Max.X -= dw
	}
	return src
}

// Extract draws the src region of img into a new width × height buffer,
// scaling with Catmull-Rom when the sizes differ.
func Extract(img image.Image, src image.Rectangle, width, height int) *grade.Buffer {
	buf := grade.NewBuffer(width, height)
	dr := image.Rect(0, 0, width, height)

	if src.Dx() == width && src.Dy() == height {
		draw.Draw(buf.Image(), dr, img, src.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(buf.Image(), dr, img, src, draw.Src, nil)
	}
	return buf
}
