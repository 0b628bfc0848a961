package render

import (
	"image"

	"picgrade/grade"
	"picgrade/lut"

	"github.com/nfnt/resize"
)

const (
	DefaultPreviewSize   = 1200
	DefaultThumbnailSize = 160
)

// Renderer produces the export, preview and thumbnail renditions of a
// picture. All three cut the crop region out first and then run the same
// engine, so they only differ in resolution.
type Renderer struct {
	Engine grade.Engine
}

// Export grades the crop region at its native resolution.
func (r Renderer) Export(img image.Image, s grade.Settings, l *lut.Lut) *image.NRGBA {
	src := CropRect(img.Bounds(), s.Crop)
	buf := Extract(img, src, src.Dx(), src.Dy())
	return r.Engine.Process(buf, s, l).Image()
}

// Preview grades the crop region scaled to fit in maxSize × maxSize.
func (r Renderer) Preview(img image.Image, s grade.Settings, l *lut.Lut, maxSize int) *image.NRGBA {
	if maxSize <= 0 {
		maxSize = DefaultPreviewSize
	}

	src := CropRect(img.Bounds(), s.Crop)
	w, h := Fit(src, maxSize, maxSize)
	buf := Extract(img, src, w, h)
	return r.Engine.Process(buf, s, l).Image()
}

// Thumbnail grades a square of at most size × size covering the crop
// region, centre-trimmed to a square before downscaling.
func (r Renderer) Thumbnail(img image.Image, s grade.Settings, l *lut.Lut, size int) *image.NRGBA {
	if size <= 0 {
		size = DefaultThumbnailSize
	}

	src := Cover(CropRect(img.Bounds(), s.Crop), size, size)
	square := Extract(img, src, src.Dx(), src.Dy())
	small := resize.Thumbnail(uint(size), uint(size), square.Image(), resize.Lanczos3)
	return r.Engine.Process(grade.FromImage(small), s, l).Image()
}
