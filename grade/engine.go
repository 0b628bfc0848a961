package grade

import (
	"math"

	"picgrade/colorspace"
	"picgrade/lut"
	"picgrade/parallel"
)

const (
	// skin tones cluster around 15°..30°; the mask is centred at ~21.6°
	skinReferenceHue = 0.06
	// hue window at skinDetectionRange 100, about 54°
	skinMaxRange = 0.15
	// skinHue 0..100 spans red through orange to yellow
	skinHueBand = 60.0 / 360
	// masks at or below this weight leave the pixel alone
	skinMinWeight = 0.05

	skinSaturationCentre = 0.4
	skinSaturationSpread = 0.4
	skinLightnessCentre  = 0.5
	skinLightnessSpread  = 0.45
)

// Engine applies Settings to pixel buffers. The zero value splits work
// across one goroutine per CPU.
type Engine struct {
	// Workers is the number of goroutines pixels are split across; below
	// one means one per CPU, one means the caller's goroutine only.
	Workers int
}

// Process grades buf on the calling goroutine. See Engine.Process.
func Process(buf *Buffer, s Settings, l *lut.Lut) *Buffer {
	return Engine{Workers: 1}.Process(buf, s, l)
}

// Process returns a graded copy of buf with the same dimensions; buf is
// not modified and alpha is copied through. l is the active LUT or nil.
// Contrast of exactly ±259 is a precondition violation (see
// Settings.Validate); every other input is accepted. The result does not
// depend on the number of workers.
func (e Engine) Process(buf *Buffer, s Settings, l *lut.Lut) *Buffer {
	out := &Buffer{
		Width:  buf.Width,
		Height: buf.Height,
		Pix:    make([]uint8, len(buf.Pix)),
	}
	copy(out.Pix, buf.Pix)

	p := newPipeline(s, l)
	parallel.Split(len(buf.Pix)/4, e.Workers, func(lo, hi int) {
		for i := lo * 4; i < hi*4; i += 4 {
			px := out.Pix[i : i+3 : i+3]
			r, g, b := p.apply(float64(px[0]), float64(px[1]), float64(px[2]))
			px[0], px[1], px[2] = toByte(r), toByte(g), toByte(b)
		}
	})

	return out
}

type pipeline struct {
	exposure   float64
	contrast   float64
	saturation float64

	lut     *lut.Lut
	lutT    float64
	lutSize int

	skinRange      float64
	skinTarget     float64
	skinSaturation float64
	skinLuminance  float64
}

func newPipeline(s Settings, l *lut.Lut) *pipeline {
	p := &pipeline{
		exposure:       math.Pow(2, s.Exposure/50),
		contrast:       (259 * (s.Contrast + 255)) / (255 * (259 - s.Contrast)),
		saturation:     1 + s.Saturation/100,
		skinRange:      (s.SkinDetectionRange / 100) * skinMaxRange,
		skinTarget:     (s.SkinHue / 100) * skinHueBand,
		skinSaturation: s.SkinSaturation / 100,
		skinLuminance:  s.SkinLuminance / 200,
	}

	if l != nil && s.LutIntensity > 0 {
		p.lut = l
		p.lutT = s.LutIntensity / 100
		p.lutSize = l.Size
	}

	return p
}

func (p *pipeline) apply(r, g, b float64) (float64, float64, float64) {
	r, g, b = r*p.exposure, g*p.exposure, b*p.exposure

	r = p.contrast*(r-128) + 128
	g = p.contrast*(g-128) + 128
	b = p.contrast*(b-128) + 128

	gray := 0.299*r + 0.587*g + 0.114*b
	r = gray + (r-gray)*p.saturation
	g = gray + (g-gray)*p.saturation
	b = gray + (b-gray)*p.saturation

	if p.lut != nil {
		r, g, b = p.applyLut(r, g, b)
	}

	return p.applySkin(r, g, b)
}

// applyLut blends in the nearest grid sample. Lookups that land outside a
// short LUT leave the colour unchanged.
func (p *pipeline) applyLut(r, g, b float64) (float64, float64, float64) {
	last := float64(p.lutSize - 1)
	ri := roundHalfUp(clamp(r, 0, 255) / 255 * last)
	gi := roundHalfUp(clamp(g, 0, 255) / 255 * last)
	bi := roundHalfUp(clamp(b, 0, 255) / 255 * last)
	idx := (ri + gi*p.lutSize + bi*p.lutSize*p.lutSize) * 3

	lr, lg, lb, ok := p.lut.Sample(idx)
	if !ok {
		return r, g, b
	}

	t := p.lutT
	r = r*(1-t) + float64(lr)*255*t
	g = g*(1-t) + float64(lg)*255*t
	b = b*(1-t) + float64(lb)*255*t
	return r, g, b
}

// applySkin shifts hue, saturation and lightness of colours close to skin
// tones, weighted by how close they are.
// A zero detection range matches nothing.
func (p *pipeline) applySkin(r, g, b float64) (float64, float64, float64) {
	if p.skinRange == 0 {
		return r, g, b
	}
	h, s, l := colorspace.FromRGB(r, g, b)

	w := max(0, 1-colorspace.HueDistance(h, skinReferenceHue)/p.skinRange)
	w *= max(0, 1-math.Abs(s-skinSaturationCentre)/skinSaturationSpread)
	w *= max(0, 1-math.Abs(l-skinLightnessCentre)/skinLightnessSpread)

	// written so that a NaN weight also skips
	if !(w > skinMinWeight) {
		return r, g, b
	}

	h = h*(1-w) + p.skinTarget*w
	s *= 1 + p.skinSaturation*w
	l *= 1 + p.skinLuminance*w

	return colorspace.ToRGB(colorspace.WrapHue(h), clamp(s, 0, 1), clamp(l, 0, 1))
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// toByte clamps to the byte range and rounds half to even; NaN becomes 0.
func toByte(x float64) uint8 {
	if math.IsNaN(x) {
		return 0
	}
	return uint8(math.RoundToEven(clamp(x, 0, 255)))
}

func clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}
