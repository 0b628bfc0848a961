// based on the max/min channel formulation of HSL:
// https://en.wikipedia.org/wiki/HSL_and_HSV#From_RGB

package colorspace

import (
	"image/color"
	"math"
)

// HSL is a colour in hue, saturation and lightness, each normalised to
// [0, 1]. Alpha is carried unchanged.
type HSL struct {
	H     float64 // hue, 0 = red, 1/3 = green, 2/3 = blue
	S     float64 // saturation
	L     float64 // lightness
	Alpha uint16
}

var HSLModel = color.ModelFunc(hslConvert)

func hslConvert(c color.Color) color.Color {
	if _, ok := c.(HSL); ok {
		return c
	}

	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	h, s, l := FromRGB(float64(nc.R)/257, float64(nc.G)/257, float64(nc.B)/257)
	return HSL{H: h, S: s, L: l, Alpha: nc.A}
}

func (hc HSL) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b := ToRGB(hc.H, hc.S, hc.L)
	return color.NRGBA64{
		R: uint16(math.Round(clamp(r, 0, 255) * 257)),
		G: uint16(math.Round(clamp(g, 0, 255) * 257)),
		B: uint16(math.Round(clamp(b, 0, 255) * 257)),
		A: hc.Alpha,
	}.RGBA()
}

// FromRGB converts channels on the 0..255 scale to HSL. Inputs are not
// clamped, so values produced by earlier adjustments outside the byte range
// convert with the same formulas. Hue is 0 for achromatic colours.
func FromRGB(r, g, b float64) (h, s, l float64) {
	r /= 255
	g /= 255
	b /= 255

	hi := max(r, g, b)
	lo := min(r, g, b)
	l = (hi + lo) / 2
	if hi == lo {
		return 0, 0, l
	}

	d := hi - lo
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

// ToRGB converts HSL back to channels on the 0..255 scale.
func ToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l * 255, l * 255, l * 255
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r = hueToChannel(p, q, h+1.0/3)
	g = hueToChannel(p, q, h)
	b = hueToChannel(p, q, h-1.0/3)
	return r * 255, g * 255, b * 255
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}

	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// HueDistance is the shortest distance between two hues on the unit circle.
func HueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	return min(d, 1-d)
}

// WrapHue folds any hue into [0, 1).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h += 1
	}
	return h
}

func clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}
