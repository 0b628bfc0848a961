package colorspace

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var TestHSLIsExpected = []struct {
	R, G, B float64
	H, S, L float64
}{
	{0, 0, 0, 0, 0, 0},
	{255, 255, 255, 0, 0, 1},
	{255, 0, 0, 0, 1, 0.5},
	{0, 255, 0, 1.0 / 3, 1, 0.5},
	{0, 0, 255, 2.0 / 3, 1, 0.5},
	{255, 255, 0, 1.0 / 6, 1, 0.5},
	{255, 0, 255, 5.0 / 6, 1, 0.5},
	{200, 150, 100, 1.0 / 12, 100.0 / 210, 300.0 / 510},
}

func TestFromRGB(t *testing.T) {
	for _, tc := range TestHSLIsExpected {
		h, s, l := FromRGB(tc.R, tc.G, tc.B)
		assert.InDelta(t, tc.H, h, 1e-9, "hue of %v %v %v", tc.R, tc.G, tc.B)
		assert.InDelta(t, tc.S, s, 1e-9, "saturation of %v %v %v", tc.R, tc.G, tc.B)
		assert.InDelta(t, tc.L, l, 1e-9, "lightness of %v %v %v", tc.R, tc.G, tc.B)
	}
}

func TestToRGB(t *testing.T) {
	for _, tc := range TestHSLIsExpected {
		r, g, b := ToRGB(tc.H, tc.S, tc.L)
		assert.InDelta(t, tc.R, r, 1e-9)
		assert.InDelta(t, tc.G, g, 1e-9)
		assert.InDelta(t, tc.B, b, 1e-9)
	}
}

func TestRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 51 {
				h, s, l := FromRGB(float64(r), float64(g), float64(b))
				rr, gg, bb := ToRGB(h, s, l)
				assert.Equal(t, float64(r), math.Round(rr))
				assert.Equal(t, float64(g), math.Round(gg))
				assert.Equal(t, float64(b), math.Round(bb))
			}
		}
	}
}

func TestHSLModel(t *testing.T) {
	c := HSLModel.Convert(color.NRGBA{R: 200, G: 150, B: 100, A: 255}).(HSL)
	assert.InDelta(t, 1.0/12, c.H, 1e-9)
	assert.Equal(t, uint16(0xffff), c.Alpha)

	back := color.NRGBAModel.Convert(c).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 200, G: 150, B: 100, A: 255}, back)

	assert.Equal(t, c, HSLModel.Convert(c))
}

func TestHueDistance(t *testing.T) {
	assert.InDelta(t, 0.02, HueDistance(0.06, 0.08), 1e-12)
	assert.InDelta(t, 0.1, HueDistance(0.95, 0.05), 1e-12)
	assert.InDelta(t, 0.5, HueDistance(0, 0.5), 1e-12)
	assert.Zero(t, HueDistance(0.3, 0.3))
}

func TestWrapHue(t *testing.T) {
	assert.InDelta(t, 0.25, WrapHue(1.25), 1e-12)
	assert.InDelta(t, 0.75, WrapHue(-0.25), 1e-12)
	assert.Zero(t, WrapHue(0))
	assert.InDelta(t, 0.5, WrapHue(0.5), 1e-12)
}
