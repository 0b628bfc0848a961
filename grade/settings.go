package grade

import (
	"errors"
	"fmt"
)

// Crop is a rectangle in image-fraction coordinates, each value in [0, 1].
type Crop struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Settings is the full set of adjustments for one image. Highlights,
// Shadows, Temperature, Tint, SkinTexture and SkinClarity are stored for the
// editing front end but do not yet affect Process.
type Settings struct {
	Exposure    float64 `json:"exposure" yaml:"exposure"`       // [-100, 100]
	Contrast    float64 `json:"contrast" yaml:"contrast"`       // (-255, 255)
	Highlights  float64 `json:"highlights" yaml:"highlights"`   // reserved
	Shadows     float64 `json:"shadows" yaml:"shadows"`         // reserved
	Saturation  float64 `json:"saturation" yaml:"saturation"`   // [-100, 100]
	Temperature float64 `json:"temperature" yaml:"temperature"` // reserved
	Tint        float64 `json:"tint" yaml:"tint"`               // reserved

	LutID        string  `json:"lutId" yaml:"lutId"`               // "" selects no LUT
	LutIntensity float64 `json:"lutIntensity" yaml:"lutIntensity"` // [0, 100]

	SkinHue            float64 `json:"skinHue" yaml:"skinHue"`                       // [0, 100] over 0°..60°
	SkinSaturation     float64 `json:"skinSaturation" yaml:"skinSaturation"`         // [-100, 100]
	SkinLuminance      float64 `json:"skinLuminance" yaml:"skinLuminance"`           // [-100, 100]
	SkinTexture        float64 `json:"skinTexture" yaml:"skinTexture"`               // reserved
	SkinClarity        float64 `json:"skinClarity" yaml:"skinClarity"`               // reserved
	SkinDetectionRange float64 `json:"skinDetectionRange" yaml:"skinDetectionRange"` // [0, 100]

	Crop *Crop `json:"crop" yaml:"crop"`
}

// Default returns the settings of an untouched image.
func Default() Settings {
	return Settings{
		LutIntensity:       100,
		SkinHue:            50,
		SkinDetectionRange: 40,
	}
}

var (
	ErrContrastPole = errors.New("contrast must not be ±259")
	ErrOutOfRange   = errors.New("value out of range")
)

// cropSlack absorbs rounding in crop rectangles computed by the front end.
const cropSlack = 1e-9

type bound struct {
	name   string
	value  float64
	lo, hi float64
}

// Validate checks every field against its documented domain. Process
// never calls it; callers that take settings from outside should.
func (s Settings) Validate() error {
	if s.Contrast == 259 || s.Contrast == -259 {
		return ErrContrastPole
	}

	if s.Contrast <= -255 || s.Contrast >= 255 {
		return fmt.Errorf("contrast %v not in (-255, 255): %w", s.Contrast, ErrOutOfRange)
	}

	bounds := []bound{
		{"exposure", s.Exposure, -100, 100},
		{"saturation", s.Saturation, -100, 100},
		{"lutIntensity", s.LutIntensity, 0, 100},
		{"skinHue", s.SkinHue, 0, 100},
		{"skinSaturation", s.SkinSaturation, -100, 100},
		{"skinLuminance", s.SkinLuminance, -100, 100},
		{"skinDetectionRange", s.SkinDetectionRange, 0, 100},
	}
	for _, b := range bounds {
		if b.value < b.lo || b.value > b.hi {
			return fmt.Errorf("%s %v not in [%v, %v]: %w", b.name, b.value, b.lo, b.hi, ErrOutOfRange)
		}
	}

	if c := s.Crop; c != nil {
		if c.X < 0 || c.Y < 0 || c.Width <= 0 || c.Height <= 0 || c.X+c.Width > 1+cropSlack || c.Y+c.Height > 1+cropSlack {
			return fmt.Errorf("crop %+v outside the image: %w", *c, ErrOutOfRange)
		}
	}

	return nil
}
