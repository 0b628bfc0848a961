package grade

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Patch is a partial Settings record. Nil fields are left alone by Merge.
// It is what the editing front end and the assistant hand over when only
// some adjustments change.
type Patch struct {
	Exposure    *float64 `json:"exposure,omitempty" yaml:"exposure,omitempty"`
	Contrast    *float64 `json:"contrast,omitempty" yaml:"contrast,omitempty"`
	Highlights  *float64 `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Shadows     *float64 `json:"shadows,omitempty" yaml:"shadows,omitempty"`
	Saturation  *float64 `json:"saturation,omitempty" yaml:"saturation,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Tint        *float64 `json:"tint,omitempty" yaml:"tint,omitempty"`

	LutID        *string  `json:"lutId,omitempty" yaml:"lutId,omitempty"`
	LutIntensity *float64 `json:"lutIntensity,omitempty" yaml:"lutIntensity,omitempty"`

	SkinHue            *float64 `json:"skinHue,omitempty" yaml:"skinHue,omitempty"`
	SkinSaturation     *float64 `json:"skinSaturation,omitempty" yaml:"skinSaturation,omitempty"`
	SkinLuminance      *float64 `json:"skinLuminance,omitempty" yaml:"skinLuminance,omitempty"`
	SkinTexture        *float64 `json:"skinTexture,omitempty" yaml:"skinTexture,omitempty"`
	SkinClarity        *float64 `json:"skinClarity,omitempty" yaml:"skinClarity,omitempty"`
	SkinDetectionRange *float64 `json:"skinDetectionRange,omitempty" yaml:"skinDetectionRange,omitempty"`

	Crop *Crop `json:"crop,omitempty" yaml:"crop,omitempty"`
	// NoCrop removes any crop; it wins over Crop.
	NoCrop bool `json:"noCrop,omitempty" yaml:"noCrop,omitempty"`
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Merge returns s with every field present in p assigned.
func (s Settings) Merge(p Patch) Settings {
	set(&s.Exposure, p.Exposure)
	set(&s.Contrast, p.Contrast)
	set(&s.Highlights, p.Highlights)
	set(&s.Shadows, p.Shadows)
	set(&s.Saturation, p.Saturation)
	set(&s.Temperature, p.Temperature)
	set(&s.Tint, p.Tint)
	set(&s.LutID, p.LutID)
	set(&s.LutIntensity, p.LutIntensity)
	set(&s.SkinHue, p.SkinHue)
	set(&s.SkinSaturation, p.SkinSaturation)
	set(&s.SkinLuminance, p.SkinLuminance)
	set(&s.SkinTexture, p.SkinTexture)
	set(&s.SkinClarity, p.SkinClarity)
	set(&s.SkinDetectionRange, p.SkinDetectionRange)

	switch {
	case p.NoCrop:
		s.Crop = nil
	case p.Crop != nil:
		c := *p.Crop
		s.Crop = &c
	}
	return s
}

// Empty reports whether the patch would change nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

var ErrNoSuggestion = errors.New("no adjustment object in suggestion")

// ParseSuggestion picks the adjustment object out of a free-text assistant
// reply, from the first '{' to the last '}', and keeps the numeric
// exposure, contrast, saturation and temperature (or temp) values.
func ParseSuggestion(text string) (Patch, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return Patch{}, ErrNoSuggestion
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return Patch{}, fmt.Errorf("could not decode suggestion: %w", err)
	}

	var p Patch
	p.Exposure = number(raw["exposure"])
	p.Contrast = number(raw["contrast"])
	p.Saturation = number(raw["saturation"])
	// a zero temperature falls through to temp
	if p.Temperature = number(raw["temperature"]); p.Temperature == nil || *p.Temperature == 0 {
		p.Temperature = number(raw["temp"])
	}
	return p, nil
}

func number(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float64:
		f = n
	default:
		return nil
	}
	return &f
}
