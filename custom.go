// seehuhn.de/go/filmgrade - film-style colour grading
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package filmgrade

import (
	"encoding/json"
	"fmt"
)

// DefaultCustomPresetName is used for custom presets without a name.
const DefaultCustomPresetName = "Custom Preset"

// DecodeCustomPreset decodes and validates a user supplied preset in JSON
// form:
//
//	{
//	  "name": "Teal Night",
//	  "settings": {
//	    "exposure": 0.1, "contrast": 0.2, "saturation": -0.1,
//	    "temperature": -0.3, "grain": 0.2, "vignette": 0.3,
//	    "curves": {"rgb": [[0, 10], [128, 120], [255, 245]]}
//	  }
//	}
//
// All fields except settings are optional.  Exposure, contrast, saturation
// and temperature must lie in [-1, 1], grain and vignette in [0, 1].  Curve
// points may use the 0-255 scale or the normalised 0-1 scale; a curve whose
// coordinates are all at most 1 is scaled to 0-255.
//
// Any problem is reported as a [*ValidationError].
func DecodeCustomPreset(data []byte) (*Preset, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Reason: "invalid JSON format: " + err.Error()}
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: "must be a JSON object"}
	}

	p := &Preset{Name: DefaultCustomPresetName}
	if v, ok := obj["name"]; ok && v != nil {
		name, ok := v.(string)
		if !ok {
			return nil, &ValidationError{Field: "name", Reason: "must be a string"}
		}
		if name != "" {
			p.Name = name
		}
	}
	if v, ok := obj["brand"]; ok && v != nil {
		brand, ok := v.(string)
		if !ok {
			return nil, &ValidationError{Field: "brand", Reason: "must be a string"}
		}
		p.Brand = brand
	}

	settings, ok := obj["settings"].(map[string]any)
	if !ok {
		return nil, &ValidationError{Field: "settings", Reason: "must be an object"}
	}
	if err := decodeSettings(&p.Settings, settings); err != nil {
		return nil, err
	}
	return p, nil
}

type numericField struct {
	name   string
	min    float64
	max    float64
	target func(s *Settings) *float64
}

var numericFields = []numericField{
	{"exposure", -1, 1, func(s *Settings) *float64 { return &s.Exposure }},
	{"contrast", -1, 1, func(s *Settings) *float64 { return &s.Contrast }},
	{"saturation", -1, 1, func(s *Settings) *float64 { return &s.Saturation }},
	{"temperature", -1, 1, func(s *Settings) *float64 { return &s.Temperature }},
	{"grain", 0, 1, func(s *Settings) *float64 { return &s.Grain }},
	{"vignette", 0, 1, func(s *Settings) *float64 { return &s.Vignette }},
}

func decodeSettings(s *Settings, obj map[string]any) error {
	for _, f := range numericFields {
		v, ok := obj[f.name]
		if !ok || v == nil {
			continue
		}
		x, ok := v.(float64)
		if !ok || x < f.min || x > f.max {
			return &ValidationError{
				Field:  f.name,
				Reason: fmt.Sprintf("must be a number between %g and %g", f.min, f.max),
			}
		}
		*f.target(s) = x
	}

	v, ok := obj["curves"]
	if !ok || v == nil {
		return nil
	}
	curvesObj, ok := v.(map[string]any)
	if !ok {
		return &ValidationError{Field: "curves", Reason: "must be an object"}
	}
	curves := &Curves{}
	for _, ch := range Channels {
		v, ok := curvesObj[ch.String()]
		if !ok || v == nil {
			continue
		}
		spec, err := decodeCurve("curves."+ch.String(), v)
		if err != nil {
			return err
		}
		curves.Set(ch, spec)
	}
	s.Curves = curves
	return nil
}

func decodeCurve(field string, v any) (CurveSpec, error) {
	points, ok := v.([]any)
	if !ok {
		return nil, &ValidationError{Field: field, Reason: "must be an array"}
	}

	spec := make(CurveSpec, 0, len(points))
	for i, pt := range points {
		pointField := fmt.Sprintf("%s[%d]", field, i)
		pair, ok := pt.([]any)
		if !ok || len(pair) != 2 {
			return nil, &ValidationError{
				Field:  pointField,
				Reason: "must be an array of 2 numbers [input, output]",
			}
		}
		in, ok1 := pair[0].(float64)
		out, ok2 := pair[1].(float64)
		if !ok1 || !ok2 {
			return nil, &ValidationError{Field: pointField, Reason: "must contain numeric values"}
		}
		if in > 255 || out > 255 {
			return nil, &ValidationError{
				Field:  pointField,
				Reason: "values must be between 0-1 (normalized) or 0-255 (standard)",
			}
		}
		if in < 0 || out < 0 {
			return nil, &ValidationError{Field: pointField, Reason: "values cannot be negative"}
		}
		spec = append(spec, CurvePoint{in, out})
	}

	if spec.isNormalised() {
		spec = spec.scaled(255)
	}
	return spec, nil
}
