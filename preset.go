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

// Preset is a named film look.
type Preset struct {
	Name     string   `yaml:"name" json:"name"`
	Brand    string   `yaml:"brand,omitempty" json:"brand,omitempty"`
	Settings Settings `yaml:"settings" json:"settings"`
}

// FullName returns the brand and name of the preset, e.g. "Kodak Portra 400".
func (p *Preset) FullName() string {
	if p.Brand == "" {
		return p.Name
	}
	return p.Brand + " " + p.Name
}

// Settings are the adjustments stored in a preset.
type Settings struct {
	Exposure    float64 `yaml:"exposure" json:"exposure"`
	Contrast    float64 `yaml:"contrast" json:"contrast"`
	Saturation  float64 `yaml:"saturation" json:"saturation"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	Grain       float64 `yaml:"grain" json:"grain"`
	Vignette    float64 `yaml:"vignette" json:"vignette"`

	// Curves is nil if the preset does not change the tone curves.
	Curves *Curves `yaml:"curves,omitempty" json:"curves,omitempty"`
}

// Adjustments returns all six preset values as an adjustment set.
func (s *Settings) Adjustments(lutIntensity float64) Adjustments {
	return Adjustments{
		Exposure:     s.Exposure,
		Contrast:     s.Contrast,
		Saturation:   s.Saturation,
		Temperature:  s.Temperature,
		Grain:        s.Grain,
		Vignette:     s.Vignette,
		LUTIntensity: lutIntensity,
	}
}

// Grade applies the preset as it is, replacing all current adjustments
// except the LUT intensity.  Curve channels the preset does not set are
// the identity.
func (p *Preset) Grade(lutIntensity float64) Grade {
	g := Grade{
		Adjustments: p.Settings.Adjustments(lutIntensity),
		Preset:      p,
	}
	if p.Settings.Curves != nil {
		g.Curves = *p.Settings.Curves
	}
	return g
}

// Combine merges a preset into the current adjustments.
//
// Exposure, contrast, saturation and the LUT intensity are taken from base.
// The preset's temperature, grain and vignette are scaled by intensity, and
// its curves are blended towards the identity using [BlendCurve].  A preset
// without curves resets all four curves to the linear curve.  The intensity
// is clamped to [0, 1].
//
// If p is nil, the result is base with identity curves.
func Combine(base Adjustments, p *Preset, intensity float64) Grade {
	if p == nil {
		return Grade{Adjustments: base}
	}
	i := clamp(intensity, 0, 1)
	s := &p.Settings

	adj := base
	adj.Temperature = s.Temperature * i
	adj.Grain = s.Grain * i
	adj.Vignette = s.Vignette * i

	var curves Curves
	if s.Curves == nil {
		curves = LinearCurves()
	} else {
		curves = s.Curves.Blend(i)
	}

	return Grade{
		Adjustments: adj,
		Curves:      curves,
		Preset:      p,
	}
}

// ApplyPreset merges a preset into the current adjustments at full
// intensity.
func ApplyPreset(base Adjustments, p *Preset) Grade {
	return Combine(base, p, 1)
}

// ApplyCustomPreset applies a user supplied preset.  The preset's own
// exposure, contrast and saturation replace the current corrections, only
// the LUT intensity of current is kept.
func ApplyCustomPreset(current Adjustments, p *Preset) Grade {
	base := Adjustments{
		Exposure:     p.Settings.Exposure,
		Contrast:     p.Settings.Contrast,
		Saturation:   p.Settings.Saturation,
		LUTIntensity: current.LUTIntensity,
	}
	return Combine(base, p, 1)
}
