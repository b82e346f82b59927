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

// Package filmgrade implements a film-style colour grading engine.
//
// A grade combines parametric adjustments (exposure, contrast, saturation,
// temperature, grain and vignette), four tone curves and an optional 3D
// lookup table.  The grade is compiled into a [Transform] which maps
// colours through the fixed pipeline
//
//	exposure → contrast → temperature → saturation → LUT → curves → grain → vignette
//
// # Grading Images
//
// Film presets from the built-in catalog are merged with the current
// corrections using [Combine]:
//
//	p, ok := filmgrade.LookupPreset("Kodak Portra 400")
//	g := filmgrade.Combine(filmgrade.DefaultAdjustments(), p, 0.8)
//	t := filmgrade.NewTransform(g, nil)
//
// A [Backend] renders a whole image:
//
//	b := filmgrade.NewCPUBackend(0)
//	err := b.Render(dst, src, t, filmgrade.NewSeed())
//
// [Analyze] estimates corrections for exposure, contrast, saturation and
// white balance from image statistics.
//
// # LUT Files
//
// Use [ParseCube] or [LoadCube] to read .cube files, and [ExportCube] to
// sample a transform into a new .cube file:
//
//	text, err := filmgrade.ExportCube(17, "My_Look", t.ColorFunc(), filmgrade.CubeMetadata{Preset: p})
package filmgrade

// Adjustments holds the parametric part of a grade.
//
// Exposure, contrast, saturation and temperature are nominally in [-1, 1],
// grain, vignette and LUTIntensity in [0, 1].  Values outside these ranges
// are not errors; the rendered colours are clamped.
type Adjustments struct {
	Exposure    float64 `yaml:"exposure" json:"exposure"`
	Contrast    float64 `yaml:"contrast" json:"contrast"`
	Saturation  float64 `yaml:"saturation" json:"saturation"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	Grain       float64 `yaml:"grain" json:"grain"`
	Vignette    float64 `yaml:"vignette" json:"vignette"`

	// LUTIntensity is the mix factor between the colour before and after
	// the LUT stage.
	LUTIntensity float64 `yaml:"lut_intensity" json:"lutIntensity"`
}

// DefaultAdjustments returns the state of a freshly loaded image:
// everything zero, and full LUT intensity.
func DefaultAdjustments() Adjustments {
	return Adjustments{LUTIntensity: 1}
}

// Grade is an immutable snapshot of everything which determines the
// rendered colours, apart from the LUT.
type Grade struct {
	Adjustments
	Curves Curves

	// Preset is the film preset the grade was derived from, or nil.
	Preset *Preset
}

// WithAdjustments returns a copy of the grade with the adjustments
// replaced.  If no preset is active, the curves are reset to the identity.
func (g Grade) WithAdjustments(a Adjustments) Grade {
	g.Adjustments = a
	if g.Preset == nil {
		g.Curves = Curves{}
	}
	return g
}
