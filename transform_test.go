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
	"math"
	"testing"
)

func closeTo(a, b [3]float64, eps float64) bool {
	for i := range 3 {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

var testColors = [][3]float64{
	{0, 0, 0},
	{1, 1, 1},
	{0.5, 0.5, 0.5},
	{0.2, 0.4, 0.6},
	{0.9, 0.1, 0.3},
	{0.0123, 0.987, 0.5},
}

func TestPipelineNeutrality(t *testing.T) {
	for _, lutIntensity := range []float64{0, 0.5, 1} {
		g := Grade{Adjustments: Adjustments{LUTIntensity: lutIntensity}}
		tr := NewTransform(g, nil)
		for _, c := range testColors {
			if got := tr.Apply(c); !closeTo(got, c, 1e-9) {
				t.Errorf("Apply(%v) = %v", c, got)
			}
			if got := tr.ApplyAt(c, 0.1, 0.9, 0.37); !closeTo(got, c, 1e-9) {
				t.Errorf("ApplyAt(%v) = %v", c, got)
			}
		}
	}
}

func TestPipelineStages(t *testing.T) {
	tests := []struct {
		name string
		adj  Adjustments
		in   [3]float64
		want [3]float64
	}{
		{"exposure +1", Adjustments{Exposure: 1}, [3]float64{0.25, 0.1, 0.4}, [3]float64{0.5, 0.2, 0.8}},
		{"exposure -1", Adjustments{Exposure: -1}, [3]float64{0.5, 0.2, 0.8}, [3]float64{0.25, 0.1, 0.4}},
		{"contrast", Adjustments{Contrast: 0.5}, [3]float64{0.3, 0.5, 0.7}, [3]float64{0.2, 0.5, 0.8}},
		{"warm", Adjustments{Temperature: 0.5}, [3]float64{0.5, 0.5, 0.5}, [3]float64{0.56, 0.53, 0.5}},
		{"cool", Adjustments{Temperature: -0.5}, [3]float64{0.5, 0.5, 0.5}, [3]float64{0.5, 0.5, 0.56}},
		{"desaturate", Adjustments{Saturation: -1}, [3]float64{1, 0, 0}, [3]float64{0.299, 0.299, 0.299}},
		{"clamp", Adjustments{Exposure: 2}, [3]float64{0.5, 0.1, 0}, [3]float64{1, 0.4, 0}},

		// exposure is applied before contrast
		{"order", Adjustments{Exposure: 1, Contrast: 1}, [3]float64{0.3, 0.3, 0.3}, [3]float64{0.7, 0.7, 0.7}},
	}
	for _, tt := range tests {
		tr := NewTransform(Grade{Adjustments: tt.adj}, nil)
		got := tr.Apply(tt.in)
		if !closeTo(got, tt.want, 1e-9) {
			t.Errorf("%s: Apply(%v) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestPipelineCurves(t *testing.T) {
	g := Grade{
		Curves: Curves{
			RGB: CurveSpec{{0, 0}, {255, 128}},
			R:   CurveSpec{{0, 255}, {255, 0}},
		},
	}
	tr := NewTransform(g, nil)
	got := tr.Apply([3]float64{1, 1, 0})

	// RGB curve first (1 → 128/255), then the inverting red curve
	want := [3]float64{1 - 128.0/255, 128.0 / 255, 0}
	if !closeTo(got, want, 1e-9) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

// constLut maps every colour to v.
func constLut(size int, v [3]float64) *Lut3D {
	lut := &Lut3D{Size: size}
	for range size * size * size {
		lut.Data = append(lut.Data, v)
	}
	return lut
}

func TestPipelineLut(t *testing.T) {
	tex := constLut(2, [3]float64{1, 0, 0}).Texture()
	in := [3]float64{0.2, 0.4, 0.6}

	tests := []struct {
		intensity float64
		want      [3]float64
	}{
		{0, in},
		{0.5, [3]float64{0.6, 0.2, 0.3}},
		{1, [3]float64{1, 0, 0}},
	}
	for _, tt := range tests {
		g := Grade{Adjustments: Adjustments{LUTIntensity: tt.intensity}}
		got := NewTransform(g, tex).Apply(in)
		if !closeTo(got, tt.want, 1e-9) {
			t.Errorf("intensity %g: Apply = %v, want %v", tt.intensity, got, tt.want)
		}
	}
}

func TestPipelineLutNearZeroFallback(t *testing.T) {
	tex := constLut(2, [3]float64{0, 0, 0}).Texture()
	g := Grade{Adjustments: Adjustments{LUTIntensity: 1}}
	tr := NewTransform(g, tex)

	in := [3]float64{0.2, 0.4, 0.6}
	if got := tr.Apply(in); !closeTo(got, in, 1e-9) {
		t.Errorf("Apply = %v, want the input unchanged", got)
	}
}

func TestPipelineNonFinite(t *testing.T) {
	lut := identityLut(5).Texture()
	curves := Curves{RGB: CurveSpec{{0, 20}, {128, 140}, {255, 240}}}
	tests := []struct {
		name string
		adj  Adjustments
		lut  *LutTexture
	}{
		{"huge exposure", Adjustments{Exposure: 1100}, nil},
		{"huge exposure with LUT", Adjustments{Exposure: 1100, LUTIntensity: 1}, lut},
		{"NaN exposure", Adjustments{Exposure: math.NaN()}, nil},
		{"NaN exposure with LUT", Adjustments{Exposure: math.NaN(), LUTIntensity: 1}, lut},
		{"NaN contrast", Adjustments{Contrast: math.NaN(), Vignette: 0.5}, nil},
		{"infinite saturation", Adjustments{Saturation: math.Inf(1), Grain: 1}, lut},
	}
	for _, tt := range tests {
		tr := NewTransform(Grade{Adjustments: tt.adj, Curves: curves}, tt.lut)
		for _, c := range testColors {
			for _, got := range [][3]float64{tr.Apply(c), tr.ApplyAt(c, 0.1, 0.9, 0.37)} {
				for i, v := range got {
					if !(v >= 0 && v <= 1) {
						t.Errorf("%s: channel %d of %v = %g, want value in [0, 1]",
							tt.name, i, c, v)
					}
				}
			}
		}
	}
}

func TestPipelineGrain(t *testing.T) {
	g := Grade{Adjustments: Adjustments{Grain: 1}}
	tr := NewTransform(g, nil)
	in := [3]float64{0.5, 0.5, 0.5}

	if got := tr.Apply(in); got != in {
		t.Errorf("Apply = %v, grain must not be applied", got)
	}

	a := tr.ApplyAt(in, 0.3, 0.7, 0.42)
	b := tr.ApplyAt(in, 0.3, 0.7, 0.42)
	if a != b {
		t.Errorf("same seed gives %v and %v", a, b)
	}
	// the noise term is the same for all channels
	if a[0] != a[1] || a[1] != a[2] {
		t.Errorf("ApplyAt = %v, want equal channels", a)
	}
	if math.Abs(a[0]-0.5) > 0.05+1e-12 {
		t.Errorf("ApplyAt = %v, noise exceeds grain·0.1/2", a)
	}

	differs := false
	for _, seed := range []float64{0.1, 0.2, 0.3, 0.4} {
		if tr.ApplyAt(in, 0.3, 0.7, seed) != a {
			differs = true
		}
	}
	if !differs {
		t.Error("grain does not depend on the seed")
	}
}

func TestPipelineVignette(t *testing.T) {
	g := Grade{Adjustments: Adjustments{Vignette: 1}}
	tr := NewTransform(g, nil)
	in := [3]float64{0.8, 0.6, 0.4}

	if got := tr.ApplyAt(in, 0.5, 0.5, 0); !closeTo(got, in, 1e-9) {
		t.Errorf("centre: %v, want %v", got, in)
	}
	// inside radius 0.5 nothing changes
	if got := tr.ApplyAt(in, 0.5, 0.05, 0); !closeTo(got, in, 1e-9) {
		t.Errorf("edge: %v, want %v", got, in)
	}
	// the corners are at distance 0.707, inside the falloff band
	got := tr.ApplyAt(in, 0, 0, 0)
	s := smoothstep(0.5, 0.75, math.Sqrt(0.5))
	want := [3]float64{0.8 * (1 - s), 0.6 * (1 - s), 0.4 * (1 - s)}
	if !closeTo(got, want, 1e-9) {
		t.Errorf("corner: %v, want %v", got, want)
	}

	half := NewTransform(Grade{Adjustments: Adjustments{Vignette: 0.5}}, nil)
	got = half.ApplyAt(in, 0, 0, 0)
	f := 1 - s*0.5
	want = [3]float64{0.8 + (0.8*f-0.8)*0.5, 0.6 + (0.6*f-0.6)*0.5, 0.4 + (0.4*f-0.4)*0.5}
	if !closeTo(got, want, 1e-9) {
		t.Errorf("corner, half strength: %v, want %v", got, want)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct{ x, want float64 }{
		{0, 0},
		{0.5, 0},
		{0.625, 0.5},
		{0.75, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := smoothstep(0.5, 0.75, tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("smoothstep(%g) = %g, want %g", tt.x, got, tt.want)
		}
	}
}

func TestNewSeed(t *testing.T) {
	seen := make(map[float64]bool)
	for range 100 {
		s := NewSeed()
		if s < 0 || s >= 1 {
			t.Fatalf("NewSeed() = %g, want a value in [0, 1)", s)
		}
		if seen[s] {
			t.Fatalf("NewSeed() returned %g twice", s)
		}
		seen[s] = true
	}
}
