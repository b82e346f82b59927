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
	"sync/atomic"
	"time"
)

// Transform maps colours through a compiled grade.
//
// Create a Transform using [NewTransform].  The curve tables are built
// once, so a Transform should be reused as long as the grade does not
// change.  A Transform is immutable and safe for concurrent use.
type Transform struct {
	adj    Adjustments
	curves [4]*CurveTable // RGB, R, G, B
	lut    *LutTexture
}

// NewTransform compiles a grade.  If lut is non-nil, the LUT stage is
// active and mixes the LUT result in with g.LUTIntensity.
func NewTransform(g Grade, lut *LutTexture) *Transform {
	t := &Transform{
		adj:    g.Adjustments,
		curves: g.Curves.tables(),
		lut:    lut,
	}

	ev := Logger().Debug().Bool("lut", lut != nil)
	if g.Preset != nil {
		ev = ev.Str("preset", g.Preset.FullName())
	}
	ev.Msg("transform compiled")
	return t
}

// Adjustments returns the adjustments the transform was compiled from.
func (t *Transform) Adjustments() Adjustments {
	return t.adj
}

// Apply maps a single colour through the pipeline, as seen at the centre
// of the frame.  Grain is not applied and the vignette has no effect at the
// centre, so the result is deterministic.
func (t *Transform) Apply(c [3]float64) [3]float64 {
	return t.apply(c, 0.5, 0.5, 0, false)
}

// ApplyAt maps a colour at the normalised frame position (u, v) through the
// pipeline, including grain and vignette.  The seed selects the grain
// pattern; it should be the same for all pixels of one render, see
// [NewSeed].
func (t *Transform) ApplyAt(c [3]float64, u, v, seed float64) [3]float64 {
	return t.apply(c, u, v, seed, true)
}

// ColorFunc returns [Transform.Apply] in the form used by [ExportCube].
func (t *Transform) ColorFunc() ColorFunc {
	return func(c [3]float64) ([3]float64, error) {
		return t.Apply(c), nil
	}
}

func (t *Transform) apply(c [3]float64, u, v, seed float64, withGrain bool) [3]float64 {
	adj := &t.adj

	// exposure
	gain := math.Exp2(adj.Exposure)
	for i := range c {
		c[i] *= gain
	}

	// contrast
	k := 1 + adj.Contrast
	for i := range c {
		c[i] = (c[i]-0.5)*k + 0.5
	}

	// temperature
	if adj.Temperature > 0 {
		c[0] += adj.Temperature * 0.12
		c[1] += adj.Temperature * 0.06
	} else {
		c[2] += math.Abs(adj.Temperature) * 0.12
	}

	// saturation
	l := 0.299*c[0] + 0.587*c[1] + 0.114*c[2]
	s := 1 + adj.Saturation
	for i := range c {
		c[i] = l + (c[i]-l)*s
	}

	if t.lut != nil {
		res := t.lut.Sample(c)
		// An all-zero sample indicates an unpopulated texture.
		if math.Sqrt(res[0]*res[0]+res[1]*res[1]+res[2]*res[2]) > 0.001 {
			c = mix3(c, res, adj.LUTIntensity)
		}
	}

	// curves
	rgb := t.curves[0]
	for i := range c {
		c[i] = t.curves[i+1].Lookup(rgb.Lookup(c[i]))
	}

	if withGrain && adj.Grain > 0 {
		n := (grainNoise(u*seed, v*seed) - 0.5) * adj.Grain * 0.1
		for i := range c {
			c[i] += n
		}
	}

	if adj.Vignette > 0 {
		dist := math.Hypot(u-0.5, v-0.5)
		f := 1 - smoothstep(0.5, 0.75, dist)*adj.Vignette
		for i := range c {
			c[i] += (c[i]*f - c[i]) * adj.Vignette
		}
	}

	for i := range c {
		c[i] = clamp(c[i], 0, 1)
	}
	return c
}

// grainNoise is the usual shader hash, with values in [0, 1).
func grainNoise(x, y float64) float64 {
	h := math.Sin(x*12.9898+y*78.233) * 43758.5453
	return h - math.Floor(h)
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

var seedCounter atomic.Uint64

// NewSeed returns a grain seed in [0, 1).  Successive calls return
// different values.
func NewSeed() float64 {
	x := seedCounter.Add(1) + uint64(time.Now().UnixNano())

	// splitmix64 finaliser
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return float64(x>>11) / (1 << 53)
}
