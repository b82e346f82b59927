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
	"slices"
)

// CurvePoint is a tone curve control point [input, output].
// Both coordinates use the 0-255 intensity scale.
type CurvePoint [2]float64

// CurveSpec is a piecewise-linear tone curve, given as control points with
// non-decreasing input values.  A CurveSpec with fewer than two points is
// the identity curve.
type CurveSpec []CurvePoint

// LinearCurve returns the three-point identity curve used when a preset
// carries no curves.
func LinearCurve() CurveSpec {
	return CurveSpec{{0, 0}, {128, 128}, {255, 255}}
}

// IsIdentity reports whether the curve maps every intensity to itself.
func (c CurveSpec) IsIdentity() bool {
	if len(c) < 2 {
		return true
	}
	for _, p := range c {
		if p[0] != p[1] {
			return false
		}
	}
	return true
}

// isNormalised reports whether all coordinates lie in [0, 1].
// Such curves come from presets which use the normalised scale.
func (c CurveSpec) isNormalised() bool {
	if len(c) == 0 {
		return false
	}
	for _, p := range c {
		if p[0] > 1 || p[1] > 1 {
			return false
		}
	}
	return true
}

// scaled returns a copy of the curve with all coordinates multiplied by s.
func (c CurveSpec) scaled(s float64) CurveSpec {
	res := make(CurveSpec, len(c))
	for i, p := range c {
		res[i] = CurvePoint{p[0] * s, p[1] * s}
	}
	return res
}

// BlendCurve moves the output of every control point towards the identity.
// For intensity 0 the linear curve is returned, for intensity 1 a copy of
// c.  Blended outputs are rounded and clamped to [0, 255].
func BlendCurve(c CurveSpec, intensity float64) CurveSpec {
	if c == nil || intensity == 1 {
		return slices.Clone(c)
	}
	if intensity == 0 {
		return LinearCurve()
	}

	res := make(CurveSpec, len(c))
	for i, p := range c {
		in, out := p[0], p[1]
		blended := in + (out-in)*intensity
		res[i] = CurvePoint{in, clamp(math.Round(blended), 0, 255)}
	}
	return res
}

// CurveTable is a dense 256-entry lookup table built from a [CurveSpec].
// Tables are immutable once built and safe for concurrent use.
type CurveTable [256]uint8

// identityTable is shared by all curves which do not change the image.
var identityTable = func() *CurveTable {
	var t CurveTable
	for i := range t {
		t[i] = uint8(i)
	}
	return &t
}()

// BuildCurveTable samples a tone curve at the 256 integer intensities.
//
// Between control points the curve is interpolated linearly.  Intensities
// beyond the last control point map to its output, intensities before the
// first control point follow the first segment.  A zero-width segment
// yields the output of its later point.  Results are rounded and clamped
// to [0, 255].
func BuildCurveTable(c CurveSpec) *CurveTable {
	if len(c) < 2 {
		return identityTable
	}

	t := new(CurveTable)
	n := len(c)
	segment := 0
	for i := range t {
		x := float64(i)
		for segment < n-1 && c[segment+1][0] < x {
			segment++
		}

		var y float64
		if segment >= n-1 {
			y = c[n-1][1]
		} else {
			x0, y0 := c[segment][0], c[segment][1]
			x1, y1 := c[segment+1][0], c[segment+1][1]
			if x1 == x0 {
				y = y1
			} else {
				y = y0 + (x-x0)/(x1-x0)*(y1-y0)
			}
		}
		t[i] = uint8(clamp(math.Round(y), 0, 255))
	}
	return t
}

// Lookup maps a channel value in [0, 1] through the table.
// The value is scaled to the 0-255 domain, interpolated linearly between
// neighbouring entries, and scaled back to [0, 1].
func (t *CurveTable) Lookup(v float64) float64 {
	x := clamp(v, 0, 1) * 255
	i := int(x)
	if i >= 255 {
		return float64(t[255]) / 255
	}
	frac := x - float64(i)
	y0 := float64(t[i])
	y1 := float64(t[i+1])
	return (y0 + frac*(y1-y0)) / 255
}

// clamp limits v to [lo, hi].  NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
