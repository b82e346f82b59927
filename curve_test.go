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

	"github.com/google/go-cmp/cmp"
)

func TestBuildCurveTableIdentity(t *testing.T) {
	specs := []CurveSpec{
		nil,
		{},
		{{128, 40}},
		{{0, 0}, {255, 255}},
		LinearCurve(),
	}
	for _, spec := range specs {
		table := BuildCurveTable(spec)
		for v := range 256 {
			if int(table[v]) != v {
				t.Errorf("%v: table[%d] = %d, want %d", spec, v, table[v], v)
				break
			}
		}
	}
}

func TestBuildCurveTableIncreasing(t *testing.T) {
	table := BuildCurveTable(CurveSpec{{0, 0}, {255, 255}})
	for v := 1; v < 256; v++ {
		if table[v] <= table[v-1] {
			t.Fatalf("table[%d] = %d, table[%d] = %d", v-1, table[v-1], v, table[v])
		}
	}
}

func TestBuildCurveTable(t *testing.T) {
	tests := []struct {
		spec CurveSpec
		in   int
		want uint8
	}{
		{CurveSpec{{0, 10}, {120, 100}, {255, 255}}, 0, 10},
		{CurveSpec{{0, 10}, {120, 100}, {255, 255}}, 60, 55},
		{CurveSpec{{0, 10}, {120, 100}, {255, 255}}, 120, 100},
		{CurveSpec{{0, 10}, {120, 100}, {255, 255}}, 255, 255},
		{CurveSpec{{0, 0}, {255, 128}}, 255, 128},
		{CurveSpec{{0, 0}, {255, 128}}, 1, 1}, // 0.50196 rounds up

		// past the last point the output stays constant
		{CurveSpec{{0, 0}, {100, 200}}, 150, 200},
		{CurveSpec{{0, 0}, {100, 200}}, 255, 200},

		// before the first point the first segment is extrapolated
		{CurveSpec{{50, 50}, {150, 250}}, 0, 0},
		{CurveSpec{{50, 50}, {150, 250}}, 40, 30},

		// a zero-width segment takes the later point's output
		{CurveSpec{{50, 10}, {50, 90}, {255, 255}}, 20, 90},
		{CurveSpec{{50, 10}, {50, 90}, {255, 255}}, 50, 90},

		// repeated inputs jump at the repeated value
		{CurveSpec{{0, 0}, {100, 20}, {100, 200}, {255, 255}}, 100, 20},
		{CurveSpec{{0, 0}, {100, 20}, {100, 200}, {255, 255}}, 101, 200},

		// results are clamped
		{CurveSpec{{0, -40}, {255, 400}}, 0, 0},
		{CurveSpec{{0, -40}, {255, 400}}, 255, 255},
	}

	for _, tt := range tests {
		table := BuildCurveTable(tt.spec)
		if got := table[tt.in]; got != tt.want {
			t.Errorf("%v: table[%d] = %d, want %d", tt.spec, tt.in, got, tt.want)
		}
	}
}

func TestCurveTableLookup(t *testing.T) {
	table := BuildCurveTable(CurveSpec{{0, 0}, {255, 128}})
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 128.0 / 255},
		{2, 128.0 / 255},
		{-1, 0},
	}
	for _, tt := range tests {
		got := table.Lookup(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Lookup(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}

	id := BuildCurveTable(nil)
	for _, x := range []float64{0, 0.1, 0.25, 0.5, 0.7731, 1} {
		got := id.Lookup(x)
		if math.Abs(got-x) > 1e-12 {
			t.Errorf("identity: Lookup(%g) = %g", x, got)
		}
	}
}

func TestBlendCurve(t *testing.T) {
	c := CurveSpec{{0, 25}, {120, 115}, {255, 230}}

	if d := cmp.Diff(LinearCurve(), BlendCurve(c, 0)); d != "" {
		t.Errorf("intensity 0 (-want +got):\n%s", d)
	}
	full := BlendCurve(c, 1)
	if d := cmp.Diff(c, full); d != "" {
		t.Errorf("intensity 1 (-want +got):\n%s", d)
	}
	full[0][1] = 99
	if c[0][1] != 25 {
		t.Errorf("BlendCurve(c, 1) shares storage with c")
	}

	want := CurveSpec{{0, 13}, {120, 118}, {255, 243}}
	if d := cmp.Diff(want, BlendCurve(c, 0.5)); d != "" {
		t.Errorf("intensity 0.5 (-want +got):\n%s", d)
	}

	if got := BlendCurve(nil, 0.5); got != nil {
		t.Errorf("BlendCurve(nil) = %v, want nil", got)
	}
}

func TestClampNaN(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{math.NaN(), 0},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
		{-0.5, 0},
		{0.25, 0.25},
		{2, 1},
	}
	for _, tt := range tests {
		if got := clamp(tt.in, 0, 1); got != tt.want {
			t.Errorf("clamp(%g, 0, 1) = %g, want %g", tt.in, got, tt.want)
		}
	}

	table := BuildCurveTable(CurveSpec{{0, 30}, {255, 200}})
	if got := table.Lookup(math.NaN()); got != float64(table[0])/255 {
		t.Errorf("Lookup(NaN) = %g, want %g", got, float64(table[0])/255)
	}
}

func TestCurveIsIdentity(t *testing.T) {
	tests := []struct {
		name    string
		curve   CurveSpec
		isIdent bool
	}{
		{"nil", nil, true},
		{"single point", CurveSpec{{10, 20}}, true},
		{"linear", LinearCurve(), true},
		{"lifted blacks", CurveSpec{{0, 10}, {255, 255}}, false},
	}
	for _, tt := range tests {
		got := tt.curve.IsIdentity()
		if got != tt.isIdent {
			t.Errorf("%s: IsIdentity() = %v, want %v", tt.name, got, tt.isIdent)
		}
	}
}

func TestCurvesBlend(t *testing.T) {
	c := Curves{
		RGB: CurveSpec{{0, 10}, {255, 250}},
		B:   CurveSpec{{0, 40}, {255, 220}},
	}
	got := c.Blend(0)
	if !got.IsIdentity() {
		t.Errorf("Blend(0) = %v, want identity", got)
	}
	if d := cmp.Diff(c, c.Blend(1)); d != "" {
		t.Errorf("Blend(1) (-want +got):\n%s", d)
	}
}
