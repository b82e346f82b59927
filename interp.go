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

import "math"

// fetchFunc returns the LUT entry at integer grid coordinates.
type fetchFunc func(r, g, b int) [3]float64

// trilinearInterp3D performs trilinear interpolation in a 3D LUT with
// gridSize points per dimension.  The input colour is clamped to [0, 1].
//
// The eight surrounding grid points are blended along the blue axis first,
// then along green, and finally along red.
func trilinearInterp3D(gridSize int, fetch fetchFunc, c [3]float64) [3]float64 {
	scale := float64(gridSize - 1)

	var c0, c1 [3]int
	var f [3]float64
	for i := range 3 {
		pos := clamp(c[i], 0, 1) * scale
		lo := math.Floor(pos)
		c0[i] = int(lo)
		c1[i] = min(c0[i]+1, gridSize-1)
		f[i] = pos - lo
	}

	v000 := fetch(c0[0], c0[1], c0[2])
	v001 := fetch(c0[0], c0[1], c1[2])
	v010 := fetch(c0[0], c1[1], c0[2])
	v011 := fetch(c0[0], c1[1], c1[2])
	v100 := fetch(c1[0], c0[1], c0[2])
	v101 := fetch(c1[0], c0[1], c1[2])
	v110 := fetch(c1[0], c1[1], c0[2])
	v111 := fetch(c1[0], c1[1], c1[2])

	// blue
	v00 := mix3(v000, v001, f[2])
	v01 := mix3(v010, v011, f[2])
	v10 := mix3(v100, v101, f[2])
	v11 := mix3(v110, v111, f[2])

	// green
	v0 := mix3(v00, v01, f[1])
	v1 := mix3(v10, v11, f[1])

	// red
	return mix3(v0, v1, f[0])
}

// mix3 linearly interpolates between a and b, as in GLSL mix().
func mix3(a, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}
