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

// Lut3D is a regular N×N×N sampling of a colour transform.
//
// Data holds Size³ entries with red varying fastest and blue slowest,
// i.e. the entry for grid point (r, g, b) is Data[b*Size*Size+g*Size+r].
type Lut3D struct {
	// Name is the display name, taken from the file name.  Titles embedded
	// in the file are ignored.
	Name     string
	Filename string

	Size      int
	DomainMin [3]float64
	DomainMax [3]float64
	Data      [][3]float64
}

// At returns the grid entry for the given indices.
func (l *Lut3D) At(r, g, b int) [3]float64 {
	return l.Data[(b*l.Size+g)*l.Size+r]
}

// Sample evaluates the LUT at the colour c using trilinear interpolation
// on the full-precision grid.
func (l *Lut3D) Sample(c [3]float64) [3]float64 {
	return trilinearInterp3D(l.Size, l.At, c)
}

// Texture repacks the LUT into the tiled 8-bit layout used for rendering.
func (l *Lut3D) Texture() *LutTexture {
	n := l.Size
	tex := &LutTexture{
		Size: n,
		Pix:  make([]uint8, n*n*n*4),
	}
	for b := range n {
		for g := range n {
			for r := range n {
				v := l.At(r, g, b)
				i := tex.offset(r, g, b)
				tex.Pix[i] = toByte(v[0])
				tex.Pix[i+1] = toByte(v[1])
				tex.Pix[i+2] = toByte(v[2])
				tex.Pix[i+3] = 255
			}
		}
	}
	return tex
}

// LutTexture is a 3D LUT tiled into a 2D RGBA image of width Size² and
// height Size.  The blue slice b occupies the columns [b·Size, (b+1)·Size),
// within a slice red runs along x and green along y.
type LutTexture struct {
	Size int
	Pix  []uint8
}

// Width returns the width of the tiled image in texels.
func (t *LutTexture) Width() int { return t.Size * t.Size }

// Height returns the height of the tiled image in texels.
func (t *LutTexture) Height() int { return t.Size }

func (t *LutTexture) offset(r, g, b int) int {
	x := b*t.Size + r
	y := g
	return (y*t.Width() + x) * 4
}

func (t *LutTexture) fetch(r, g, b int) [3]float64 {
	i := t.offset(r, g, b)
	return [3]float64{
		float64(t.Pix[i]) / 255,
		float64(t.Pix[i+1]) / 255,
		float64(t.Pix[i+2]) / 255,
	}
}

// Sample evaluates the texture at the colour c.  Input components are
// clamped to [0, 1] and the eight neighbouring texels are blended
// trilinearly.
func (t *LutTexture) Sample(c [3]float64) [3]float64 {
	return trilinearInterp3D(t.Size, t.fetch, c)
}

func toByte(v float64) uint8 {
	return uint8(clamp(math.Round(v*255), 0, 255))
}
