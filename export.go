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
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Limits for the grid size of exported LUTs.
const (
	MinCubeSize = 2
	MaxCubeSize = 256
)

// Creator is written to the header of exported .cube files.
const Creator = "filmgrade"

// DefaultExportName is used for exported LUTs when no preset is selected.
const DefaultExportName = "FilmPreset"

// ColorFunc maps an RGB colour in [0, 1]³ to a new colour.
// An error aborts the operation which evaluates the function.
type ColorFunc func(c [3]float64) ([3]float64, error)

// CubeMetadata describes the grade an exported LUT was made from.
// Both fields are optional.
type CubeMetadata struct {
	// Preset is written as a "Film Stock" comment.
	Preset *Preset

	// LUTName is the name of the LUT which was active during the export,
	// written as a "Suitable For" comment.
	LUTName string
}

// SampleLut evaluates fn on a regular size×size×size grid of input colours.
// If fn fails for any grid point, no LUT is returned.
func SampleLut(size int, fn ColorFunc) (*Lut3D, error) {
	if size < MinCubeSize || size > MaxCubeSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	lut := &Lut3D{
		Size:      size,
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
		Data:      make([][3]float64, 0, size*size*size),
	}
	step := 1 / float64(size-1)
	for b := range size {
		for g := range size {
			for r := range size {
				in := [3]float64{float64(r) * step, float64(g) * step, float64(b) * step}
				out, err := fn(in)
				if err != nil {
					return nil, fmt.Errorf("grid point (%d, %d, %d): %w", r, g, b, err)
				}
				lut.Data = append(lut.Data, out)
			}
		}
	}
	return lut, nil
}

// ExportCube samples fn on a size×size×size grid and returns the result in
// .cube format.  The export is all-or-nothing: if fn fails for any grid
// point, an empty string and the error are returned.
func ExportCube(size int, title string, fn ColorFunc, meta CubeMetadata) (string, error) {
	lut, err := SampleLut(size, fn)
	if err != nil {
		return "", err
	}
	text := lut.Encode(title, meta)

	Logger().Debug().
		Str("title", title).
		Int("size", size).
		Msg("cube exported")
	return text, nil
}

// Encode formats the LUT as a .cube file.  Entries are written with six
// decimal places, blue varying slowest and red fastest.
func (l *Lut3D) Encode(title string, meta CubeMetadata) string {
	var sb strings.Builder
	sb.Grow(64*len(l.Data) + 256)

	fmt.Fprintf(&sb, "# Created by %s\n", Creator)
	fmt.Fprintf(&sb, "# Title: %s\n", title)
	fmt.Fprintf(&sb, "# Size: %d\n", l.Size)
	if meta.Preset != nil {
		fmt.Fprintf(&sb, "# Film Stock: %s %s\n", meta.Preset.Brand, meta.Preset.Name)
	}
	if meta.LUTName != "" {
		fmt.Fprintf(&sb, "# Suitable For: %s\n", meta.LUTName)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "LUT_3D_SIZE %d\n\n", l.Size)

	var buf []byte
	for _, v := range l.Data {
		buf = buf[:0]
		buf = strconv.AppendFloat(buf, v[0], 'f', 6, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, v[1], 'f', 6, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, v[2], 'f', 6, 64)
		buf = append(buf, '\n')
		sb.Write(buf)
	}
	return sb.String()
}

var whiteSpace = regexp.MustCompile(`\s+`)

// ExportName returns the default title for a LUT exported from the given
// preset, e.g. "Kodak_Portra_400".
func ExportName(p *Preset) string {
	if p == nil {
		return DefaultExportName
	}
	return whiteSpace.ReplaceAllString(p.Brand+"_"+p.Name, "_")
}
