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
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultCubeSize is the grid size assumed when a .cube file has no
// LUT_3D_SIZE line.
const DefaultCubeSize = 33

// LoadCube reads and parses a .cube file.
func LoadCube(path string) (*Lut3D, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lut, err := ParseCube(string(data), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lut, nil
}

// ParseCube parses the text of a .cube file.  The filename, with the
// extension removed, becomes the name of the LUT.
//
// The data section starts at the first line which consists only of
// digits, dots, minus signs and white space.  Each data line with at least
// three fields contributes one entry, further fields are ignored.
// LUT_3D_SIZE must be between 1 and [MaxCubeSize]; a single-entry LUT maps
// every colour to that entry.  If the number of entries differs from
// LUT_3D_SIZE³, a [*FormatError] is returned.
func ParseCube(text, filename string) (*Lut3D, error) {
	filename = filepath.Base(filename)
	lut := &Lut3D{
		Name:      trimCubeExt(filename),
		Filename:  filename,
		Size:      DefaultCubeSize,
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
	}

	dataStarted := false
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "TITLE"):
			continue
		case strings.HasPrefix(line, "DOMAIN_MIN"):
			v, err := parseTriple(strings.Fields(line[len("DOMAIN_MIN"):]))
			if err != nil {
				return nil, invalidLine(lineNo, "malformed DOMAIN_MIN")
			}
			lut.DomainMin = v
			continue
		case strings.HasPrefix(line, "DOMAIN_MAX"):
			v, err := parseTriple(strings.Fields(line[len("DOMAIN_MAX"):]))
			if err != nil {
				return nil, invalidLine(lineNo, "malformed DOMAIN_MAX")
			}
			lut.DomainMax = v
			continue
		case strings.HasPrefix(line, "LUT_3D_SIZE"):
			size, err := strconv.Atoi(strings.TrimSpace(line[len("LUT_3D_SIZE"):]))
			if err != nil || size < 1 || size > MaxCubeSize {
				return nil, invalidLine(lineNo, "invalid LUT_3D_SIZE")
			}
			lut.Size = size
			continue
		}

		if !dataStarted && isDataLine(line) {
			dataStarted = true
		}
		if !dataStarted {
			// unknown keywords before the data section, e.g. LUT_1D_SIZE
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		v, err := parseTriple(fields)
		if err != nil {
			return nil, invalidLine(lineNo, "malformed data line")
		}
		lut.Data = append(lut.Data, v)
	}

	expected := lut.Size * lut.Size * lut.Size
	if len(lut.Data) != expected {
		return nil, &FormatError{
			Reason:   fmt.Sprintf("expected %d entries, got %d", expected, len(lut.Data)),
			Expected: expected,
			Got:      len(lut.Data),
		}
	}

	Logger().Debug().
		Str("name", lut.Name).
		Int("size", lut.Size).
		Int("rows", len(lut.Data)).
		Msg("cube parsed")
	return lut, nil
}

// isDataLine reports whether the line consists only of digits, '.', '-'
// and white space.
func isDataLine(line string) bool {
	for _, r := range line {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == ' ', r == '\t', r == '\r':
		default:
			return false
		}
	}
	return true
}

func parseTriple(fields []string) ([3]float64, error) {
	var res [3]float64
	if len(fields) < 3 {
		return res, errMissingValues
	}
	for i := range 3 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return res, err
		}
		res[i] = x
	}
	return res, nil
}

func trimCubeExt(filename string) string {
	ext := filepath.Ext(filename)
	if strings.EqualFold(ext, ".cube") {
		return filename[:len(filename)-len(ext)]
	}
	return filename
}
