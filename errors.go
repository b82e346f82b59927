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
	"errors"
	"fmt"
)

// FormatError indicates that a .cube file is malformed and cannot be
// parsed.  No partial LUT is returned together with a FormatError.
type FormatError struct {
	// Line is the 1-based line number of the offending line, or 0 if the
	// problem is not tied to a single line.
	Line int

	Reason string

	// Expected and Got give the number of data rows for a size mismatch.
	// Both are zero for other problems.
	Expected int
	Got      int
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cube: line %d: %s", e.Line, e.Reason)
	}
	return "cube: " + e.Reason
}

func invalidLine(line int, reason string) error {
	return &FormatError{Line: line, Reason: reason}
}

// ValidationError indicates that a custom preset failed the structural or
// range checks.
type ValidationError struct {
	// Field names the offending setting, e.g. "exposure" or "curves.rgb[2]".
	// It is empty for problems with the document as a whole.
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "preset: " + e.Reason
	}
	return "preset: " + e.Field + " " + e.Reason
}

// UnsupportedBackendError is returned by [SelectBackend] when the requested
// rendering backend is not available in this build or on this machine.
type UnsupportedBackendError struct {
	Name string
}

func (e *UnsupportedBackendError) Error() string {
	return fmt.Sprintf("filmgrade: rendering backend %q is not available", e.Name)
}

// Is allows errors.Is(err, ErrUnsupportedBackend).
func (e *UnsupportedBackendError) Is(target error) bool {
	return target == ErrUnsupportedBackend
}

var (
	// ErrUnsupportedBackend matches every [UnsupportedBackendError].
	ErrUnsupportedBackend = errors.New("filmgrade: unsupported rendering backend")

	// ErrInvalidSize is returned when a LUT size is outside [MinCubeSize, MaxCubeSize].
	ErrInvalidSize = errors.New("filmgrade: invalid LUT size")

	errSizeMismatch  = errors.New("filmgrade: image sizes differ")
	errMissingValues = errors.New("need three values")
)
