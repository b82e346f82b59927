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
	"sync/atomic"

	"github.com/rs/zerolog"
)

// loggerPtr stores the active logger.  It is accessed atomically so that
// SetLogger can be called while renders are running.
var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	SetLogger(nil)
}

// SetLogger configures the logger used by the package.
// By default nothing is logged.  Pass nil to restore the silent default.
//
// Debug level reports parsed and exported LUTs and compiled transforms,
// warn level reports backend fallbacks.
func SetLogger(l *zerolog.Logger) {
	if l == nil {
		nop := zerolog.Nop()
		l = &nop
	}
	loggerPtr.Store(l)
}

// Logger returns the logger used by the package.
func Logger() *zerolog.Logger {
	return loggerPtr.Load()
}
