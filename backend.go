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
	"image"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/exp/maps"
)

// Backend renders whole images through a [Transform].
type Backend interface {
	// Name returns the backend name, e.g. "cpu".
	Name() string

	// Render writes the graded src into dst.  Both images must have the
	// same size.  Alpha is copied unchanged.  All pixels of one call use
	// the same grain seed.
	Render(dst, src *image.NRGBA, t *Transform, seed float64) error
}

// BackendFactory creates a backend using the given number of workers.
type BackendFactory func(workers int) (Backend, error)

var (
	backendMu sync.RWMutex
	backends  = map[string]BackendFactory{}
)

func init() {
	RegisterBackend("cpu", func(workers int) (Backend, error) {
		return NewCPUBackend(workers), nil
	})
}

// RegisterBackend makes a rendering backend available to [SelectBackend].
// Registering a name twice replaces the earlier factory.
func RegisterBackend(name string, f BackendFactory) {
	if f == nil {
		panic("filmgrade: backend factory must not be nil")
	}
	backendMu.Lock()
	backends[name] = f
	backendMu.Unlock()
}

// BackendNames returns the names of all registered backends, sorted.
func BackendNames() []string {
	backendMu.RLock()
	defer backendMu.RUnlock()
	names := maps.Keys(backends)
	slices.Sort(names)
	return names
}

// SelectBackend returns the backend with the given name.  If no such
// backend is registered, an [*UnsupportedBackendError] is returned.
// Callers can then fall back to [NewCPUBackend].
func SelectBackend(name string, workers int) (Backend, error) {
	backendMu.RLock()
	f := backends[name]
	backendMu.RUnlock()
	if f == nil {
		return nil, &UnsupportedBackendError{Name: name}
	}
	return f(workers)
}

// SelectBackendOrCPU is like [SelectBackend], but falls back to the CPU
// backend if the requested backend is not available.
func SelectBackendOrCPU(name string, workers int) Backend {
	b, err := SelectBackend(name, workers)
	if err == nil {
		return b
	}
	if !errors.Is(err, ErrUnsupportedBackend) {
		Logger().Warn().Err(err).Str("backend", name).Msg("backend failed to start, using cpu")
	} else {
		Logger().Warn().Str("backend", name).Msg("backend not available, using cpu")
	}
	return NewCPUBackend(workers)
}

// CPUBackend renders images on the CPU.  The image is split into bands of
// rows which are processed in parallel.
type CPUBackend struct {
	workers int
}

// NewCPUBackend returns a CPU backend.  If workers is not positive,
// runtime.GOMAXPROCS(0) workers are used.
func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &CPUBackend{workers: workers}
}

// Name implements the [Backend] interface.
func (b *CPUBackend) Name() string { return "cpu" }

// Workers returns the number of goroutines used by Render.
func (b *CPUBackend) Workers() int { return b.workers }

// Render implements the [Backend] interface.
func (b *CPUBackend) Render(dst, src *image.NRGBA, t *Transform, seed float64) error {
	sb, db := src.Bounds(), dst.Bounds()
	if sb.Dx() != db.Dx() || sb.Dy() != db.Dy() {
		return errSizeMismatch
	}
	w, h := sb.Dx(), sb.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	workers := min(b.workers, h)
	band := (h + workers - 1) / workers

	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += band {
		y1 := min(y0+band, h)
		wg.Add(1)
		go func() {
			defer wg.Done()
			renderRows(dst, src, t, seed, y0, y1)
		}()
	}
	wg.Wait()
	return nil
}

// renderRows grades the rows [y0, y1), counted from the top of the image.
func renderRows(dst, src *image.NRGBA, t *Transform, seed float64, y0, y1 int) {
	sb, db := src.Bounds(), dst.Bounds()
	w, h := float64(sb.Dx()), float64(sb.Dy())
	for y := y0; y < y1; y++ {
		v := (float64(y) + 0.5) / h
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := dst.PixOffset(db.Min.X, db.Min.Y+y)
		for x := 0; x < sb.Dx(); x++ {
			u := (float64(x) + 0.5) / w
			p := src.Pix[si : si+4 : si+4]
			c := [3]float64{
				float64(p[0]) / 255,
				float64(p[1]) / 255,
				float64(p[2]) / 255,
			}
			c = t.ApplyAt(c, u, v, seed)
			q := dst.Pix[di : di+4 : di+4]
			q[0] = toByte(c[0])
			q[1] = toByte(c[1])
			q[2] = toByte(c[2])
			q[3] = p[3]
			si += 4
			di += 4
		}
	}
}

// RenderImage grades src into a new image using the given backend.
func RenderImage(b Backend, src *image.NRGBA, t *Transform, seed float64) (*image.NRGBA, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	if err := b.Render(dst, src, t, seed); err != nil {
		return nil, err
	}
	return dst, nil
}
