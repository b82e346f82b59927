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
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

// The built-in film presets.
//
//go:embed presets/films.yaml
var filmsYAML []byte

var (
	catalogOnce sync.Once
	catalog     []*Preset
)

// Presets returns the built-in film presets in catalog order.
// The presets are shared and must not be modified.
func Presets() []*Preset {
	catalogOnce.Do(func() {
		var err error
		catalog, err = LoadPresets(bytes.NewReader(filmsYAML))
		if err != nil {
			panic("filmgrade: invalid built-in preset catalog: " + err.Error())
		}
	})
	return slices.Clone(catalog)
}

// LoadPresets reads a preset catalog in YAML form.  The document is a
// list of presets, each with name, brand and settings.
func LoadPresets(r io.Reader) ([]*Preset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var presets []*Preset
	if err := dec.Decode(&presets); err != nil && err != io.EOF {
		return nil, err
	}
	for i, p := range presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d: missing name", i)
		}
		if c := p.Settings.Curves; c != nil {
			for _, ch := range Channels {
				if spec := c.Get(ch); spec.isNormalised() {
					c.Set(ch, spec.scaled(255))
				}
			}
		}
	}
	return presets, nil
}

// LookupPreset finds a built-in preset by name.  The name may be given
// with or without the brand, e.g. "Portra 400" or "Kodak Portra 400".
// Case is ignored.
func LookupPreset(name string) (*Preset, bool) {
	return FindPreset(Presets(), name)
}

// FindPreset is like [LookupPreset], but searches the given list.
func FindPreset(presets []*Preset, name string) (*Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(p.FullName(), name) {
			return p, true
		}
	}
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

// Brands returns the sorted list of brands in the built-in catalog.
func Brands() []string {
	seen := make(map[string]struct{})
	for _, p := range Presets() {
		seen[p.Brand] = struct{}{}
	}
	brands := maps.Keys(seen)
	slices.Sort(brands)
	return brands
}

// PresetsByBrand groups the built-in presets by brand.  Within each brand
// the catalog order is kept.
func PresetsByBrand() map[string][]*Preset {
	res := make(map[string][]*Preset)
	for _, p := range Presets() {
		res[p.Brand] = append(res[p.Brand], p)
	}
	return res
}
