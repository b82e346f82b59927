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

import "fmt"

// Channel identifies one of the four tone curves.
// Curves are applied in the order RGB, then the per-channel curve.
type Channel int

// The curve channels.
const (
	ChannelRGB Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
)

// Channels lists the curve channels in application order.
var Channels = []Channel{ChannelRGB, ChannelRed, ChannelGreen, ChannelBlue}

func (ch Channel) String() string {
	switch ch {
	case ChannelRGB:
		return "rgb"
	case ChannelRed:
		return "r"
	case ChannelGreen:
		return "g"
	case ChannelBlue:
		return "b"
	default:
		return fmt.Sprintf("Channel(%d)", int(ch))
	}
}

// Curves holds the four tone curves of a grade.
// A nil CurveSpec is the identity.
type Curves struct {
	RGB CurveSpec `yaml:"rgb,omitempty" json:"rgb,omitempty"`
	R   CurveSpec `yaml:"r,omitempty" json:"r,omitempty"`
	G   CurveSpec `yaml:"g,omitempty" json:"g,omitempty"`
	B   CurveSpec `yaml:"b,omitempty" json:"b,omitempty"`
}

// LinearCurves returns the curve set installed when a preset has no curves.
func LinearCurves() Curves {
	return Curves{
		RGB: LinearCurve(),
		R:   LinearCurve(),
		G:   LinearCurve(),
		B:   LinearCurve(),
	}
}

// Get returns the curve for the given channel.
func (c *Curves) Get(ch Channel) CurveSpec {
	switch ch {
	case ChannelRGB:
		return c.RGB
	case ChannelRed:
		return c.R
	case ChannelGreen:
		return c.G
	case ChannelBlue:
		return c.B
	}
	return nil
}

// Set replaces the curve for the given channel.
func (c *Curves) Set(ch Channel, spec CurveSpec) {
	switch ch {
	case ChannelRGB:
		c.RGB = spec
	case ChannelRed:
		c.R = spec
	case ChannelGreen:
		c.G = spec
	case ChannelBlue:
		c.B = spec
	}
}

// IsIdentity reports whether none of the curves changes the image.
func (c *Curves) IsIdentity() bool {
	for _, ch := range Channels {
		if !c.Get(ch).IsIdentity() {
			return false
		}
	}
	return true
}

// Blend applies [BlendCurve] to all four curves.
func (c Curves) Blend(intensity float64) Curves {
	var res Curves
	for _, ch := range Channels {
		res.Set(ch, BlendCurve(c.Get(ch), intensity))
	}
	return res
}

// tables builds the lookup tables in the order RGB, R, G, B.
func (c *Curves) tables() [4]*CurveTable {
	var res [4]*CurveTable
	for i, ch := range Channels {
		res[i] = BuildCurveTable(c.Get(ch))
	}
	return res
}
