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
	"image"
	"math"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// MaxAnalysisSamples bounds the number of pixels looked at by [Analyze].
const MaxAnalysisSamples = 10000

// Targets for the auto-balance corrections.
const (
	targetMedianLuma = 0.45
	targetLogRange   = 0.7
	targetLogSat     = 0.4
)

// Analysis holds the corrections suggested by [Analyze], together with the
// image statistics they were derived from.
type Analysis struct {
	// Suggested corrections, rounded to two decimal places.
	Exposure    float64
	Contrast    float64
	Saturation  float64
	Temperature float64

	MedianLuma        float64
	Perc5Luma         float64
	Perc95Luma        float64
	LumaRange         float64
	AverageSaturation float64

	// LogLike is set for flat, desaturated images such as camera log
	// footage.  These get stronger contrast and saturation corrections.
	LogLike bool

	// Samples is the number of pixels which were analysed.
	Samples int
}

// Apply returns a copy of adj with exposure, contrast, saturation and
// temperature replaced by the suggested corrections.
func (a Analysis) Apply(adj Adjustments) Adjustments {
	adj.Exposure = a.Exposure
	adj.Contrast = a.Contrast
	adj.Saturation = a.Saturation
	adj.Temperature = a.Temperature
	return adj
}

// AnalyzeImage downscales img so that its longer edge is at most maxEdge
// pixels and then calls [Analyze].  If maxEdge is not positive, the image
// is analysed at full size.
func AnalyzeImage(img image.Image, maxEdge int) Analysis {
	b := img.Bounds()
	var nrgba *image.NRGBA
	if maxEdge > 0 && (b.Dx() > maxEdge || b.Dy() > maxEdge) {
		nrgba = imaging.Fit(img, maxEdge, maxEdge, imaging.Linear)
	} else if m, ok := img.(*image.NRGBA); ok {
		nrgba = m
	} else {
		nrgba = imaging.Clone(img)
	}
	return Analyze(nrgba)
}

// Analyze estimates corrections which bring the image to a balanced
// exposure, contrast, saturation and white balance.
//
// At most about [MaxAnalysisSamples] pixels are used, taken at a fixed
// stride in row-major order.  An empty image gives zero corrections.
func Analyze(img *image.NRGBA) Analysis {
	b := img.Bounds()
	w := b.Dx()
	n := w * b.Dy()
	if n == 0 {
		return Analysis{}
	}
	stride := max(1, n/MaxAnalysisSamples)

	count := (n + stride - 1) / stride
	lumas := make([]float64, 0, count)
	sats := make([]float64, 0, count)
	var sumR, sumG, sumB, sumSat float64
	for i := 0; i < n; i += stride {
		o := img.PixOffset(b.Min.X+i%w, b.Min.Y+i/w)
		col := colorful.Color{
			R: float64(img.Pix[o]) / 255,
			G: float64(img.Pix[o+1]) / 255,
			B: float64(img.Pix[o+2]) / 255,
		}
		_, s, _ := col.Hsv()

		lumas = append(lumas, 0.2126*col.R+0.7152*col.G+0.0722*col.B)
		sats = append(sats, s)
		sumR += col.R
		sumG += col.G
		sumB += col.B
		sumSat += s
	}
	slices.Sort(lumas)
	slices.Sort(sats)

	k := float64(len(lumas))
	a := Analysis{
		MedianLuma:        percentile(lumas, 0.5),
		Perc5Luma:         percentile(lumas, 0.05),
		Perc95Luma:        percentile(lumas, 0.95),
		AverageSaturation: sumSat / k,
		Samples:           len(lumas),
	}
	a.LumaRange = a.Perc95Luma - a.Perc5Luma
	a.LogLike = a.LumaRange < 0.5 && a.AverageSaturation < 0.3

	a.Exposure = clamp(math.Log2((targetMedianLuma+0.05)/(a.MedianLuma+0.05)), -1, 1)

	if a.LogLike {
		a.Contrast = clamp(targetLogRange/a.LumaRange-1, 0, 0.6)
		a.Saturation = clamp(targetLogSat/(a.AverageSaturation+0.1)-1, 0, 0.5)
	} else {
		a.Contrast = clamp(0.7-a.LumaRange, 0, 0.2)
		a.Saturation = clamp(0.3-a.AverageSaturation, 0, 0.2)
	}

	avgR, avgG, avgB := sumR/k, sumG/k, sumB/k
	avgAll := (avgR + avgG + avgB) / 3
	if avgAll > 0 {
		offset := (avgB - avgR) / avgAll
		a.Temperature = clamp(-offset*0.3, -0.3, 0.3)
	}

	a.Exposure = round2(a.Exposure)
	a.Contrast = round2(a.Contrast)
	a.Saturation = round2(a.Saturation)
	a.Temperature = round2(a.Temperature)
	return a
}

// percentile returns the element at position floor(len·p) of the sorted
// slice.
func percentile(sorted []float64, p float64) float64 {
	i := int(float64(len(sorted)) * p)
	return sorted[min(i, len(sorted)-1)]
}

// round2 rounds to two decimal places, with halves rounded up.
func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
