// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ndvi reduces a co-registered red/NIR raster band pair into
// per-pixel Normalized Difference Vegetation Index values and a summary
// statistic. It is the single source of truth for that computation;
// every caller goes through Reduce.
package ndvi

import (
	"errors"
	"strconv"
)

// MaxPixels is the hard cap on pixels processed per reduction. It bounds
// worst-case memory and latency per invocation; pixels beyond the cap are
// ignored, not an error.
const MaxPixels = 1000000

// SampleSize is the maximum length of the representative sample returned
// with each result
const SampleSize = 100

// ErrEmptyBands is returned when either input band is missing or empty
var ErrEmptyBands = errors.New("no band data to reduce: both a red and a NIR band are required")

// ErrNoValidPixels is returned when every processed pixel had a zero
// denominator, leaving the mean undefined
var ErrNoValidPixels = errors.New("no valid pixels: every processed pixel had zero combined reflectance")

// Result is the output of a single reduction
type Result struct {
	// Mean is the arithmetic mean over valid pixels only; pixels with a
	// zero denominator do not contribute to it
	Mean float64
	// Sample is the first min(SampleSize, PixelsProcessed) per-pixel
	// NDVI values in scan order
	Sample []float64
	// Width and Height are the raster's declared spatial dimensions
	Width  int
	Height int
	// PixelsAvailable is the longer of the two input band lengths;
	// comparing it with PixelsProcessed tells callers whether any
	// truncation occurred
	PixelsAvailable int
	PixelsProcessed int
	ValidPixels     int
}

// FormattedMean renders the mean to exactly 4 decimal places. Rounding is
// round-half-to-even, the strconv default.
func (r *Result) FormattedMean() string {
	return strconv.FormatFloat(r.Mean, 'f', 4, 64)
}

// Reduce computes per-pixel NDVI, (nir-red)/(nir+red), over a band pair.
// Mismatched band lengths are truncated to the shorter band, and at most
// MaxPixels pixels are processed. A pixel whose combined reflectance is
// exactly zero (sensor dead pixel or no-data) records 0 in the per-pixel
// sequence and is excluded from the mean.
func Reduce(red, nir []float64, width, height int) (*Result, error) {
	if len(red) == 0 || len(nir) == 0 {
		return nil, ErrEmptyBands
	}

	available := len(red)
	if len(nir) > available {
		available = len(nir)
	}

	count := len(red)
	if len(nir) < count {
		count = len(nir)
	}
	if count > MaxPixels {
		count = MaxPixels
	}

	var (
		sum         float64
		validPixels int
	)
	sampleLen := count
	if sampleLen > SampleSize {
		sampleLen = SampleSize
	}
	sample := make([]float64, 0, sampleLen)

	for i := 0; i < count; i++ {
		denominator := nir[i] + red[i]
		value := float64(0)
		if denominator != 0 {
			value = (nir[i] - red[i]) / denominator
			sum += value
			validPixels++
		}
		if i < SampleSize {
			sample = append(sample, value)
		}
	}

	if validPixels == 0 {
		return nil, ErrNoValidPixels
	}

	return &Result{
		Mean:            sum / float64(validPixels),
		Sample:          sample,
		Width:           width,
		Height:          height,
		PixelsAvailable: available,
		PixelsProcessed: count,
		ValidPixels:     validPixels,
	}, nil
}
