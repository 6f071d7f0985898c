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

// Package bands obtains co-registered red/NIR raster band pairs for the
// NDVI reducer. Suppliers are swappable: file-backed storage, simulated
// data, and (eventually) a live satellite source all satisfy the same
// interface.
package bands

import (
	"github.com/agrosight/agro-insight-broker/util"
)

// BandPair is a pair of co-registered raster bands plus their declared
// spatial dimensions. Bands are flattened to scan order (row-major).
type BandPair struct {
	Red    []float64
	NIR    []float64
	Width  int
	Height int
	// Source names the supplier that produced the pair, for diagnostics
	Source string
}

// SupplyOptions carries the per-request inputs a supplier may use.
// Coordinates do not select pixels (no geocoding happens here); the
// simulated supplier uses them only to seed its generator.
type SupplyOptions struct {
	Latitude  float64
	Longitude float64
}

// Supplier produces a band pair for a request
type Supplier interface {
	Supply(options SupplyOptions, ctx util.LogContext) (*BandPair, error)
}
