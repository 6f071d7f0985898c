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

package bands

import (
	"math"
	"math/rand"

	"github.com/agrosight/agro-insight-broker/util"
)

// simulatedBandLength matches the fixed length the legacy generator used
const simulatedBandLength = 1000

// SimulatedSupplier synthesizes a band pair from pseudo-random
// reflectance values, for environments without real raster storage.
// The generator is seeded loosely by latitude so nearby requests see
// stable data.
type SimulatedSupplier struct{}

// NewSimulatedSupplier creates a simulated band supplier
func NewSimulatedSupplier() *SimulatedSupplier {
	return &SimulatedSupplier{}
}

// Supply implements the Supplier interface. Dimensions are derived from
// the band length as width = height = ceil(sqrt(length)), since there is
// no raster metadata to consult.
func (s *SimulatedSupplier) Supply(options SupplyOptions, ctx util.LogContext) (*BandPair, error) {
	seed := int64(math.Round(options.Latitude * 1000))
	rng := rand.New(rand.NewSource(seed))

	red := make([]float64, simulatedBandLength)
	nir := make([]float64, simulatedBandLength)
	for i := range red {
		// Reflectance in a plausible sensor range; NIR biased above red
		// so the simulated scene reads as moderately vegetated
		red[i] = 500 + rng.Float64()*2000
		nir[i] = 1500 + rng.Float64()*4000
	}

	side := int(math.Ceil(math.Sqrt(float64(simulatedBandLength))))

	return &BandPair{
		Red:    red,
		NIR:    nir,
		Width:  side,
		Height: side,
		Source: "simulated",
	}, nil
}
