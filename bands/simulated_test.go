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
	"testing"

	"github.com/agrosight/agro-insight-broker/util"
	"github.com/stretchr/testify/assert"
)

func TestSimulatedSupplier_Shape(t *testing.T) {
	supplier := NewSimulatedSupplier()
	pair, err := supplier.Supply(SupplyOptions{Latitude: 51.5, Longitude: -0.1}, &util.BasicLogContext{})
	assert.Nil(t, err)
	assert.Len(t, pair.Red, simulatedBandLength)
	assert.Len(t, pair.NIR, simulatedBandLength)
	// ceil(sqrt(1000)) == 32
	assert.Equal(t, 32, pair.Width)
	assert.Equal(t, 32, pair.Height)
	assert.Equal(t, "simulated", pair.Source)
}

func TestSimulatedSupplier_SeededByLatitude(t *testing.T) {
	supplier := NewSimulatedSupplier()

	first, err := supplier.Supply(SupplyOptions{Latitude: 12.34}, &util.BasicLogContext{})
	assert.Nil(t, err)
	second, err := supplier.Supply(SupplyOptions{Latitude: 12.34}, &util.BasicLogContext{})
	assert.Nil(t, err)
	assert.Equal(t, first.Red, second.Red, "same latitude must generate identical data")
	assert.Equal(t, first.NIR, second.NIR)

	other, err := supplier.Supply(SupplyOptions{Latitude: -45.6}, &util.BasicLogContext{})
	assert.Nil(t, err)
	assert.NotEqual(t, first.Red, other.Red, "different latitudes should generate different data")
}

func TestSimulatedSupplier_ReflectanceIsPositive(t *testing.T) {
	supplier := NewSimulatedSupplier()
	pair, err := supplier.Supply(SupplyOptions{Latitude: 0}, &util.BasicLogContext{})
	assert.Nil(t, err)
	for i := range pair.Red {
		assert.True(t, pair.Red[i] > 0)
		assert.True(t, pair.NIR[i] > 0)
	}
}
