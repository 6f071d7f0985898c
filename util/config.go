// Copyright 2016, RadiantBlue Technologies, Inc.
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

package util

import (
	"os"
	"strconv"
)

// Environment variables
const (
	RASTER_STORAGE_URL   = "RASTER_STORAGE_URL"
	RASTER_AUTH_TOKEN    = "RASTER_AUTH_TOKEN"
	RED_BAND_OBJECT      = "RED_BAND_OBJECT"
	NIR_BAND_OBJECT      = "NIR_BAND_OBJECT"
	GAZETTEER_URL        = "GAZETTEER_URL"
	WEATHER_API_URL      = "WEATHER_API_URL"
	FORCE_SIMULATED_DATA = "FORCE_SIMULATED_DATA"
)

const defaultRedBandObject = "red_band.csv.gz"
const defaultNirBandObject = "nir_band.csv.gz"

// GetRasterStorageURL returns the base URL (or local directory) holding
// the raster band objects. An empty value means no real raster storage
// is available and the simulated band source will be used instead.
func GetRasterStorageURL() string {
	storageURL, ok := os.LookupEnv(RASTER_STORAGE_URL)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get raster storage URL from the environment. Falling back to simulated band data.")
	}
	return storageURL
}

// GetRasterAuthToken returns the bearer token for raster storage, if any
func GetRasterAuthToken() string {
	return os.Getenv(RASTER_AUTH_TOKEN)
}

// GetRedBandObject returns the storage object name for the red band
func GetRedBandObject() string {
	if object, ok := os.LookupEnv(RED_BAND_OBJECT); ok {
		return object
	}
	return defaultRedBandObject
}

// GetNirBandObject returns the storage object name for the NIR band
func GetNirBandObject() string {
	if object, ok := os.LookupEnv(NIR_BAND_OBJECT); ok {
		return object
	}
	return defaultNirBandObject
}

// GetGazetteerURL returns the URL (or file path) of the landmark CSV
func GetGazetteerURL() string {
	gazetteerURL, ok := os.LookupEnv(GAZETTEER_URL)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get gazetteer URL from the environment. Location lookup will not be available.")
	}
	return gazetteerURL
}

// GetWeatherAPIURL returns the URL of an upstream weather service, if
// any. An empty value means snapshots are simulated locally.
func GetWeatherAPIURL() string {
	return os.Getenv(WEATHER_API_URL)
}

// IsSimulatedDataForced returns true if FORCE_SIMULATED_DATA is true,
// overriding any configured raster storage
func IsSimulatedDataForced() (bool, error) {
	return strconv.ParseBool(os.Getenv(FORCE_SIMULATED_DATA))
}
