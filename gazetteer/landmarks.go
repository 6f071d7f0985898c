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

// Package gazetteer resolves coordinates to nearby named landmarks. The
// landmark list is a CSV (optionally gzipped) loaded from a URL or file
// into an in-memory map, with an optional Postgres index for larger
// datasets.
package gazetteer

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agrosight/agro-insight-broker/util"
)

// Landmark is one named point of interest
type Landmark struct {
	Name      string
	Category  string
	Latitude  float64
	Longitude float64
}

var (
	landmarkMapMutex sync.RWMutex
	landmarkMap      = map[string]Landmark{}
	landmarkMapReady atomic.Bool
)

// LandmarkMapIsReady reports whether the landmark map has been loaded
// yet. It is safe to call from any goroutine.
func LandmarkMapIsReady() bool {
	return landmarkMapReady.Load()
}

// UpdateLandmarkMap replaces the in-memory landmark map from the
// configured CSV source. Records are name,category,latitude,longitude;
// a header record is skipped if present.
func UpdateLandmarkMap(ctx util.LogContext) (err error) {
	gazetteerURL := util.GetGazetteerURL()
	if gazetteerURL == "" {
		return errors.New("no gazetteer URL configured")
	}
	start := time.Now()

	util.LogAudit(ctx, util.LogAuditInput{Actor: "anon user", Action: "GET", Actee: gazetteerURL, Message: "Importing landmark list", Severity: util.INFO})
	rawReader, err := openReader(gazetteerURL)
	if err != nil {
		return
	}
	defer rawReader.Close()

	var mainReader io.Reader = rawReader
	if strings.HasSuffix(gazetteerURL, ".gz") {
		gzipReader, gzipErr := gzip.NewReader(rawReader)
		if gzipErr != nil {
			return gzipErr
		}
		defer gzipReader.Close()
		mainReader = gzipReader
	}

	landmarks, err := readLandmarkCSV(mainReader)
	if err != nil {
		return
	}

	landmarkMapMutex.Lock()
	landmarkMap = landmarks
	landmarkMapMutex.Unlock()

	landmarkMapReady.Store(true)
	util.LogAudit(ctx, util.LogAuditInput{Actor: "anon user", Action: "GET", Actee: gazetteerURL,
		Message: fmt.Sprintf("Imported %d landmarks; duration: %fs", len(landmarks), time.Now().Sub(start).Seconds()), Severity: util.INFO})
	return nil
}

func readLandmarkCSV(reader io.Reader) (map[string]Landmark, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = 4

	landmarks := map[string]Landmark{}

doneReading:
	for {
		record, readErr := csvReader.Read()
		switch readErr {
		case nil:
			latitude, latErr := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
			longitude, lonErr := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
			if latErr != nil || lonErr != nil {
				// Tolerate a single header record; anything else is malformed
				if len(landmarks) == 0 {
					continue
				}
				return nil, fmt.Errorf("malformed landmark record: %v", record)
			}
			name := strings.TrimSpace(record[0])
			landmarks[name] = Landmark{
				Name:      name,
				Category:  strings.TrimSpace(record[1]),
				Latitude:  latitude,
				Longitude: longitude,
			}
		case io.EOF:
			break doneReading
		default:
			return nil, readErr
		}
	}

	return landmarks, nil
}

func openReader(gazetteerURL string) (io.ReadCloser, error) {
	if strings.HasPrefix(gazetteerURL, "http://") || strings.HasPrefix(gazetteerURL, "https://") {
		response, err := util.HTTPClient().Get(gazetteerURL)
		if err != nil {
			return nil, err
		}
		if response.StatusCode != http.StatusOK {
			response.Body.Close()
			return nil, fmt.Errorf("Non-200 response code: %d", response.StatusCode)
		}
		return response.Body, nil
	}

	return os.Open(filepath.Clean(gazetteerURL))
}

// UpdateLandmarkMapAsync runs UpdateLandmarkMap asynchronously, returning
// completion signals via channels
func UpdateLandmarkMapAsync(ctx util.LogContext) (done chan bool, errored chan error) {
	done = make(chan bool)
	errored = make(chan error)
	go func() {
		err := UpdateLandmarkMap(ctx)
		if err == nil {
			done <- true
		} else {
			errored <- err
		}
		close(done)
		close(errored)
	}()
	return
}

// UpdateLandmarkMapOnTicker updates the landmark map on a loop with a
// delay of a given duration. It logs any errors using the given LogContext.
func UpdateLandmarkMapOnTicker(ctx util.LogContext, d time.Duration) {
	ticker := time.NewTicker(d)
	for {
		done, errored := UpdateLandmarkMapAsync(ctx)
		select {
		case <-done:
		case err := <-errored:
			util.LogAlert(ctx, "Failed to update landmark map: "+err.Error())
		}
		<-ticker.C
	}
}

// earthRadiusKm is the mean Earth radius used for haversine distances
const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance between two coordinates
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRadians := func(degrees float64) float64 { return degrees * math.Pi / 180 }
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// NearestLandmark finds the closest landmark to the given coordinate in
// the in-memory map, returning it with its distance in kilometers
func NearestLandmark(latitude, longitude float64) (*Landmark, float64, error) {
	landmarkMapMutex.RLock()
	defer landmarkMapMutex.RUnlock()

	if len(landmarkMap) == 0 {
		return nil, 0, errors.New("landmark map is empty")
	}

	var (
		nearest  Landmark
		bestDist = math.Inf(1)
	)
	for _, landmark := range landmarkMap {
		dist := haversineKm(latitude, longitude, landmark.Latitude, landmark.Longitude)
		if dist < bestDist {
			bestDist = dist
			nearest = landmark
		}
	}

	return &nearest, bestDist, nil
}
