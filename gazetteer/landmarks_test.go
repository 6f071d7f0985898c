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

package gazetteer

import (
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/agrosight/agro-insight-broker/util"
	"github.com/stretchr/testify/assert"
)

var sampleLandmarkCSV = []byte(
	"name,category,latitude,longitude\n" +
		"Green Valley Farm,farm,10.5200,76.2100\n" +
		"Northfield Reservoir,water,10.9000,76.4000\n" +
		"Hilltop Research Station,station,11.2500,75.9000\n",
)

type mockGazetteerHandler struct{}

func (h mockGazetteerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gzipWriter := gzip.NewWriter(w)
	gzipWriter.Write(sampleLandmarkCSV)
	gzipWriter.Close()
}

func TestMain(m *testing.M) {
	mockServer := httptest.NewServer(mockGazetteerHandler{})
	defer mockServer.Close()
	os.Setenv("GAZETTEER_URL", mockServer.URL+"/landmarks.csv.gz")
	code := m.Run()
	os.Exit(code)
}

func TestUpdateLandmarkMap(t *testing.T) {
	err := UpdateLandmarkMap(&util.BasicLogContext{})
	assert.Nil(t, err, "%v", err)
	assert.True(t, LandmarkMapIsReady())

	landmarkMapMutex.RLock()
	defer landmarkMapMutex.RUnlock()
	assert.Len(t, landmarkMap, 3)
	farm, ok := landmarkMap["Green Valley Farm"]
	assert.True(t, ok)
	assert.Equal(t, "farm", farm.Category)
	assert.Equal(t, 10.52, farm.Latitude)
	assert.Equal(t, 76.21, farm.Longitude)
}

func TestLandmarkMapIsReady_ConcurrentWithRefresh(t *testing.T) {
	var waitGroup sync.WaitGroup
	for i := 0; i < 4; i++ {
		waitGroup.Add(2)
		go func() {
			defer waitGroup.Done()
			UpdateLandmarkMap(&util.BasicLogContext{})
		}()
		go func() {
			defer waitGroup.Done()
			LandmarkMapIsReady()
		}()
	}
	waitGroup.Wait()
	assert.True(t, LandmarkMapIsReady())
}

func TestReadLandmarkCSV_MalformedRecord(t *testing.T) {
	_, err := readLandmarkCSV(strings.NewReader(
		"Green Valley Farm,farm,10.52,76.21\nBad Landmark,farm,not-a-number,76.4\n"))
	assert.NotNil(t, err)
}

func TestReadLandmarkCSV_HeaderOnly(t *testing.T) {
	landmarks, err := readLandmarkCSV(strings.NewReader("name,category,latitude,longitude\n"))
	assert.Nil(t, err)
	assert.Empty(t, landmarks)
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// London to Paris is roughly 344 km
	distance := haversineKm(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 344, distance, 5)
}

func TestNearestLandmark(t *testing.T) {
	err := UpdateLandmarkMap(&util.BasicLogContext{})
	assert.Nil(t, err)

	landmark, distance, err := NearestLandmark(10.5, 76.2)
	assert.Nil(t, err)
	assert.Equal(t, "Green Valley Farm", landmark.Name)
	assert.True(t, distance < 5, "distance %v unexpectedly large", distance)
}

func TestNearestLandmark_EmptyMap(t *testing.T) {
	landmarkMapMutex.Lock()
	saved := landmarkMap
	landmarkMap = map[string]Landmark{}
	landmarkMapMutex.Unlock()
	defer func() {
		landmarkMapMutex.Lock()
		landmarkMap = saved
		landmarkMapMutex.Unlock()
	}()

	_, _, err := NearestLandmark(0, 0)
	assert.NotNil(t, err)
}

func TestLocationHandler_InMemoryLookup(t *testing.T) {
	err := UpdateLandmarkMap(&util.BasicLogContext{})
	assert.Nil(t, err)

	handler, err := NewLocationHandler(nil)
	assert.Nil(t, err)

	request := httptest.NewRequest("GET", "/location?latitude=10.5&longitude=76.2", strings.NewReader(""))
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, request)

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), "Green Valley Farm")
	assert.Contains(t, response.Body.String(), "distanceKm")
}

func TestLocationHandler_BadCoordinates(t *testing.T) {
	handler, err := NewLocationHandler(nil)
	assert.Nil(t, err)

	request := httptest.NewRequest("GET", "/location?latitude=oops&longitude=76.2", strings.NewReader(""))
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, request)

	assert.Equal(t, 400, response.Code)
}
