package weather

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimulate_IsDeterministicPerCoordinate(t *testing.T) {
	now := time.Unix(1000, 0)
	first := Simulate(10.5, 76.2, now)
	second := Simulate(10.5, 76.2, now)
	assert.Equal(t, first, second)

	other := Simulate(-33.9, 151.2, now)
	assert.NotEqual(t, first.TemperatureC, other.TemperatureC)
}

func TestSimulate_PlausibleRanges(t *testing.T) {
	for _, latitude := range []float64{-60, -10, 0, 23.5, 48, 70} {
		snapshot := Simulate(latitude, 0, time.Now())
		assert.True(t, snapshot.TemperatureC > -40 && snapshot.TemperatureC < 55, "temperature %v at latitude %v", snapshot.TemperatureC, latitude)
		assert.True(t, snapshot.HumidityPct >= 5 && snapshot.HumidityPct <= 100)
		assert.True(t, snapshot.WindSpeedMps >= 0)
		assert.True(t, snapshot.PrecipitationMm >= 0)
		assert.NotEmpty(t, snapshot.Condition)
		assert.True(t, snapshot.Simulated)
	}
}

func TestSimulate_ForecastShape(t *testing.T) {
	snapshot := Simulate(45, 9, time.Now())
	assert.Len(t, snapshot.Forecast, forecastDays)
	for i, day := range snapshot.Forecast {
		assert.Equal(t, i+1, day.Day)
		assert.True(t, day.TempMinC < day.TempMaxC, "day %d min %v not below max %v", day.Day, day.TempMinC, day.TempMaxC)
	}
}

func TestSnapshotHandler(t *testing.T) {
	handler := NewSnapshotHandler()

	request := httptest.NewRequest("GET", "/weather?latitude=10.5&longitude=76.2", strings.NewReader(""))
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, request)

	assert.Equal(t, 200, response.Code)
	body := Snapshot{}
	assert.Nil(t, json.Unmarshal(response.Body.Bytes(), &body))
	assert.Equal(t, 10.5, body.Latitude)
	assert.Equal(t, 76.2, body.Longitude)
	assert.Len(t, body.Forecast, forecastDays)
}

func TestSnapshotHandler_MissingCoordinates(t *testing.T) {
	handler := NewSnapshotHandler()

	request := httptest.NewRequest("GET", "/weather", strings.NewReader(""))
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, request)

	assert.Equal(t, 400, response.Code)
}
