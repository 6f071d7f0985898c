package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var mockVegetationIndexResult = VegetationIndexResult{
	MeanNDVI:        "0.5000",
	Sample:          []float64{0.5, 0.25, 0},
	Width:           3,
	Height:          1,
	PixelsAvailable: 3,
	PixelsProcessed: 3,
}

func TestVegetationIndexResult_ResponseBody(t *testing.T) {
	body, err := mockVegetationIndexResult.ResponseBody()
	assert.Nil(t, err)

	assert.Equal(t, "0.5000", body["meanNdvi"])
	assert.Equal(t, []float64{0.5, 0.25, 0}, body["sample"])
	assert.Equal(t, 3, body["width"])
	assert.Equal(t, 1, body["height"])
	assert.Equal(t, 3, body["pixelsAvailable"])
	assert.Equal(t, 3, body["pixelsProcessed"])
}

func TestVegetationIndexResult_NilSampleMarshalsAsEmptyArray(t *testing.T) {
	result := VegetationIndexResult{MeanNDVI: "0.0000"}
	body, err := result.ResponseBody()
	assert.Nil(t, err)

	encoded, err := json.Marshal(body)
	assert.Nil(t, err)
	assert.Contains(t, string(encoded), `"sample":[]`)
}

func TestInsightResult_ResponseBody(t *testing.T) {
	result := InsightResult{
		VegetationIndexResult: mockVegetationIndexResult,
		ChartSeries:           NewChartSeriesFromSample(mockVegetationIndexResult.Sample, 1),
		CoordinateEcho:        &CoordinateEcho{Latitude: 10.5, Longitude: 76.2, AreaHectares: 12},
		Timestamp:             time.Unix(123, 0).UTC(),
	}

	body, err := result.ResponseBody()
	assert.Nil(t, err)

	assert.Equal(t, "0.5000", body["meanNdvi"])
	assert.NotNil(t, body["chartSeries"])
	assert.NotNil(t, body["coordinates"])
	assert.Equal(t, float64(12), body["area"])
	assert.Equal(t, time.Unix(123, 0).UTC().Format(TimestampFormat), body["timestamp"])
}

func TestInsightResult_OptionalMixinsOmitted(t *testing.T) {
	result := InsightResult{
		VegetationIndexResult: mockVegetationIndexResult,
		Timestamp:             time.Unix(123, 0).UTC(),
	}

	body, err := result.ResponseBody()
	assert.Nil(t, err)

	_, hasChart := body["chartSeries"]
	assert.False(t, hasChart)
	_, hasCoordinates := body["coordinates"]
	assert.False(t, hasCoordinates)
}
