package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

func TestNewChartSeriesFromSample_WindowedMeans(t *testing.T) {
	series := NewChartSeriesFromSample([]float64{0, 1, 2, 3, 4, 5}, 2)
	assert.Equal(t, []float64{0.5, 2.5, 4.5}, series.Values)
	assert.Equal(t, []string{"px 0-1", "px 2-3", "px 4-5"}, series.Labels)
}

func TestNewChartSeriesFromSample_PartialFinalWindow(t *testing.T) {
	series := NewChartSeriesFromSample([]float64{1, 1, 4}, 2)
	assert.Equal(t, []float64{1, 4}, series.Values)
	assert.Equal(t, []string{"px 0-1", "px 2-2"}, series.Labels)
}

func TestNewChartSeriesFromSample_EmptySample(t *testing.T) {
	series := NewChartSeriesFromSample(nil, 10)
	assert.Empty(t, series.Values)
	assert.Empty(t, series.Labels)
}

func TestChartSeries_Apply(t *testing.T) {
	body := ResponseBody{}
	series := ChartSeries{Labels: []string{"a"}, Values: []float64{1.5}}
	assert.Nil(t, series.Apply(body))

	chart := body["chartSeries"].(map[string]interface{})
	assert.Equal(t, []string{"a"}, chart["labels"])
	assert.Equal(t, []float64{1.5}, chart["values"])
}

func TestCoordinateEcho_Apply(t *testing.T) {
	body := ResponseBody{}
	echo := CoordinateEcho{Latitude: 10.5, Longitude: 76.2, AreaHectares: 3.5}
	assert.Nil(t, echo.Apply(body))

	feature, ok := body["coordinates"].(*geojson.Feature)
	assert.True(t, ok, "coordinates should be a GeoJSON feature")
	point, ok := feature.Geometry.(*geojson.Point)
	assert.True(t, ok)
	assert.Equal(t, []float64{76.2, 10.5}, point.Coordinates)
	assert.Equal(t, 3.5, body["area"])
}

func TestCoordinateEcho_ZeroAreaOmitted(t *testing.T) {
	body := ResponseBody{}
	echo := CoordinateEcho{Latitude: 1, Longitude: 2}
	assert.Nil(t, echo.Apply(body))

	_, hasArea := body["area"]
	assert.False(t, hasArea)
}
