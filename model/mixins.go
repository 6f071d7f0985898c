package model

import (
	"fmt"

	"github.com/venicegeo/geojson-go/geojson"
	"gonum.org/v1/gonum/stat"
)

// ChartSeries is a mixin carrying a labeled series for client-side
// charting, derived from the NDVI sample
type ChartSeries struct {
	Labels []string
	Values []float64
}

// NewChartSeriesFromSample smooths the per-pixel sample into a chartable
// series of windowed means. A window of w turns every w consecutive
// sample values into one point.
func NewChartSeriesFromSample(sample []float64, window int) *ChartSeries {
	if window < 1 {
		window = 1
	}

	series := ChartSeries{
		Labels: []string{},
		Values: []float64{},
	}
	for start := 0; start < len(sample); start += window {
		end := start + window
		if end > len(sample) {
			end = len(sample)
		}
		series.Labels = append(series.Labels, fmt.Sprintf("px %d-%d", start, end-1))
		series.Values = append(series.Values, stat.Mean(sample[start:end], nil))
	}
	return &series
}

// Apply implements the ResponseMixin interface
func (cs ChartSeries) Apply(body ResponseBody) error {
	body["chartSeries"] = map[string]interface{}{
		"labels": cs.Labels,
		"values": cs.Values,
	}
	return nil
}

// CoordinateEcho is a mixin echoing the request coordinates (and the
// optional area) back to the caller
type CoordinateEcho struct {
	Latitude     float64
	Longitude    float64
	AreaHectares float64
}

// Apply implements the ResponseMixin interface. The coordinates are
// echoed as a GeoJSON Point feature.
func (ce CoordinateEcho) Apply(body ResponseBody) error {
	point := geojson.NewPoint([]float64{ce.Longitude, ce.Latitude})
	feature := geojson.NewFeature(point, "", map[string]interface{}{
		"latitude":  ce.Latitude,
		"longitude": ce.Longitude,
	})
	body["coordinates"] = feature
	if ce.AreaHectares > 0 {
		body["area"] = ce.AreaHectares
	}
	return nil
}
