package model

import (
	"time"
)

// VegetationIndexResult holds the reducer output fields of an NDVI
// response. Field names in the body are part of the documented API
// surface and must not change.
type VegetationIndexResult struct {
	MeanNDVI        string
	Sample          []float64
	Width           int
	Height          int
	PixelsAvailable int
	PixelsProcessed int
}

// ResponseBody implements the ResponseBodyCreator interface
func (r VegetationIndexResult) ResponseBody() (ResponseBody, error) {
	sample := r.Sample
	if sample == nil {
		sample = []float64{}
	}
	return ResponseBody{
		"meanNdvi":        r.MeanNDVI,
		"sample":          sample,
		"width":           r.Width,
		"height":          r.Height,
		"pixelsAvailable": r.PixelsAvailable,
		"pixelsProcessed": r.PixelsProcessed,
	}, nil
}

// InsightResult is the full /ndvi response envelope: the reducer output
// plus optional chart and coordinate decorations and a timestamp
type InsightResult struct {
	VegetationIndexResult
	*ChartSeries
	*CoordinateEcho
	Timestamp time.Time
}

// ResponseBody implements the ResponseBodyCreator interface
func (result InsightResult) ResponseBody() (ResponseBody, error) {
	body, err := result.VegetationIndexResult.ResponseBody()
	if err != nil {
		return nil, err
	}

	if result.ChartSeries != nil {
		if err = result.ChartSeries.Apply(body); err != nil {
			return nil, err
		}
	}

	if result.CoordinateEcho != nil {
		if err = result.CoordinateEcho.Apply(body); err != nil {
			return nil, err
		}
	}

	body["timestamp"] = result.Timestamp.Format(TimestampFormat)
	return body, nil
}
