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

package ndvi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/agrosight/agro-insight-broker/bands"
	"github.com/agrosight/agro-insight-broker/model"
	"github.com/agrosight/agro-insight-broker/util"
)

// chartWindow is the sample-smoothing window for the response chart series
const chartWindow = 5

// Context is the context for an NDVI insight operation
type Context struct {
	Supplier  bands.Supplier
	sessionID string
}

// AppName returns the application name
func (c *Context) AppName() string {
	return "agro-insight-broker"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// InsightHandler is a handler for /ndvi
// @Title ndviInsightHandler
// @Description reduces the configured raster band pair to NDVI insight
// @Accept  plain
// @Param   latitude   query   number  true    "Latitude of the request point, degrees"
// @Param   longitude  query   number  true    "Longitude of the request point, degrees"
// @Param   area       query   number  false   "Area of interest, hectares"
// @Success 200 {object}  model.ResponseBody
// @Failure 400 {object}  string
// @Router /ndvi [get]
type InsightHandler struct {
	Context Context
}

// NewInsightHandler creates a new handler backed by the given band supplier
func NewInsightHandler(supplier bands.Supplier) *InsightHandler {
	return &InsightHandler{Context: Context{Supplier: supplier}}
}

// ServeHTTP implements the http.Handler interface for the InsightHandler type
func (h InsightHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	coordinates, err := ParseRequestCoordinates(r)
	if err != nil {
		util.LogAlert(&h.Context, err.Error())
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := computeInsight(&h.Context, *coordinates)
	if err != nil {
		switch err {
		case ErrNoValidPixels:
			message := "The raster pair contained no valid pixels; the mean NDVI is undefined"
			util.LogAlert(&h.Context, message)
			util.HTTPError(r, w, &h.Context, message, http.StatusUnprocessableEntity)
		case ErrEmptyBands:
			message := "The band supplier returned no raster data"
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadGateway)
		default:
			message := fmt.Sprintf("Failed to compute NDVI: %v", err)
			util.LogSimpleErr(&h.Context, "Failed to compute NDVI. ", err)
			util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		}
		return
	}

	writeResponseBody(w, r, &h.Context, result)
}

// computeInsight runs the supplier and the reducer and assembles the
// response envelope. Every NDVI-producing endpoint goes through this
// one path; there is deliberately no second copy of the reduction.
func computeInsight(context *Context, coordinates Coordinates) (*model.InsightResult, error) {
	pair, err := context.Supplier.Supply(bands.SupplyOptions{
		Latitude:  coordinates.Latitude,
		Longitude: coordinates.Longitude,
	}, context)
	if err != nil {
		return nil, err
	}

	reduced, err := Reduce(pair.Red, pair.NIR, pair.Width, pair.Height)
	if err != nil {
		return nil, err
	}

	if reduced.PixelsProcessed < reduced.PixelsAvailable {
		util.LogAlert(context, fmt.Sprintf("Band pair from %v truncated: processed %d of %d available pixels",
			pair.Source, reduced.PixelsProcessed, reduced.PixelsAvailable))
	}

	return &model.InsightResult{
		VegetationIndexResult: model.VegetationIndexResult{
			MeanNDVI:        reduced.FormattedMean(),
			Sample:          reduced.Sample,
			Width:           reduced.Width,
			Height:          reduced.Height,
			PixelsAvailable: reduced.PixelsAvailable,
			PixelsProcessed: reduced.PixelsProcessed,
		},
		ChartSeries: model.NewChartSeriesFromSample(reduced.Sample, chartWindow),
		CoordinateEcho: &model.CoordinateEcho{
			Latitude:     coordinates.Latitude,
			Longitude:    coordinates.Longitude,
			AreaHectares: coordinates.AreaHectares,
		},
		Timestamp: time.Now().UTC(),
	}, nil
}

func writeResponseBody(w http.ResponseWriter, r *http.Request, context *Context, creator model.ResponseBodyCreator) {
	body, err := creator.ResponseBody()
	if err != nil {
		message := fmt.Sprintf("Error assembling response body: %v", err)
		util.LogSimpleErr(context, message, err)
		util.HTTPError(r, w, context, message, http.StatusInternalServerError)
		return
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		message := fmt.Sprintf("Error marshaling response body: %v", err)
		util.LogSimpleErr(context, message, err)
		util.HTTPError(r, w, context, message, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(encoded)
}
