package weather

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/agrosight/agro-insight-broker/ndvi"
	"github.com/agrosight/agro-insight-broker/util"
)

// SnapshotHandler is a handler for /weather
// @Title weatherSnapshotHandler
// @Description returns a simulated weather snapshot and forecast
// @Accept  plain
// @Param   latitude   query   number  true    "Latitude of the request point, degrees"
// @Param   longitude  query   number  true    "Longitude of the request point, degrees"
// @Success 200 {object}  weather.Snapshot
// @Failure 400 {object}  string
// @Router /weather [get]
type SnapshotHandler struct {
	Context Context
}

// NewSnapshotHandler creates a new weather handler
func NewSnapshotHandler() *SnapshotHandler {
	return &SnapshotHandler{}
}

// ServeHTTP implements the http.Handler interface for the SnapshotHandler type
func (h SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	coordinates, err := ndvi.ParseRequestCoordinates(r)
	if err != nil {
		util.LogAlert(&h.Context, err.Error())
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := fetchUpstream(&h.Context, coordinates.Latitude, coordinates.Longitude)
	if err != nil {
		if err != errNoUpstream {
			util.LogAlert(&h.Context, "Upstream weather request failed, falling back to simulation: "+err.Error())
		}
		snapshot = Simulate(coordinates.Latitude, coordinates.Longitude, time.Now())
	}

	encoded, err := json.Marshal(snapshot)
	if err != nil {
		message := fmt.Sprintf("Error marshaling weather snapshot: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(encoded)
}
