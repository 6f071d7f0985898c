package gazetteer

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/agrosight/agro-insight-broker/gazetteer/db"
	"github.com/agrosight/agro-insight-broker/ndvi"
	"github.com/agrosight/agro-insight-broker/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Context is the context for a gazetteer operation
type Context struct {
	DB        *sql.DB
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

// LocationHandler is a handler for /location
// @Title locationHandler
// @Description resolves a coordinate to its nearest named landmark
// @Accept  plain
// @Param   latitude   query   number  true    "Latitude of the request point, degrees"
// @Param   longitude  query   number  true    "Longitude of the request point, degrees"
// @Success 200 {object}  geojson.Feature
// @Failure 404 {object}  string
// @Router /location [get]
type LocationHandler struct {
	Context Context
}

// NewLocationHandler creates a new handler. The connection provider is
// optional; without it lookups use the in-memory landmark map.
func NewLocationHandler(connectionProvider db.ConnectionProvider) (*LocationHandler, error) {
	handler := LocationHandler{}

	if connectionProvider != nil {
		database, err := connectionProvider(&util.BasicLogContext{})
		if err != nil {
			return nil, err
		}
		handler.Context.DB = database
	}

	return &handler, nil
}

// ServeHTTP implements the http.Handler interface for the LocationHandler type
func (h LocationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	coordinates, err := ndvi.ParseRequestCoordinates(r)
	if err != nil {
		util.LogAlert(&h.Context, err.Error())
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	landmark, distanceKm, err := h.lookup(coordinates.Latitude, coordinates.Longitude)
	if err != nil {
		message := fmt.Sprintf("No landmark found near %v,%v: %v", coordinates.Latitude, coordinates.Longitude, err)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	point := geojson.NewPoint([]float64{landmark.Longitude, landmark.Latitude})
	feature := geojson.NewFeature(point, landmark.Name, map[string]interface{}{
		"name":       landmark.Name,
		"category":   landmark.Category,
		"distanceKm": distanceKm,
	})

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(feature.String()))
}

// lookup prefers the Postgres index when configured, falling back to the
// in-memory landmark map
func (h LocationHandler) lookup(latitude, longitude float64) (*Landmark, float64, error) {
	if h.Context.DB == nil {
		return NearestLandmark(latitude, longitude)
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		return nil, 0, err
	}
	defer tx.Commit()

	row, err := db.NearestLandmark(tx, latitude, longitude)
	if err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	landmark := Landmark{
		Name:      row.Name,
		Category:  row.Category,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
	}
	return &landmark, haversineKm(latitude, longitude, row.Latitude, row.Longitude), nil
}
