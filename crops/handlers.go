package crops

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agrosight/agro-insight-broker/bands"
	"github.com/agrosight/agro-insight-broker/model"
	"github.com/agrosight/agro-insight-broker/ndvi"
	"github.com/agrosight/agro-insight-broker/util"
)

// Context is the context for a crop suggestion operation
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

// response is the /crops payload
type response struct {
	MeanNDVI  string   `json:"meanNdvi"`
	Advisory  Advisory `json:"advisory"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Timestamp string   `json:"timestamp"`
}

// SuggestionHandler is a handler for /crops
// @Title cropSuggestionHandler
// @Description maps an NDVI scalar to crop suggestions and advisory text
// @Accept  plain
// @Param   latitude   query   number  true    "Latitude of the request point, degrees"
// @Param   longitude  query   number  true    "Longitude of the request point, degrees"
// @Param   ndvi       query   number  false   "NDVI scalar to advise on; computed from the band supplier when absent"
// @Success 200 {object}  crops.response
// @Failure 400 {object}  string
// @Router /crops [get]
type SuggestionHandler struct {
	Context Context
}

// NewSuggestionHandler creates a new handler backed by the given band supplier
func NewSuggestionHandler(supplier bands.Supplier) *SuggestionHandler {
	return &SuggestionHandler{Context: Context{Supplier: supplier}}
}

// ServeHTTP implements the http.Handler interface for the SuggestionHandler type
func (h SuggestionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	coordinates, err := ndvi.ParseRequestCoordinates(r)
	if err != nil {
		util.LogAlert(&h.Context, err.Error())
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	meanNDVI, err := h.resolveMeanNDVI(r, *coordinates)
	if err != nil {
		switch err {
		case ndvi.ErrNoValidPixels:
			message := "The raster pair contained no valid pixels; no advisory is possible"
			util.LogAlert(&h.Context, message)
			util.HTTPError(r, w, &h.Context, message, http.StatusUnprocessableEntity)
		default:
			if httpErr, ok := err.(util.HTTPErr); ok && httpErr.Status < 500 {
				util.LogAlert(&h.Context, httpErr.Message)
				util.HTTPError(r, w, &h.Context, httpErr.Message, httpErr.Status)
				return
			}
			message := fmt.Sprintf("Failed to determine NDVI for crop advisory: %v", err)
			util.LogSimpleErr(&h.Context, "Failed to determine NDVI for crop advisory. ", err)
			util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		}
		return
	}

	payload := response{
		MeanNDVI:  strconv.FormatFloat(meanNDVI, 'f', 4, 64),
		Advisory:  SuggestForNDVI(meanNDVI),
		Latitude:  coordinates.Latitude,
		Longitude: coordinates.Longitude,
		Timestamp: time.Now().UTC().Format(model.TimestampFormat),
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		message := fmt.Sprintf("Error marshaling crop advisory: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(encoded)
}

// resolveMeanNDVI takes the caller-provided ndvi scalar when present,
// otherwise computes it through the shared reducer
func (h *SuggestionHandler) resolveMeanNDVI(r *http.Request, coordinates ndvi.Coordinates) (float64, error) {
	if ndviStr := r.FormValue("ndvi"); ndviStr != "" {
		value, err := strconv.ParseFloat(ndviStr, 64)
		if err != nil || value < -1 || value > 1 {
			return 0, util.HTTPErr{Status: http.StatusBadRequest, Message: fmt.Sprintf("The ndvi value of %q is invalid; expected a number in [-1, 1]", ndviStr)}
		}
		return value, nil
	}

	pair, err := h.Context.Supplier.Supply(bands.SupplyOptions{
		Latitude:  coordinates.Latitude,
		Longitude: coordinates.Longitude,
	}, &h.Context)
	if err != nil {
		return 0, err
	}

	reduced, err := ndvi.Reduce(pair.Red, pair.NIR, pair.Width, pair.Height)
	if err != nil {
		return 0, err
	}

	return reduced.Mean, nil
}
