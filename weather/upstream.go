package weather

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agrosight/agro-insight-broker/util"
)

// errNoUpstream signals that no weather API is configured; callers fall
// back to the local simulation without logging an alert
var errNoUpstream = errors.New("no upstream weather API configured")

// fetchUpstream retrieves a snapshot from the weather service at
// WEATHER_API_URL. The upstream speaks the same snapshot JSON shape.
func fetchUpstream(ctx util.LogContext, latitude, longitude float64) (*Snapshot, error) {
	apiURL := util.GetWeatherAPIURL()
	if apiURL == "" {
		return nil, errNoUpstream
	}

	requestURL := fmt.Sprintf("%s?latitude=%v&longitude=%v", strings.TrimSuffix(apiURL, "/"), latitude, longitude)
	util.LogAudit(ctx, util.LogAuditInput{Actor: "weather", Action: "GET", Actee: requestURL, Message: "Requesting upstream weather snapshot", Severity: util.INFO})

	snapshot := Snapshot{}
	if _, err := util.ReqByObjJSON("GET", requestURL, "", nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
