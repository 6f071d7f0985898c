package weather

import (
	"github.com/agrosight/agro-insight-broker/util"
)

// Context is the context for a weather operation
type Context struct {
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

// Snapshot is a point-in-time weather report for a coordinate
type Snapshot struct {
	TemperatureC    float64       `json:"temperatureC"`
	HumidityPct     float64       `json:"humidityPct"`
	WindSpeedMps    float64       `json:"windSpeedMps"`
	PrecipitationMm float64       `json:"precipitationMm"`
	Condition       string        `json:"condition"`
	Forecast        []ForecastDay `json:"forecast"`
	Latitude        float64       `json:"latitude"`
	Longitude       float64       `json:"longitude"`
	Timestamp       string        `json:"timestamp"`
	Simulated       bool          `json:"simulated"`
}

// ForecastDay is one day of the mock forecast series
type ForecastDay struct {
	Day             int     `json:"day"`
	TempMinC        float64 `json:"tempMinC"`
	TempMaxC        float64 `json:"tempMaxC"`
	PrecipitationMm float64 `json:"precipitationMm"`
}
