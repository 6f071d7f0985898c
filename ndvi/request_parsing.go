package ndvi

import (
	"fmt"
	"net/http"
	"strconv"
)

// Coordinates are the validated query inputs shared by the insight
// endpoints
type Coordinates struct {
	Latitude     float64
	Longitude    float64
	AreaHectares float64
}

// ParseRequestCoordinates validates the latitude/longitude/area query
// parameters. Latitude and longitude are required; area is optional but
// must be positive when present.
func ParseRequestCoordinates(r *http.Request) (*Coordinates, error) {
	latitude, err := strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil {
		return nil, fmt.Errorf("The latitude value of %q is invalid", r.FormValue("latitude"))
	}
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("The latitude value of %v is out of range [-90, 90]", latitude)
	}

	longitude, err := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil {
		return nil, fmt.Errorf("The longitude value of %q is invalid", r.FormValue("longitude"))
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("The longitude value of %v is out of range [-180, 180]", longitude)
	}

	coordinates := Coordinates{Latitude: latitude, Longitude: longitude}

	if areaStr := r.FormValue("area"); areaStr != "" {
		area, err := strconv.ParseFloat(areaStr, 64)
		if err != nil || area <= 0 {
			return nil, fmt.Errorf("The area value of %q is invalid; expected a positive number of hectares", areaStr)
		}
		coordinates.AreaHectares = area
	}

	return &coordinates, nil
}
