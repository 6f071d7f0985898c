package db

import (
	"database/sql"

	"github.com/agrosight/agro-insight-broker/util"
)

// ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// LandmarkRow is one landmark as stored in the Postgres index
type LandmarkRow struct {
	Name      string
	Category  string
	Latitude  float64
	Longitude float64
}
