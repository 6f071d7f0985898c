package db

import (
	"database/sql"
)

// NearestLandmark returns the landmark row closest to the given
// coordinate. Candidates are pre-ranked by squared coordinate distance
// in SQL; the caller refines with a proper great-circle distance.
func NearestLandmark(tx *sql.Tx, latitude, longitude float64) (*LandmarkRow, error) {
	landmark := LandmarkRow{}

	rows, err := tx.Query(`
		SELECT name, category, latitude, longitude
		FROM public.landmarks
		ORDER BY (latitude-$1)*(latitude-$1) + (longitude-$2)*(longitude-$2)
		LIMIT 1`,
		latitude, longitude,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	err = rows.Scan(&landmark.Name, &landmark.Category, &landmark.Latitude, &landmark.Longitude)
	if err != nil {
		return nil, err
	}

	return &landmark, nil
}

// CountLandmarks returns the number of indexed landmarks
func CountLandmarks(tx *sql.Tx) (int, error) {
	var count int
	err := tx.QueryRow(`SELECT COUNT(*) FROM public.landmarks`).Scan(&count)
	return count, err
}

// PrepareLandmarkInsert prepares the upsert statement used by the ingest job
func PrepareLandmarkInsert(tx *sql.Tx) (*sql.Stmt, error) {
	return tx.Prepare(`
		INSERT INTO public.landmarks (name, category, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET category = EXCLUDED.category,
		    latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude`)
}
