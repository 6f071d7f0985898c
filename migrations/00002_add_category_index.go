package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00002, Down00002)
}

// Up00002 indexes the category column for filtered lookups
func Up00002(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX idx_landmarks_category
		ON public.landmarks (category);
		`)
	return err
}

// Down00002 undoes the db changes
func Down00002(tx *sql.Tx) error {
	_, err := tx.Exec(`
		DROP INDEX IF EXISTS idx_landmarks_category;
		`)
	return err
}
