package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

// Up00001 creates the landmark index table
func Up00001(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE public.landmarks
		(
			name text COLLATE pg_catalog."default" NOT NULL,
			category text COLLATE pg_catalog."default" NOT NULL DEFAULT '',
			latitude double precision NOT NULL,
			longitude double precision NOT NULL,
			CONSTRAINT "landmarks_pk_name" PRIMARY KEY (name)
		)
		WITH (
			OIDS = FALSE
		);

		CREATE INDEX idx_landmarks_coords
		ON public.landmarks (latitude, longitude);
		`)
	return err
}

// Down00001 undoes the db changes
func Down00001(tx *sql.Tx) error {
	_, err := tx.Exec(`
		DROP TABLE IF EXISTS public.landmarks;
		`)
	return err
}
