package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Load the postgres driver
)

const decisionsSchema = `
	CREATE TABLE IF NOT EXISTS decisions (
		id          UUID PRIMARY KEY,
		board       CHAR(64) NOT NULL,
		player      SMALLINT NOT NULL,
		move        SMALLINT[],
		algorithm   TEXT NOT NULL,
		empty_cells SMALLINT NOT NULL,
		duration_ms BIGINT NOT NULL,
		cached      BOOLEAN NOT NULL DEFAULT false,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	ALTER TABLE decisions ADD COLUMN IF NOT EXISTS cached BOOLEAN NOT NULL DEFAULT false
`

// InitPostgres initializes the database connection and creates the decision log table.
func InitPostgres(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if _, err = db.Exec(decisionsSchema); err != nil {
		return nil, fmt.Errorf("error creating decisions table: %w", err)
	}

	return db, nil
}
