package db

import (
	"database/sql"
	_ "embed"
)

//go:embed seeds/compliments.sql
var seedComplimentsSQL string

// MigrateUp creates the compliments table and its indexes and seeds a few
// approved compliments. Every statement is idempotent.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS compliments (
    id               TEXT PRIMARY KEY,
    message          TEXT NOT NULL,
    sender           TEXT NOT NULL,
    created_at_ms    BIGINT NOT NULL,
    is_moderated     BOOLEAN NOT NULL DEFAULT FALSE,
    is_approved      BOOLEAN NOT NULL DEFAULT FALSE,
    moderation_flags JSONB
)`); err != nil {
		return err
	}

	indexes := []string{
		// approved compliments are the only ones read back
		`CREATE INDEX IF NOT EXISTS idx_compliments_approved ON compliments(is_approved) WHERE is_approved = TRUE`,
		`CREATE INDEX IF NOT EXISTS idx_compliments_created_at ON compliments(created_at_ms DESC)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	if _, err := db.Exec(seedComplimentsSQL); err != nil {
		return err
	}
	return nil
}
