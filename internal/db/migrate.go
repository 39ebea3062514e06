package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Raw record payloads are stored as JSON documents: upstream field
// shapes are inconsistent by design and normalization happens on read,
// not on write.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS raw_records (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL CHECK (source IN ('billable', 'invoice', 'unbilled')),
		payload TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_raw_records_source ON raw_records(source, position)`,
	`CREATE TABLE IF NOT EXISTS cases (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		case_type TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Unknown',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cases_title ON cases(title)`,
	`CREATE INDEX IF NOT EXISTS idx_cases_type ON cases(case_type)`,
}

// Migrate runs all schema migrations. Statements are idempotent and
// re-run on every open.
func Migrate(conn *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
