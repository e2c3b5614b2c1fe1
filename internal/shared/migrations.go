package shared

import (
	"database/sql"
	"fmt"
)

// lookups caches resolved source-platform metadata keyed by platform, record
// kind, and native id. Match results have no table.
const createLookupsTable = `
CREATE TABLE IF NOT EXISTS lookups (
	id TEXT PRIMARY KEY,
	platform TEXT NOT NULL,
	kind TEXT NOT NULL,
	native_id TEXT NOT NULL,
	payload TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL,
	UNIQUE(platform, kind, native_id)
);`

const createLookupsIndex = `
CREATE INDEX IF NOT EXISTS idx_lookups_fetched_at ON lookups(fetched_at);`

// Migrate creates the schema for the lookup cache if it does not exist yet.
// Safe to run on every startup.
func Migrate(db *sql.DB) error {
	for _, stmt := range []string{createLookupsTable, createLookupsIndex} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
