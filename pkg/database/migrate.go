package database

import (
	"database/sql"
	"fmt"
	"os"
)

func Migrate(db *sql.DB) error {
	return MigrateFrom(db, "docs/schema.sql")
}

// MigrateFrom applies a schema from an explicit path. One-shot commands run
// from arbitrary working directories use this instead of Migrate.
func MigrateFrom(db *sql.DB, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
