package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var schemaFiles embed.FS

// MigrateUp applies every .up.sql file in name order. Migrations are
// idempotent (CREATE TABLE IF NOT EXISTS) so reruns on an existing
// database are safe.
func MigrateUp(db *sql.DB) error {
	return applySchema(db, ".up.sql")
}

// MigrateDown applies every .down.sql file in name order, tearing the
// schema back out.
func MigrateDown(db *sql.DB) error {
	return applySchema(db, ".down.sql")
}

func applySchema(db *sql.DB, suffix string) error {
	names, err := fs.Glob(schemaFiles, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		script, err := schemaFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(script)); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}
	return nil
}
