// Package catalog persists parsed documentation in SQLite so it can be
// searched and looked up without re-parsing sources.
package catalog

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is stored in PRAGMA user_version.
const SchemaVersion = 1

const createLibrariesTable = `
	CREATE TABLE IF NOT EXISTS libraries (
		source TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		indexed_at TEXT NOT NULL
	)`

const createFunctionsTable = `
	CREATE TABLE IF NOT EXISTS functions (
		function_id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL REFERENCES libraries(source) ON DELETE CASCADE,
		name TEXT NOT NULL,
		short_name TEXT NOT NULL,
		namespace TEXT NOT NULL,
		identifier TEXT NOT NULL,
		line INTEGER NOT NULL,
		description TEXT NOT NULL,
		signature TEXT NOT NULL,
		returns_type TEXT,
		returns_description TEXT,
		is_constructor INTEGER NOT NULL,
		is_static INTEGER NOT NULL,
		tags TEXT NOT NULL
	)`

const createParamsTable = `
	CREATE TABLE IF NOT EXISTS params (
		function_id INTEGER NOT NULL REFERENCES functions(function_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		description TEXT NOT NULL,
		optional INTEGER NOT NULL,
		default_value TEXT NOT NULL,
		PRIMARY KEY (function_id, position)
	)`

const createExamplesTable = `
	CREATE TABLE IF NOT EXISTS examples (
		function_id INTEGER NOT NULL REFERENCES functions(function_id) ON DELETE CASCADE,
		example_id INTEGER NOT NULL,
		input TEXT NOT NULL,
		expected TEXT NOT NULL,
		handler TEXT,
		PRIMARY KEY (function_id, example_id)
	)`

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_functions_name ON functions(name)",
	"CREATE INDEX IF NOT EXISTS idx_functions_short_name ON functions(short_name)",
	"CREATE INDEX IF NOT EXISTS idx_functions_namespace ON functions(namespace)",
	"CREATE INDEX IF NOT EXISTS idx_functions_source ON functions(source)",
}

// createSchema creates every table and index in one transaction and stamps
// the schema version.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	tables := []struct {
		name string
		ddl  string
	}{
		{"libraries", createLibrariesTable},
		{"functions", createFunctionsTable},
		{"params", createParamsTable},
		{"examples", createExamplesTable},
	}
	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}
	for i, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// schemaVersion returns 0 for a new database.
func schemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
