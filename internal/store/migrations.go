package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at     TEXT NOT NULL,
			command        TEXT NOT NULL,
			version        TEXT NOT NULL,
			dry_run        BOOLEAN NOT NULL DEFAULT false,
			files_scanned  INTEGER NOT NULL,
			files_modified INTEGER NOT NULL,
			files_skipped  INTEGER NOT NULL,
			files_failed   INTEGER NOT NULL,
			errors_before  INTEGER,
			errors_after   INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS rule_hits (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			rule   TEXT NOT NULL,
			hits   INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_rule_hits_run ON rule_hits(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rule_hits_rule ON rule_hits(rule)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
