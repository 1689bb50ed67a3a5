package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// schemaVersion is the current persisted schema version. Older databases are
// upgraded in place by Migrate; the legacy flat phase columns from the v1
// schema are folded into the project_phases table exactly once.
const schemaVersion = 2

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schema_info (
		version INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'Proposed'
		           CHECK(status IN ('Proposed','Accepted','Deprecated','Superseded')),
		context    TEXT NOT NULL DEFAULT '',
		phase      INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_phases (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		phase      INTEGER NOT NULL CHECK(phase BETWEEN 1 AND 3),
		prompt     TEXT NOT NULL DEFAULT '',
		response   TEXT NOT NULL DEFAULT '',
		completed  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (project_id, phase)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_phases_project ON project_phases(project_id)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateLegacyFlatPhases(db); err != nil {
		return fmt.Errorf("folding legacy flat phase columns: %w", err)
	}
	if err := stampSchemaVersion(db); err != nil {
		return fmt.Errorf("stamping schema version: %w", err)
	}
	return nil
}

// migrateLegacyFlatPhases moves phase1_output/phase2_output/phase3_output
// columns from a v1 projects table into project_phases rows. The columns stay
// behind emptied out (SQLite cannot drop them cheaply) and are never read
// again. A database created at v2 has no such columns and this is a no-op.
func migrateLegacyFlatPhases(db *sql.DB) error {
	var createSQL string
	err := db.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'projects'`).Scan(&createSQL)
	if err != nil {
		return fmt.Errorf("loading projects schema: %w", err)
	}
	if !strings.Contains(strings.ToLower(createSQL), "phase1_output") {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for phase := 1; phase <= 3; phase++ {
		col := fmt.Sprintf("phase%d_output", phase)
		query := fmt.Sprintf(`INSERT INTO project_phases (project_id, phase, prompt, response, completed)
			SELECT id, %d, '', %s, 1 FROM projects
			WHERE %s IS NOT NULL AND %s != ''
			ON CONFLICT(project_id, phase) DO NOTHING`, phase, col, col, col)
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("copying %s: %w", col, err)
		}
		clear := fmt.Sprintf(`UPDATE projects SET %s = ''`, col)
		if _, err := tx.Exec(clear); err != nil {
			return fmt.Errorf("clearing %s: %w", col, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing legacy phase migration: %w", err)
	}
	committed = true
	return nil
}

func stampSchemaVersion(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_info`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		_, err := db.Exec(`INSERT INTO schema_info (version) VALUES (?)`, schemaVersion)
		return err
	}
	_, err := db.Exec(`UPDATE schema_info SET version = ?`, schemaVersion)
	return err
}
