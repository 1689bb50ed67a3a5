package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestOpenDB_CreatesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"projects", "project_phases", "schema_info"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var version int
	require.NoError(t, database.QueryRow(`SELECT version FROM schema_info`).Scan(&version))
	assert.Equal(t, schemaVersion, version)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM schema_info`).Scan(&count))
	assert.Equal(t, 1, count, "schema_info should hold a single row")
}

func TestMigrate_FoldsLegacyFlatPhaseColumns(t *testing.T) {
	database, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer database.Close()

	// A v1 database: flat phaseN_output columns, no project_phases table.
	_, err = database.Exec(`CREATE TABLE projects (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'Proposed',
		context       TEXT NOT NULL DEFAULT '',
		phase         INTEGER NOT NULL DEFAULT 1,
		phase1_output TEXT,
		phase2_output TEXT,
		phase3_output TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO projects (id, title, phase, phase1_output, phase2_output, created_at, updated_at)
		VALUES ('p1', 'Legacy', 3, 'draft text', 'review text', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(database))

	rows, err := database.Query(`SELECT phase, response, completed FROM project_phases WHERE project_id = 'p1' ORDER BY phase`)
	require.NoError(t, err)
	defer rows.Close()

	type rec struct {
		phase     int
		response  string
		completed bool
	}
	var got []rec
	for rows.Next() {
		var r rec
		require.NoError(t, rows.Scan(&r.phase, &r.response, &r.completed))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	require.Len(t, got, 2, "only non-empty legacy outputs should migrate")
	assert.Equal(t, rec{1, "draft text", true}, got[0])
	assert.Equal(t, rec{2, "review text", true}, got[1])

	// The legacy columns are emptied so a re-run migrates nothing twice.
	require.NoError(t, Migrate(database))
	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM project_phases WHERE project_id = 'p1'`).Scan(&count))
	assert.Equal(t, 2, count)
}
