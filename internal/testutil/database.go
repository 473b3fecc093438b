package testutil

import (
	"database/sql"
	"testing"

	"github.com/haatos/simple-lms/internal/settings"
	"github.com/haatos/simple-lms/internal/store"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory SQLite database closed with t.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)
	require.NoError(t, store.RunMigrations(db, settings.DriverSQLite))
	return db
}
