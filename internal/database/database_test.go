package database

import (
	"context"
	"path/filepath"
	"testing"

	"class-companion/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) config.DBConfig {
	t.Helper()
	return config.DBConfig{Driver: DriverSQLite, DSN: "file:" + filepath.Join(t.TempDir(), "companion.db")}
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DBConfig{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)

	_, err = Open(context.Background(), config.DBConfig{Driver: DriverSQLite})
	assert.Error(t, err)
}

func TestRunMigrations_SQLiteUpAndDown(t *testing.T) {
	db, err := Open(context.Background(), openTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db, DriverSQLite, Up))
	require.NoError(t, RunMigrations(db, DriverSQLite, Up), "re-running up is a no-op")

	_, err = db.Exec(`INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, "k", "v")
	require.NoError(t, err)

	var value string
	require.NoError(t, db.Get(&value, `SELECT entry_value FROM kv_entries WHERE entry_key = ?`, "k"))
	assert.Equal(t, "v", value)

	require.NoError(t, RunMigrations(db, DriverSQLite, Down))
	_, err = db.Exec(`SELECT 1 FROM kv_entries`)
	assert.Error(t, err, "table should be dropped")
}

func TestRunMigrations_OracleDownUnsupported(t *testing.T) {
	err := RunMigrations(nil, DriverOracle, Down)
	assert.Error(t, err)
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	assert.Error(t, RunMigrations(nil, "postgres", Up))
}
