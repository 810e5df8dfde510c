package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// OpenDB already migrated once.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, "idx_kv_entries_updated").Scan(&name)
	require.NoError(t, err)
}

func TestMigrate_KeyIsPrimary(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO kv_entries (key, value, updated_at) VALUES ('a', '1', 't')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO kv_entries (key, value, updated_at) VALUES ('a', '2', 't')`)
	assert.Error(t, err, "keys must be unique")
}

func TestMigrate_ValueNotNull(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO kv_entries (key, value, updated_at) VALUES ('a', NULL, 't')`)
	assert.Error(t, err)
}

func TestMigrate_InMemoryJournalMode(t *testing.T) {
	// In-memory SQLite ignores the WAL pragma and reports "memory".
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}
