package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "namaz.db")

	database, err := Open("sqlite", path+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	defer database.Close()

	var tables []string
	err = database.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('prayer_records', 'users') ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"prayer_records", "users"}, tables)

	require.NoError(t, MigrateDown(context.Background(), database.DB, "sqlite"))

	tables = nil
	err = database.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'users'`)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namaz.db")

	first, err := Open("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open("sqlite", path)
	require.NoError(t, err)
	defer second.Close()

	var n int
	require.NoError(t, second.Get(&n, `SELECT COUNT(*) FROM prayer_records`))
	assert.Zero(t, n)
}

func TestGetDialect(t *testing.T) {
	assert.Equal(t, goose.DialectSQLite3, getDialect("sqlite"))
	assert.Equal(t, goose.DialectPostgres, getDialect("pgx"))
	assert.Equal(t, goose.DialectMySQL, getDialect("mysql"))
}
