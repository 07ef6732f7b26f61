package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, name string) *DB {
	t.Helper()
	db, err := Open(t.TempDir(), name, ProfileStandard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *DB, table string) bool {
	t.Helper()
	var n int
	err := db.Conn().QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestOpen_AppliesSchema(t *testing.T) {
	history := openTestDB(t, NameHistory)
	assert.True(t, tableExists(t, history, "daily_prices"))
	assert.Equal(t, NameHistory, history.Name())
	assert.Equal(t, ProfileStandard, history.Profile())
	assert.True(t, filepath.IsAbs(history.Path()))

	portfolio := openTestDB(t, NamePortfolio)
	assert.True(t, tableExists(t, portfolio, "holdings"))
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t, NameHistory)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}

func TestMigrate_UnknownNameIsNoop(t *testing.T) {
	db, err := New(Config{Path: filepath.Join(t.TempDir(), "x.db"), Name: "scratch"})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())
	assert.False(t, tableExists(t, db, "daily_prices"))
	assert.Equal(t, ProfileStandard, db.Profile())
}

func TestWithTransaction(t *testing.T) {
	db := openTestDB(t, NamePortfolio)
	insert := func(tx *sql.Tx, sym string) error {
		_, err := tx.Exec("INSERT INTO holdings (symbol, quantity, current_value, updated_at) VALUES (?, '1', '1', 0)", sym)
		return err
	}
	count := func() int {
		var n int
		require.NoError(t, db.Conn().QueryRow("SELECT COUNT(*) FROM holdings").Scan(&n))
		return n
	}

	require.NoError(t, WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		return insert(tx, "A")
	}))
	assert.Equal(t, 1, count())

	boom := errors.New("boom")
	err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		require.NoError(t, insert(tx, "B"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, count())

	err = WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		require.NoError(t, insert(tx, "C"))
		panic("oops")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in transaction")
	assert.Equal(t, 1, count())

	assert.Error(t, WithTransaction(nil, func(*sql.Tx) error { return nil }))
}

func TestHealthAndStats(t *testing.T) {
	db := openTestDB(t, NameHistory)

	require.NoError(t, db.HealthCheck(context.Background()))
	require.NoError(t, db.WALCheckpoint(""))

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Greater(t, stats.PageCount, int64(0))
	assert.Greater(t, stats.PageSize, int64(0))
}

func TestBuildConnectionString(t *testing.T) {
	std := buildConnectionString("/tmp/a.db", ProfileStandard)
	assert.True(t, strings.HasPrefix(std, "/tmp/a.db?_pragma=journal_mode(WAL)"))
	assert.Contains(t, std, "synchronous(NORMAL)")

	cache := buildConnectionString("file:mem?mode=memory", ProfileCache)
	assert.Contains(t, cache, "file:mem?mode=memory&_pragma=")
	assert.Contains(t, cache, "synchronous(OFF)")
}
