package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DBDriver:           config.DriverSQLite,
		SQLitePath:         filepath.Join(t.TempDir(), "catalog.db"),
		DBMaxOpenConns:     4,
		DBMaxIdleConns:     2,
		DBConnMaxLifetime:  time.Minute,
		DBConnectAttempts:  2,
		DBConnectRetryWait: time.Millisecond,
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "catalog.db?_foreign_keys=on", SQLiteDSN("catalog.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", SQLiteDSN("file:x?mode=memory"))
	assert.Equal(t, "file:x?_fk=1", SQLiteDSN("file:x?_fk=1"))
}

func TestDriverFor(t *testing.T) {
	d, err := DriverFor(config.DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = DriverFor(config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	_, err = DriverFor("oracle")
	assert.Error(t, err)
}

func TestConnectWithRetry_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	database, err := ConnectWithRetry(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })

	require.NoError(t, Migrate(database))
	require.NoError(t, Ping(context.Background(), database))

	for _, m := range model.AllModels() {
		assert.True(t, database.Migrator().HasTable(m), "%T table missing", m)
	}
}

func TestConnectWithRetry_GivesUp(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DBDriver = "oracle"

	_, err := ConnectWithRetry(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestConnectWithRetry_StopsOnCancel(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DBDriver = "oracle"
	cfg.DBConnectAttempts = 5
	cfg.DBConnectRetryWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ConnectWithRetry(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForeignKeysEnforced(t *testing.T) {
	cfg := sqliteConfig(t)

	database, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })
	require.NoError(t, Migrate(database))

	err = database.Create(&model.Author{FirstName: "Orphan", LastName: "Author", CountryID: 999}).Error
	assert.Error(t, err)
}
