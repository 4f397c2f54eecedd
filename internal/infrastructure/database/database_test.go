package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/core/internal/infrastructure/config"
	"github.com/teamboard/core/internal/ports"
)

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	return config.DatabaseConfig{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "board.db")}
}

func TestNewRecordStoreSQLite(t *testing.T) {
	store, err := NewRecordStore(sqliteConfig(t))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, HealthCheck(ctx, store))

	id, err := store.Create(ctx, "members", ports.Document{"name": "kim"})
	require.NoError(t, err)
	rec, err := store.Get(ctx, "members", id)
	require.NoError(t, err)
	assert.Equal(t, "kim", rec.Data["name"])
}

func TestNewRecordStoreUnknownDriver(t *testing.T) {
	_, err := NewRecordStore(config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestMigrateSQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	require.NoError(t, Migrate(cfg, Up))
	require.NoError(t, Migrate(cfg, Down))
	require.NoError(t, Migrate(cfg, Up))
	assert.Error(t, Migrate(cfg, Direction("sideways")))

	_, _, err := Version(cfg)
	assert.Error(t, err)
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "0001_records.up.sql")
	assert.Contains(t, names, "0001_records.down.sql")
}
