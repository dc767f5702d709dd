// Package dbtest provisions migrated sqlite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laiba166-shaikh/AI-400-task-manager/config"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel/mocks"
)

// Config returns a configuration pointing at a fresh sqlite file under t.TempDir().
func Config(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.DatabaseURL = "sqlite:///" + filepath.Join(t.TempDir(), "tasks.db")
	cfg.DB.PoolSize = 5
	cfg.DB.MaxOverflow = 10
	cfg.DB.PoolRecycleSeconds = 3600
	cfg.DB.MaxRetry = 1
	cfg.DB.MigrationTable = "schema_migrations"
	cfg.App.Name = "Task Manager API"
	cfg.App.Version = "1.0.0"
	cfg.Cache.TTL = 60

	return cfg
}

// New opens a connection to a migrated sqlite database that is closed when the test ends.
func New(t *testing.T) *database.Connection {
	t.Helper()

	return NewWithConfig(t, Config(t))
}

func NewWithConfig(t *testing.T, cfg *config.Config) *database.Connection {
	t.Helper()

	target, err := database.ParseURL(cfg.ConnectionString())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(target, cfg.DB.MigrationTable, database.MigrateUp))

	conn, err := database.New(cfg, mocks.NewOtel())
	require.NoError(t, err)

	t.Cleanup(func() { conn.Close() })

	return conn
}
