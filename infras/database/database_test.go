package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database/dbtest"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel/mocks"
)

func countTasks(t *testing.T, conn *database.Connection) int {
	t.Helper()

	var count int
	require.NoError(t, conn.DB.Get(&count, "SELECT COUNT(id) FROM tasks"))

	return count
}

func insertTask(ctx context.Context, session database.Session, title string) error {
	_, err := session.Exec(ctx,
		"INSERT INTO tasks (title, completed, created_at) VALUES (:title, :completed, :created_at)",
		map[string]any{"title": title, "completed": false, "created_at": time.Now().UTC()},
	)

	return err
}

func TestNew_UnsupportedURL(t *testing.T) {
	cfg := dbtest.Config(t)
	cfg.DatabaseURL = "mysql://root@localhost/tasks"

	_, err := database.New(cfg, mocks.NewOtel())
	assert.ErrorIs(t, err, database.ErrUnsupportedURL)
}

func TestConnection_CommitPersists(t *testing.T) {
	conn := dbtest.New(t)
	ctx := context.Background()

	require.NoError(t, conn.Ping(ctx))

	session, err := conn.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, insertTask(ctx, session, "Buy groceries"))
	require.NoError(t, session.Commit())
	require.NoError(t, session.Close())

	assert.Equal(t, 1, countTasks(t, conn))
}

func TestConnection_CloseWithoutCommitDiscards(t *testing.T) {
	conn := dbtest.New(t)
	ctx := context.Background()

	session, err := conn.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, insertTask(ctx, session, "Never saved"))
	require.NoError(t, session.Close())

	assert.Equal(t, 0, countTasks(t, conn))
}

func TestConnection_PoolSizing(t *testing.T) {
	cfg := dbtest.Config(t)
	cfg.DB.PoolSize = 3
	cfg.DB.MaxOverflow = 4

	conn := dbtest.NewWithConfig(t, cfg)

	assert.Equal(t, 7, conn.DB.Stats().MaxOpenConnections)
	assert.Equal(t, database.DriverSQLite, conn.Target.Driver)
}

func TestMigrate(t *testing.T) {
	cfg := dbtest.Config(t)

	target, err := database.ParseURL(cfg.ConnectionString())
	require.NoError(t, err)

	require.NoError(t, database.Migrate(target, cfg.DB.MigrationTable, database.MigrateUp))
	// re-running is a no-op
	require.NoError(t, database.Migrate(target, cfg.DB.MigrationTable, database.MigrateUp))

	conn, err := database.New(cfg, mocks.NewOtel())
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, 0, countTasks(t, conn))

	require.NoError(t, database.Migrate(target, cfg.DB.MigrationTable, database.MigrateDown))

	var count int
	assert.Error(t, conn.DB.Get(&count, "SELECT COUNT(id) FROM tasks"))

	require.NoError(t, database.Migrate(target, cfg.DB.MigrationTable, database.MigrateStepUp))
	assert.Equal(t, 0, countTasks(t, conn))

	require.NoError(t, database.Migrate(target, cfg.DB.MigrationTable, database.MigrateDrop))

	err = database.Migrate(target, cfg.DB.MigrationTable, "sideways")
	assert.ErrorIs(t, err, database.ErrUnknownMigrateAction)
}
