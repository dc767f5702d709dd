package database_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel/mocks"
)

func newMockConnection(t *testing.T, echo bool) (*database.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	target := database.Target{Driver: database.DriverPostgres, DataSource: "sqlmock"}

	return database.NewWithDB(sqlx.NewDb(db, database.DriverPostgres), target, echo, mocks.NewOtel()), mock
}

type row struct {
	ID    int64  `db:"id"`
	Title string `db:"title"`
}

func TestSession_GetBindsNamedArgs(t *testing.T) {
	conn, mock := newMockConnection(t, false)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, title FROM tasks WHERE id = $1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(7, "Walk the dog"))
	mock.ExpectCommit()

	session, err := conn.Begin(ctx)
	require.NoError(t, err)
	defer session.Close()

	var got row
	err = session.Get(ctx, &got, "SELECT id, title FROM tasks WHERE id = :id", map[string]any{"id": int64(7)})
	require.NoError(t, err)
	assert.Equal(t, row{ID: 7, Title: "Walk the dog"}, got)

	require.NoError(t, session.Commit())
	require.NoError(t, session.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_GetNoRows(t *testing.T) {
	conn, mock := newMockConnection(t, false)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, title FROM tasks WHERE id = $1").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))
	mock.ExpectRollback()

	session, err := conn.Begin(ctx)
	require.NoError(t, err)

	var got row
	err = session.Get(ctx, &got, "SELECT id, title FROM tasks WHERE id = :id", map[string]any{"id": int64(99)})
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	require.NoError(t, session.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_CloseRollsBackUncommitted(t *testing.T) {
	conn, mock := newMockConnection(t, false)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tasks WHERE id = $1").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	session, err := conn.Begin(ctx)
	require.NoError(t, err)

	result, err := session.Exec(ctx, "DELETE FROM tasks WHERE id = :id", map[string]any{"id": int64(1)})
	require.NoError(t, err)

	affected, err := result.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_CommitTwice(t *testing.T) {
	conn, mock := newMockConnection(t, false)

	mock.ExpectBegin()
	mock.ExpectCommit()

	session, err := conn.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, session.Commit())
	assert.ErrorIs(t, session.Commit(), sql.ErrTxDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_ExecError(t *testing.T) {
	conn, mock := newMockConnection(t, false)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tasks SET completed = $1").
		WithArgs(true).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	session, err := conn.Begin(ctx)
	require.NoError(t, err)
	defer session.Close()

	_, err = session.Exec(ctx, "UPDATE tasks SET completed = :completed", map[string]any{"completed": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSession_EchoLogsStatements(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	conn, mock := newMockConnection(t, true)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT(id) FROM tasks").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	session, err := conn.Begin(ctx)
	require.NoError(t, err)
	defer session.Close()

	var count int
	require.NoError(t, session.Get(ctx, &count, "SELECT COUNT(id) FROM tasks", nil))
	assert.Equal(t, 3, count)
	assert.Contains(t, buf.String(), "SELECT COUNT(id) FROM tasks")
}

func TestSession_BindError(t *testing.T) {
	conn, mock := newMockConnection(t, false)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	session, err := conn.Begin(ctx)
	require.NoError(t, err)
	defer session.Close()

	var got row
	err = session.Get(ctx, &got, "SELECT id FROM tasks WHERE id = :id", map[string]any{"other": 1})
	assert.Error(t, err)
}
