package database

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=./mocks/session_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/constant"
)

// Querier runs named queries (":name" placeholders) bound from a struct or map.
type Querier interface {
	Get(ctx context.Context, dest any, query string, arg any) error
	Select(ctx context.Context, dest any, query string, arg any) error
	Exec(ctx context.Context, query string, arg any) (sql.Result, error)
}

// Session is one unit of work. Nothing is persisted until Commit; Close
// rolls back an uncommitted session and is safe to call more than once.
type Session interface {
	Querier
	Commit() error
	Close() error
}

type SessionFactory interface {
	Begin(ctx context.Context) (Session, error)
}

type session struct {
	tx       *sqlx.Tx
	echo     bool
	otel     otel.Otel
	finished bool
}

func (s *session) bind(ctx context.Context, query string, arg any) (context.Context, otel.Scope, string, []any, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelDatabaseScopeName, constant.OtelDatabaseScopeName+".query")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if arg == nil {
		arg = map[string]any{}
	}

	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		scope.TraceError(err)

		return ctx, scope, "", nil, fmt.Errorf("failed to bind named query: %w", err)
	}

	bound = s.tx.Rebind(bound)

	if s.echo {
		log.Info().Str("query", bound).Interface("args", args).Msg("sql")
	}

	return ctx, scope, bound, args, nil
}

func (s *session) Get(ctx context.Context, dest any, query string, arg any) error {
	ctx, scope, bound, args, err := s.bind(ctx, query, arg)
	defer scope.End()

	if err != nil {
		return err
	}

	if err = s.tx.GetContext(ctx, dest, bound, args...); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			scope.TraceError(err)
		}

		return fmt.Errorf("failed to get row: %w", err)
	}

	return nil
}

func (s *session) Select(ctx context.Context, dest any, query string, arg any) error {
	ctx, scope, bound, args, err := s.bind(ctx, query, arg)
	defer scope.End()

	if err != nil {
		return err
	}

	if err = s.tx.SelectContext(ctx, dest, bound, args...); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to select rows: %w", err)
	}

	return nil
}

func (s *session) Exec(ctx context.Context, query string, arg any) (sql.Result, error) {
	ctx, scope, bound, args, err := s.bind(ctx, query, arg)
	defer scope.End()

	if err != nil {
		return nil, err
	}

	result, err := s.tx.ExecContext(ctx, bound, args...)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to execute statement: %w", err)
	}

	return result, nil
}

func (s *session) Commit() error {
	if s.finished {
		return sql.ErrTxDone
	}

	s.finished = true

	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}

	return nil
}

func (s *session) Close() error {
	if s.finished {
		return nil
	}

	s.finished = true

	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error().Err(err).Msg("failed to rollback session")

		return fmt.Errorf("failed to rollback session: %w", err)
	}

	return nil
}
