package database

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/laiba166-shaikh/AI-400-task-manager/config"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel"
)

var errConnectFailed = errors.New("failed connecting to database")

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Connection owns the process-wide pool. Sessions are opened per unit of work.
type Connection struct {
	DB     *sqlx.DB
	Target Target
	echo   bool
	otel   otel.Otel
}

// New opens the pool described by DATABASE_URL (or DB_URL), retrying the
// initial connect DB_MAX_RETRY times.
func New(config *config.Config, otl otel.Otel) (*Connection, error) {
	target, err := ParseURL(config.ConnectionString())
	if err != nil {
		return nil, err
	}

	db, err := connect(target, config.DB.MaxRetry, config.DB.RetryWaitTime)
	if err != nil {
		return nil, err
	}

	configurePool(db, target, config)

	return &Connection{
		DB:     db,
		Target: target,
		echo:   config.SQLEcho,
		otel:   otl,
	}, nil
}

// NewWithDB wraps an existing handle, used by tests and tools that manage the pool themselves.
func NewWithDB(db *sqlx.DB, target Target, echo bool, otl otel.Otel) *Connection {
	return &Connection{DB: db, Target: target, echo: echo, otel: otl}
}

func connect(target Target, maxRetry, waitTime int) (*sqlx.DB, error) {
	maxRetry = max(maxRetry, 1)

	var lastErr error

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect(target.Driver, target.DataSource)
		if err == nil {
			log.
				Info().
				Str("driver", target.Driver).
				Msg("Connected to database")

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("driver", target.Driver).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		if retry < maxRetry-1 {
			time.Sleep(time.Duration(waitTime) * time.Second)
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", errConnectFailed, maxRetry, lastErr)
}

func configurePool(db *sqlx.DB, target Target, config *config.Config) {
	// every connection to :memory: is a separate database
	if target.InMemory() {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		return
	}

	db.SetMaxIdleConns(config.DB.PoolSize)
	db.SetMaxOpenConns(config.DB.PoolSize + config.DB.MaxOverflow)
	db.SetConnMaxLifetime(time.Duration(config.DB.PoolRecycleSeconds) * time.Second)
}

// Begin opens a session bound to one transaction. Callers must defer Close.
func (c *Connection) Begin(ctx context.Context) (Session, error) {
	tx, err := c.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin session: %w", err)
	}

	return &session{
		tx:   tx,
		echo: c.echo,
		otel: c.otel,
	}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close disposes the pool.
func (c *Connection) Close() error {
	if err := c.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Info().Msg("Database connection closed")

	return nil
}
