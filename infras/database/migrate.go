package database

//nolint:revive
import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migrateDatabase "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"github.com/laiba166-shaikh/AI-400-task-manager/migrations"
)

const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStepUp = "step-up"
	MigrateDrop   = "drop"
)

var ErrUnknownMigrateAction = errors.New("unknown migrate action, use 'up', 'down', 'drop' or 'step-up'")

// getMigrator opens a dedicated handle: closing the migrator may close the
// handle it was built from, so it must never share the application pool.
func getMigrator(target Target, table string) (*migrate.Migrate, *sql.DB, error) {
	db, err := sql.Open(target.Driver, target.DataSource)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening migration connection: %w", err)
	}

	var driver migrateDatabase.Driver

	switch target.Driver {
	case DriverPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{MigrationsTable: table})
	case DriverSQLite:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: table})
	default:
		err = fmt.Errorf("%w: driver %q", ErrUnsupportedURL, target.Driver)
	}

	if err != nil {
		db.Close()

		return nil, nil, fmt.Errorf("error creating migrate driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, target.Driver)
	if err != nil {
		driver.Close()
		db.Close()

		return nil, nil, fmt.Errorf("error reading embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, target.Driver, driver)
	if err != nil {
		driver.Close()
		db.Close()

		return nil, nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, db, nil
}

// Migrate applies action against target using the embedded migration files.
func Migrate(target Target, table, action string) error {
	mig, db, err := getMigrator(target, table)
	if err != nil {
		return err
	}

	defer db.Close()
	defer mig.Close()

	switch action {
	case MigrateUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case MigrateDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case MigrateStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case MigrateDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownMigrateAction, action)
}
