package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	sqliteMemory      = ":memory:"
	sqliteBusyTimeout = "_pragma=busy_timeout(5000)"
)

var ErrUnsupportedURL = errors.New("unsupported database url")

var (
	postgresSchemes = []string{
		"postgresql+asyncpg://",
		"postgresql+psycopg://",
		"postgresql://",
		"postgres://",
	}
	sqliteSchemes = []string{
		"sqlite+aiosqlite://",
		"sqlite://",
	}
)

// Target is a connection string rewritten for a concrete database/sql driver.
type Target struct {
	Driver     string
	DataSource string
}

// InMemory reports whether the target is a private in-memory sqlite database.
func (t Target) InMemory() bool {
	return t.Driver == DriverSQLite && strings.Contains(t.DataSource, sqliteMemory)
}

// ParseURL rewrites a DATABASE_URL into a driver name and DSN.
//
//	postgresql+asyncpg://u:p@host/db?ssl=require  -> postgres, postgres://u:p@host/db?sslmode=require
//	sqlite:///./tasks.db                          -> sqlite, ./tasks.db?_pragma=busy_timeout(5000)
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("%w: empty", ErrUnsupportedURL)
	}

	for _, scheme := range postgresSchemes {
		if strings.HasPrefix(raw, scheme) {
			return parsePostgres("postgres://" + strings.TrimPrefix(raw, scheme))
		}
	}

	for _, scheme := range sqliteSchemes {
		if strings.HasPrefix(raw, scheme) {
			return parseSQLite(strings.TrimPrefix(raw, scheme))
		}
	}

	if strings.HasPrefix(raw, "file:") {
		return Target{Driver: DriverSQLite, DataSource: raw}, nil
	}

	scheme, _, _ := strings.Cut(raw, "://")

	return Target{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, scheme)
}

func parsePostgres(raw string) (Target, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("failed to parse postgres url: %w", err)
	}

	query := parsed.Query()

	// lib/pq spells it sslmode
	if ssl := query.Get("ssl"); ssl != "" {
		if query.Get("sslmode") == "" {
			query.Set("sslmode", ssl)
		}

		query.Del("ssl")
	}

	query.Del("channel_binding")

	parsed.RawQuery = query.Encode()

	return Target{Driver: DriverPostgres, DataSource: parsed.String()}, nil
}

// parseSQLite receives what follows "sqlite://". A leading "/" separates the
// empty host from the path, so "sqlite:///tasks.db" is relative and
// "sqlite:////tmp/tasks.db" is absolute.
func parseSQLite(rest string) (Target, error) {
	path := strings.TrimPrefix(rest, "/")

	path, rawQuery, _ := strings.Cut(path, "?")
	if path == "" || path == sqliteMemory {
		return Target{Driver: DriverSQLite, DataSource: sqliteMemory}, nil
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Target{}, fmt.Errorf("failed to parse sqlite url: %w", err)
	}

	dsn := path

	params := []string{}
	if rawQuery != "" {
		params = append(params, rawQuery)
	}

	if !query.Has("_pragma") {
		params = append(params, sqliteBusyTimeout)
	}

	if len(params) > 0 {
		dsn += "?" + strings.Join(params, "&")
	}

	return Target{Driver: DriverSQLite, DataSource: dsn}, nil
}
