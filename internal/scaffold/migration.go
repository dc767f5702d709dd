package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var migrationVersion = regexp.MustCompile(`^(\d+)_.+\.(up|down)\.sql$`)

// Migration renders the next numbered golang-migrate up/down pair creating
// res's table. dir is scanned for the highest existing version.
func Migration(res Resource, dialect, dir string) ([]File, error) {
	if dialect != DialectPostgres && dialect != DialectSQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	version, err := nextVersion(dir)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("%06d_create_%s_table", version, res.Table)

	up, err := render("migration/"+dialect+".up.sql.tmpl", base+".up.sql", res)
	if err != nil {
		return nil, err
	}

	down, err := render("migration/down.sql.tmpl", base+".down.sql", res)
	if err != nil {
		return nil, err
	}

	return []File{
		{Path: base + ".up.sql", Content: up},
		{Path: base + ".down.sql", Content: down},
	}, nil
}

func nextVersion(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 1, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to read migrations directory %s: %w", dir, err)
	}

	latest := 0

	for _, entry := range entries {
		match := migrationVersion.FindStringSubmatch(entry.Name())
		if entry.IsDir() || match == nil {
			continue
		}

		version, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		latest = max(latest, version)
	}

	return latest + 1, nil
}
