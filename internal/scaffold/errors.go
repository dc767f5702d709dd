package scaffold

import "errors"

var (
	ErrInvalidResourceName = errors.New("resource name must be PascalCase (e.g., Product, UserProfile)")
	ErrFileExists          = errors.New("file already exists, use --force to overwrite")
	ErrSourceNotFound      = errors.New("source file not found")
	ErrPackageDirNotFound  = errors.New("package directory not found")
	ErrNotGoSource         = errors.New("source file must be a Go file (.go)")
	ErrUnknownDialect      = errors.New("unknown dialect, use 'postgres' or 'sqlite'")
	ErrUnknownProject      = errors.New("unknown project template, use 'hello', 'crud' or 'modular'")
)
