package scaffold

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

type suiteData struct {
	Package string
}

// TestSuite renders main_test.go and testdata/README.md for the package in dir.
// The package clause is taken from the first Go file found there, falling
// back to the directory name.
func TestSuite(dir string) ([]File, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPackageDirNotFound, dir)
	}

	data := suiteData{Package: packageName(dir)}

	mainTest, err := render("tests/main_test.go.tmpl", "main_test.go", data)
	if err != nil {
		return nil, err
	}

	readme, err := render("tests/README.md.tmpl", "README.md", data)
	if err != nil {
		return nil, err
	}

	return []File{
		{Path: "main_test.go", Content: mainTest},
		{Path: filepath.Join("testdata", "README.md"), Content: readme},
	}, nil
}

func packageName(dir string) string {
	matches, _ := filepath.Glob(filepath.Join(dir, "*.go"))

	for _, match := range matches {
		if strings.HasSuffix(match, "_test.go") {
			continue
		}

		file, err := parser.ParseFile(token.NewFileSet(), match, nil, parser.PackageClauseOnly)
		if err == nil {
			return file.Name.Name
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	return sanitizePackage(filepath.Base(abs))
}

func sanitizePackage(name string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9' && b.Len() > 0) {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "main"
	}

	return b.String()
}

