package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// File is one rendered output, Path relative to the directory it is written under.
type File struct {
	Path    string
	Content []byte
}

// Write writes files under dir. Nothing is written when any target exists
// and force is false.
func Write(dir string, files []File, force bool) ([]string, error) {
	if !force {
		for _, file := range files {
			target := filepath.Join(dir, file.Path)

			exists, err := fileExists(target)
			if err != nil {
				return nil, err
			}

			if exists {
				return nil, fmt.Errorf("%w: %s", ErrFileExists, target)
			}
		}
	}

	written := make([]string, 0, len(files))

	for _, file := range files {
		target := filepath.Join(dir, file.Path)
		if err := writeFile(target, file.Content); err != nil {
			return written, err
		}

		written = append(written, target)
	}

	return written, nil
}

// WriteMissing writes files under dir, skipping the ones that already exist unless force is set.
func WriteMissing(dir string, files []File, force bool) (written, skipped []string, err error) {
	for _, file := range files {
		target := filepath.Join(dir, file.Path)

		if !force {
			exists, err := fileExists(target)
			if err != nil {
				return written, skipped, err
			}

			if exists {
				skipped = append(skipped, target)

				continue
			}
		}

		if err := writeFile(target, file.Content); err != nil {
			return written, skipped, err
		}

		written = append(written, target)
	}

	return written, skipped, nil
}

// Print writes files to w one after another, each preceded by its path.
func Print(w io.Writer, files []File) error {
	for i, file := range files {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("failed to print %s: %w", file.Path, err)
			}
		}

		if _, err := fmt.Fprintf(w, "// ---- %s ----\n%s", file.Path, file.Content); err != nil {
			return fmt.Errorf("failed to print %s: %w", file.Path, err)
		}
	}

	return nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, content, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
}
