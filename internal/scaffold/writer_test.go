package scaffold_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiba166-shaikh/AI-400-task-manager/internal/scaffold"
)

func TestWrite_NothingWrittenWhenAnyExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("keep"), 0o600))

	files := []scaffold.File{
		{Path: "a.txt", Content: []byte("a")},
		{Path: "b.txt", Content: []byte("b")},
	}

	_, err := scaffold.Write(dir, files, false)
	require.ErrorIs(t, err, scaffold.ErrFileExists)

	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))

	kept, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(kept))
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer

	err := scaffold.Print(&buf, []scaffold.File{
		{Path: "a.go", Content: []byte("package a\n")},
		{Path: "b.go", Content: []byte("package b\n")},
	})
	require.NoError(t, err)

	assert.Equal(t, "// ---- a.go ----\npackage a\n\n// ---- b.go ----\npackage b\n", buf.String())
}
