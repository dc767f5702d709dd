package scaffold_test

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiba166-shaikh/AI-400-task-manager/internal/scaffold"
)

func TestProject(t *testing.T) {
	tests := []struct {
		kind      string
		wantPaths []string
	}{
		{kind: "hello", wantPaths: []string{"go.mod", "main.go"}},
		{kind: "crud", wantPaths: []string{"go.mod", "main.go"}},
		{kind: "modular", wantPaths: []string{"go.mod", "items/handler.go", "items/model.go", "items/store.go", "main.go"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			files, err := scaffold.Project(tt.kind, "example.com/starter")
			require.NoError(t, err)

			paths := make([]string, len(files))
			for i, file := range files {
				paths[i] = file.Path

				if strings.HasSuffix(file.Path, ".go") {
					_, err := parser.ParseFile(token.NewFileSet(), file.Path, file.Content, parser.AllErrors)
					assert.NoError(t, err, file.Path)
				}
			}

			assert.ElementsMatch(t, tt.wantPaths, paths)
		})
	}
}

func TestProject_Write(t *testing.T) {
	dir := t.TempDir()

	files, err := scaffold.Project("modular", "example.com/starter")
	require.NoError(t, err)

	written, err := scaffold.Write(dir, files, false)
	require.NoError(t, err)
	assert.Contains(t, written, filepath.Join(dir, "items", "store.go"))

	_, err = scaffold.Write(dir, files, false)
	require.ErrorIs(t, err, scaffold.ErrFileExists)

	_, err = scaffold.Write(dir, files, true)
	require.NoError(t, err)
}

func TestProject_Unknown(t *testing.T) {
	_, err := scaffold.Project("django", "example.com/starter")
	require.ErrorIs(t, err, scaffold.ErrUnknownProject)

	assert.Equal(t, []string{"crud", "hello", "modular"}, scaffold.ProjectKinds())
}
