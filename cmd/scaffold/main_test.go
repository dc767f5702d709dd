package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoistFlags(t *testing.T) {
	commands := newApp().Commands

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "flags after the resource",
			args: []string{"scaffold", "crud", "Note", "--out", ".", "--force"},
			want: []string{"scaffold", "crud", "--out", ".", "--force", "Note"},
		},
		{
			name: "flags already in front",
			args: []string{"scaffold", "migration", "--dialect", "sqlite", "Note"},
			want: []string{"scaffold", "migration", "--dialect", "sqlite", "Note"},
		},
		{
			name: "inline value",
			args: []string{"scaffold", "migration", "Note", "--dialect=sqlite"},
			want: []string{"scaffold", "migration", "--dialect=sqlite", "Note"},
		},
		{
			name: "short alias with value",
			args: []string{"scaffold", "testgen", "calc.go", "-o", "calc_test.go"},
			want: []string{"scaffold", "testgen", "-o", "calc_test.go", "calc.go"},
		},
		{
			name: "two positionals keep their order",
			args: []string{"scaffold", "new", "crud", "--module", "example.com/api", "api"},
			want: []string{"scaffold", "new", "--module", "example.com/api", "crud", "api"},
		},
		{
			name: "double dash ends flags",
			args: []string{"scaffold", "tests", "--", "--weird-dir"},
			want: []string{"scaffold", "tests", "--weird-dir"},
		},
		{
			name: "unknown command is left alone",
			args: []string{"scaffold", "help", "crud", "--out", "."},
			want: []string{"scaffold", "help", "crud", "--out", "."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hoistFlags(tt.args, commands))
		})
	}
}

func TestRun_MigrationFlagsAfterResource(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, run([]string{"scaffold", "migration", "Note", "--dialect", "sqlite", "--dir", dir}))

	up, err := os.ReadFile(filepath.Join(dir, "000001_create_notes_table.up.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(up), "AUTOINCREMENT")
}

func TestRun_CrudFlagsAfterResource(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, run([]string{"scaffold", "crud", "Note", "--out", dir}))

	assert.FileExists(t, filepath.Join(dir, "internal", "domains", "note", "model", "model.go"))
	assert.FileExists(t, filepath.Join(dir, "internal", "handlers", "note", "handler.go"))
}

func TestRun_RejectsExtraArguments(t *testing.T) {
	dir := t.TempDir()

	err := run([]string{"scaffold", "migration", "Note", "Extra", "--dir", dir})
	require.ErrorIs(t, err, errUnexpectedArgument)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRun_MissingArgument(t *testing.T) {
	err := run([]string{"scaffold", "crud"})
	require.ErrorIs(t, err, errMissingArgument)
}
