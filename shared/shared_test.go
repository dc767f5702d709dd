package shared_test

import (
	"reflect"
	"testing"

	"github.com/laiba166-shaikh/AI-400-task-manager/shared"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/dto"
)

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		parts    []any
		expected string
	}{
		{name: "single part", parts: []any{"task"}, expected: "task"},
		{name: "mixed parts", parts: []any{"task", int64(42)}, expected: "task:42"},
		{name: "limiter key", parts: []any{"limiter", "127.0.0.1", "curl/8.0"}, expected: "limiter:127.0.0.1:curl/8.0"},
		{name: "no parts", parts: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.BuildCacheKey(tt.parts...); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFilterByID(t *testing.T) {
	tests := []struct {
		name     string
		id       any
		fieldID  string
		table    string
		expected dto.FilterGroup
	}{
		{
			name:    "integer id",
			id:      int64(123),
			fieldID: "id",
			table:   "tasks",
			expected: dto.FilterGroup{
				Filters: []dto.Filter{{Field: "id", Value: int64(123), Table: "tasks"}},
			},
		},
		{
			name:    "filter with empty table",
			id:      "456",
			fieldID: "id",
			table:   "",
			expected: dto.FilterGroup{
				Filters: []dto.Filter{{Field: "id", Value: "456"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.FilterByID(tt.id, tt.fieldID, tt.table)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, result)
			}

			where, args := result.GetWhereClause()
			if where != "(tasks.id = :id)" && tt.table == "tasks" {
				t.Errorf("unexpected where clause %q", where)
			}

			if args["id"] != tt.id {
				t.Errorf("expected arg id to be %v, got %v", tt.id, args["id"])
			}
		})
	}
}
