package dto_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiba166-shaikh/AI-400-task-manager/shared/dto"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/failure"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/model"
)

func TestTimestamps_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2023, 1, 2, 12, 0, 0, 500, time.UTC)

	var never dto.Timestamps
	never.FromModel(model.Timestamps{CreatedAt: createdAt})

	assert.Equal(t, "2023-01-01T12:00:00Z", never.CreatedAt)
	assert.Nil(t, never.UpdatedAt)

	var modified dto.Timestamps
	modified.FromModel(model.Timestamps{CreatedAt: createdAt, UpdatedAt: &updatedAt})

	require.NotNil(t, modified.UpdatedAt)
	assert.Equal(t, "2023-01-02T12:00:00.0000005Z", *modified.UpdatedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expected      dto.QueryParams
		expectedField string
	}{
		{
			name:     "defaults",
			query:    "",
			expected: dto.QueryParams{Skip: 0, Limit: 100},
		},
		{
			name:     "explicit values",
			query:    "?skip=5&limit=20",
			expected: dto.QueryParams{Skip: 5, Limit: 20},
		},
		{
			name:     "limit zero is allowed",
			query:    "?limit=0",
			expected: dto.QueryParams{Skip: 0, Limit: 0},
		},
		{
			name:          "non-integer skip",
			query:         "?skip=abc",
			expectedField: "skip",
		},
		{
			name:          "non-integer limit",
			query:         "?limit=ten",
			expectedField: "limit",
		},
		{
			name:          "negative skip",
			query:         "?skip=-1",
			expectedField: "skip",
		},
		{
			name:          "limit above maximum",
			query:         "?limit=101",
			expectedField: "limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks/"+tt.query, nil)

			var params dto.QueryParams
			err := params.FromRequest(req)

			if tt.expectedField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, params)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))

			fields := failure.GetFields(err)
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.expectedField, fields[0].Field)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty group matches everything",
			group:     dto.FilterGroup{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "qualified column",
			group:     dto.FilterGroup{Filters: []dto.Filter{{Field: "id", Value: int64(7), Table: "tasks"}}},
			wantWhere: "(tasks.id = :id)",
			wantArgs:  map[string]any{"id": int64(7)},
		},
		{
			name: "filters are joined with AND",
			group: dto.FilterGroup{Filters: []dto.Filter{
				{Field: "completed", Value: true, Table: "tasks"},
				{Field: "title", Value: "milk"},
			}},
			wantWhere: "(tasks.completed = :completed AND title = :title)",
			wantArgs:  map[string]any{"completed": true, "title": "milk"},
		},
		{
			name: "repeated field gets its own parameter",
			group: dto.FilterGroup{Filters: []dto.Filter{
				{Field: "id", Value: int64(1)},
				{Field: "id", Value: int64(2), Table: "tasks"},
			}},
			wantWhere: "(id = :id AND tasks.id = :id_1)",
			wantArgs:  map[string]any{"id": int64(1), "id_1": int64(2)},
		},
		{
			name:      "filter without a field is ignored",
			group:     dto.FilterGroup{Filters: []dto.Filter{{Value: "x"}}},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_ValuesStayOutOfSQL(t *testing.T) {
	group := dto.FilterGroup{Filters: []dto.Filter{{Field: "title", Value: "x'); DROP TABLE tasks; --"}}}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(title = :title)", where)
	assert.NotContains(t, where, "DROP")
	assert.Equal(t, "x'); DROP TABLE tasks; --", args["title"])
}
