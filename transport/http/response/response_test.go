package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiba166-shaikh/AI-400-task-manager/shared/failure"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "not found",
			err:      failure.NotFound("Task 3 not found"),
			wantCode: http.StatusNotFound,
			wantBody: `{"detail":"Task 3 not found"}`,
		},
		{
			name:     "wrapped failure keeps its code",
			err:      fmt.Errorf("failed to get task: %w", failure.BadRequestFromString("No fields to update")),
			wantCode: http.StatusBadRequest,
			wantBody: `{"detail":"No fields to update"}`,
		},
		{
			name: "field errors",
			err: failure.Unprocessable("title is required",
				failure.FieldError{Field: "title", Message: "title is required"}),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"detail":"title is required","errors":[{"field":"title","message":"title is required"}]}`,
		},
		{
			name:     "internal error text is hidden",
			err:      errors.New("dial tcp 10.0.0.3:5432: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"detail":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestWithNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithNoContent(rec, http.StatusNoContent)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCannedResponses(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	response.WithPreparingShutdown(rec)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body response.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SERVER PREPARING TO SHUT DOWN", body.Detail)
}
