package task_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database/dbtest"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel/mocks"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/repository"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/service"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/handlers/task"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/cache"
)

type taskBody struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

type errorBody struct {
	Detail string `json:"detail"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := dbtest.Config(t)
	conn := dbtest.NewWithConfig(t, cfg)
	otl := mocks.NewOtel()

	svc := service.New(repository.New(otl), conn, cache.NewRedisCache(nil, otl), cfg, otl)
	handler := task.New(svc, otl)

	router := chi.NewRouter()
	handler.Router(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func do(t *testing.T, server *httptest.Server, method, path, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")

	res, err := server.Client().Do(req)
	require.NoError(t, err)

	t.Cleanup(func() { res.Body.Close() })

	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))

	return out
}

func parseTime(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.RFC3339Nano, value)
	require.NoError(t, err)

	return parsed
}

func TestTaskLifecycle(t *testing.T) {
	server := newServer(t)

	res := do(t, server, http.MethodPost, "/tasks/", `{"title":"Buy groceries","completed":false}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	created := decode[taskBody](t, res)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Buy groceries", created.Title)
	assert.Nil(t, created.Description)
	assert.False(t, created.Completed)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Nil(t, created.UpdatedAt)

	res = do(t, server, http.MethodPatch, "/tasks/1", `{"completed":true}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	updated := decode[taskBody](t, res)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy groceries", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.UpdatedAt)

	res = do(t, server, http.MethodDelete, "/tasks/1", "")
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res = do(t, server, http.MethodGet, "/tasks/1", "")
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	notFound := decode[errorBody](t, res)
	assert.Equal(t, "Task 1 not found", notFound.Detail)
	assert.Contains(t, notFound.Detail, "1")
}

func TestCreateThenRead(t *testing.T) {
	server := newServer(t)

	res := do(t, server, http.MethodPost, "/tasks", `{"title":"Read a book","description":"Chapter 3"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	created := decode[taskBody](t, res)

	res = do(t, server, http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, created, decode[taskBody](t, res))
}

func TestCreateValidation(t *testing.T) {
	server := newServer(t)

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "empty title", body: `{"title":""}`, wantField: "title"},
		{name: "missing title", body: `{"description":"no title"}`, wantField: "title"},
		{name: "title too long", body: `{"title":"` + strings.Repeat("x", 201) + `"}`, wantField: "title"},
		{name: "malformed json", body: `{"title":`, wantField: "body"},
		{name: "wrong type", body: `{"title":"ok","completed":"yes"}`, wantField: "completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, server, http.MethodPost, "/tasks/", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

			body := decode[errorBody](t, res)
			assert.NotEmpty(t, body.Detail)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, tt.wantField, body.Errors[0].Field)
		})
	}

	res := do(t, server, http.MethodGet, "/tasks/", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "0", res.Header.Get("X-Total-Count"))
}

func TestUpdate(t *testing.T) {
	server := newServer(t)

	res := do(t, server, http.MethodPost, "/tasks/", `{"title":"Buy groceries","description":"Milk"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res = do(t, server, http.MethodPatch, "/tasks/1", `{}`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "No fields to update", decode[errorBody](t, res).Detail)

	res = do(t, server, http.MethodGet, "/tasks/1", "")
	unchanged := decode[taskBody](t, res)
	assert.Nil(t, unchanged.UpdatedAt)
	require.NotNil(t, unchanged.Description)
	assert.Equal(t, "Milk", *unchanged.Description)

	res = do(t, server, http.MethodPatch, "/tasks/1", `{"title":"Buy more groceries"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	first := decode[taskBody](t, res)
	assert.Equal(t, "Buy more groceries", first.Title)
	require.NotNil(t, first.Description)
	assert.Equal(t, "Milk", *first.Description)
	require.NotNil(t, first.UpdatedAt)

	res = do(t, server, http.MethodPatch, "/tasks/1", `{"description":null}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	second := decode[taskBody](t, res)
	assert.Nil(t, second.Description)
	assert.Equal(t, "Buy more groceries", second.Title)
	require.NotNil(t, second.UpdatedAt)
	assert.True(t, parseTime(t, *second.UpdatedAt).After(parseTime(t, *first.UpdatedAt)))

	res = do(t, server, http.MethodPatch, "/tasks/1", `{"title":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	res = do(t, server, http.MethodPatch, "/tasks/1", `{"title":null}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
}

func TestNonObjectBody(t *testing.T) {
	server := newServer(t)

	res := do(t, server, http.MethodPost, "/tasks/", `{"title":"Buy groceries"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "patch null", method: http.MethodPatch, path: "/tasks/1", body: `null`},
		{name: "patch array", method: http.MethodPatch, path: "/tasks/1", body: `[]`},
		{name: "create null", method: http.MethodPost, path: "/tasks/", body: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, server, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

			body := decode[errorBody](t, res)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, "body", body.Errors[0].Field)
		})
	}

	res = do(t, server, http.MethodGet, "/tasks/1", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Nil(t, decode[taskBody](t, res).UpdatedAt)
}

func TestMissingTask(t *testing.T) {
	server := newServer(t)

	tests := []struct {
		method string
		body   string
	}{
		{method: http.MethodGet},
		{method: http.MethodPatch, body: `{"completed":true}`},
		{method: http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			res := do(t, server, tt.method, "/tasks/999", tt.body)
			require.Equal(t, http.StatusNotFound, res.StatusCode)
			assert.Equal(t, "Task 999 not found", decode[errorBody](t, res).Detail)
		})
	}
}

func TestInvalidID(t *testing.T) {
	server := newServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			res := do(t, server, method, "/tasks/abc", `{"completed":true}`)
			require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

			body := decode[errorBody](t, res)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, "id", body.Errors[0].Field)
		})
	}
}

func TestListPagination(t *testing.T) {
	server := newServer(t)

	for i := 1; i <= 5; i++ {
		res := do(t, server, http.MethodPost, "/tasks/", fmt.Sprintf(`{"title":"task %d"}`, i))
		require.Equal(t, http.StatusCreated, res.StatusCode)
	}

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantIDs  []int64
	}{
		{name: "defaults", query: "", wantCode: http.StatusOK, wantIDs: []int64{1, 2, 3, 4, 5}},
		{name: "skip and limit", query: "?skip=1&limit=2", wantCode: http.StatusOK, wantIDs: []int64{2, 3}},
		{name: "past the end", query: "?skip=10", wantCode: http.StatusOK, wantIDs: []int64{}},
		{name: "negative skip", query: "?skip=-1", wantCode: http.StatusUnprocessableEntity},
		{name: "limit too large", query: "?limit=101", wantCode: http.StatusUnprocessableEntity},
		{name: "non-integer limit", query: "?limit=ten", wantCode: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, server, http.MethodGet, "/tasks/"+tt.query, "")
			require.Equal(t, tt.wantCode, res.StatusCode)

			if tt.wantCode != http.StatusOK {
				return
			}

			assert.Equal(t, "5", res.Header.Get("X-Total-Count"))

			tasks := decode[[]taskBody](t, res)
			ids := make([]int64, len(tasks))

			for i, task := range tasks {
				ids[i] = task.ID
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	previous, level := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(level)
	})

	return &buf
}

func TestClientErrorsLogAtDebug(t *testing.T) {
	server := newServer(t)

	res := do(t, server, http.MethodPost, "/tasks/", `{"title":"Buy groceries"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	logs := captureLogs(t)

	requests := []struct {
		method   string
		path     string
		body     string
		wantCode int
	}{
		{method: http.MethodPatch, path: "/tasks/1", body: `{}`, wantCode: http.StatusBadRequest},
		{method: http.MethodPatch, path: "/tasks/1", body: `{"title":""}`, wantCode: http.StatusUnprocessableEntity},
		{method: http.MethodPatch, path: "/tasks/999", body: `{"completed":true}`, wantCode: http.StatusNotFound},
		{method: http.MethodGet, path: "/tasks/999", wantCode: http.StatusNotFound},
		{method: http.MethodDelete, path: "/tasks/999", wantCode: http.StatusNotFound},
	}

	for _, req := range requests {
		res := do(t, server, req.method, req.path, req.body)
		require.Equal(t, req.wantCode, res.StatusCode, "%s %s", req.method, req.path)
	}

	output := logs.String()
	assert.NotContains(t, output, `"level":"error"`)
	assert.Contains(t, output, `"level":"debug"`)
	assert.Contains(t, output, "failed to update task")
}
