package task

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/model/dto"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/service"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/constant"
	gDto "github.com/laiba166-shaikh/AI-400-task-manager/shared/dto"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/failure"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/validator"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/response"
)

type Handler struct {
	service service.Task
	otel    otel.Otel
}

func New(service service.Task, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the task routes. "/tasks" and "/tasks/" reach the same handlers.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/tasks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTask)
		routerGroup.Get("/", handler.GetTasks)
		routerGroup.Get("/{id}", handler.GetTaskByID)
		routerGroup.Patch("/{id}", handler.UpdateTask)
		routerGroup.Delete("/{id}", handler.DeleteTask)
	})
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, constant.RequestParamID)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		msg := fmt.Sprintf("%s must be a valid integer", constant.RequestParamID)

		return 0, failure.Unprocessable(msg, failure.FieldError{Field: constant.RequestParamID, Message: msg}) //nolint:wrapcheck
	}

	return id, nil
}

// logEvent logs client errors at debug level and everything else as an error.
func logEvent(err error) *zerolog.Event {
	if failure.GetCode(err) < http.StatusInternalServerError {
		return log.Debug()
	}

	return log.Error()
}

// CreateTask handles the creation of a new task.
// @Summary Create a task
// @Description Create a task. Only title is required; completed defaults to false.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Create Task Request"
// @Success 201 {object} dto.TaskResponse
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tasks/ [post]
func (handler *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTask")
	defer scope.End()

	req := dto.CreateTaskRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Debug().Err(err).Msg("rejected task creation request")

		response.WithError(w, err)

		return
	}

	task, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logEvent(err).Err(err).Msg("failed to create task")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("task.id", task.ID)
	scope.AddEvent("Task created successfully")

	response.WithJSON(w, http.StatusCreated, task)
}

// GetTasks lists tasks in ascending id order.
// @Summary List tasks
// @Description List tasks with skip/limit pagination. The total number of tasks is sent in X-Total-Count.
// @Tags Tasks
// @Produce json
// @Param skip query int false "Number of tasks to skip" default(0) minimum(0)
// @Param limit query int false "Maximum number of tasks to return" default(100) minimum(0) maximum(100)
// @Success 200 {array} dto.TaskResponse
// @Header 200 {integer} X-Total-Count "Total number of tasks"
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tasks/ [get]
func (handler *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTasks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	if err := queryParams.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	tasks, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		logEvent(err).Err(err).Msg("failed to get tasks")

		response.WithError(w, err)

		return
	}

	w.Header().Set(constant.ResponseHeaderTotalCount, strconv.Itoa(tasks.TotalData))

	response.WithJSON(w, http.StatusOK, tasks.Tasks)
}

// GetTaskByID retrieves a task by its ID.
// @Summary Get a task
// @Tags Tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tasks/{id} [get]
func (handler *Handler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTaskByID")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	task, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		logEvent(err).Err(err).Int64("id", id).Msg("failed to get task by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, task)
}

// UpdateTask partially updates a task. Only the fields present in the body change.
// @Summary Update a task
// @Description Update any subset of title, description and completed. A null description clears it.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Update Task Request"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tasks/{id} [patch]
func (handler *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTask")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateTaskRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	task, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		logEvent(err).Err(err).Int64("id", id).Msg("failed to update task")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Task updated successfully")

	response.WithJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task by its ID.
// @Summary Delete a task
// @Tags Tasks
// @Param id path int true "Task ID"
// @Success 204
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /tasks/{id} [delete]
func (handler *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTask")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		logEvent(err).Err(err).Int64("id", id).Msg("failed to delete task")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Task deleted successfully")

	response.WithNoContent(w, http.StatusNoContent)
}
