package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/model"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/constant"
	gDto "github.com/laiba166-shaikh/AI-400-task-manager/shared/dto"
	gRepo "github.com/laiba166-shaikh/AI-400-task-manager/shared/repository"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/timezone"
)

// Task is storage for tasks. Every method runs on the given session and
// never commits; absence is reported with false, not an error.
type Task interface {
	Create(ctx context.Context, q database.Querier, task model.Task) (model.Task, error)
	Get(ctx context.Context, q database.Querier, id int64) (model.Task, bool, error)
	GetAll(ctx context.Context, q database.Querier, skip, limit int) ([]model.Task, error)
	Update(ctx context.Context, q database.Querier, id int64, fields map[string]any) (model.Task, bool, error)
	Delete(ctx context.Context, q database.Querier, id int64) (bool, error)
	Count(ctx context.Context, q database.Querier) (int, error)
}

type repositoryImpl struct {
	base gRepo.Repository[model.Task]
	otel otel.Otel
	now  func() time.Time
}

func New(otel otel.Otel) Task {
	return &repositoryImpl{
		base: gRepo.NewRepository[model.Task](model.EntityName, model.TableName, model.FieldID, otel),
		otel: otel,
		now:  timezone.Now,
	}
}

func byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

// timestamp is truncated to the precision every supported database keeps.
func (r *repositoryImpl) timestamp() time.Time {
	return r.now().Truncate(time.Microsecond)
}

func (r *repositoryImpl) Create(ctx context.Context, q database.Querier, task model.Task) (model.Task, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".task.Create")
	defer scope.End()

	if task.CreatedAt.IsZero() {
		task.CreatedAt = r.timestamp()
	}

	task.UpdatedAt = nil

	created, err := r.base.Insert(ctx, q, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return created, nil
}

func (r *repositoryImpl) Get(ctx context.Context, q database.Querier, id int64) (model.Task, bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".task.Get")
	defer scope.End()

	task, found, err := r.base.Get(ctx, q, byID(id))
	if err != nil {
		return model.Task{}, false, fmt.Errorf("failed to get task %d: %w", id, err)
	}

	return task, found, nil
}

func (r *repositoryImpl) GetAll(ctx context.Context, q database.Querier, skip, limit int) ([]model.Task, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".task.GetAll")
	defer scope.End()

	tasks, err := r.base.GetAll(ctx, q, gDto.QueryParams{Skip: skip, Limit: limit}, gDto.FilterGroup{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Update applies fields and refreshes updated_at. The new updated_at is
// always later than both created_at and the previous updated_at, even when
// the clock has not advanced.
func (r *repositoryImpl) Update(ctx context.Context, q database.Querier, id int64, fields map[string]any) (model.Task, bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".task.Update")
	defer scope.End()

	current, found, err := r.Get(ctx, q, id)
	if err != nil || !found {
		return model.Task{}, false, err
	}

	previous := current.CreatedAt
	if current.UpdatedAt != nil && current.UpdatedAt.After(previous) {
		previous = *current.UpdatedAt
	}

	updatedAt := r.timestamp()
	if !updatedAt.After(previous) {
		updatedAt = previous.Add(time.Microsecond)
	}

	mod := make(map[string]any, len(fields)+1)
	for column, value := range fields {
		mod[column] = value
	}

	mod[model.FieldUpdatedAt] = updatedAt

	updated, found, err := r.base.Update(ctx, q, mod, byID(id))
	if err != nil {
		return model.Task{}, false, fmt.Errorf("failed to update task %d: %w", id, err)
	}

	return updated, found, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, q database.Querier, id int64) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".task.Delete")
	defer scope.End()

	deleted, err := r.base.Delete(ctx, q, byID(id))
	if err != nil {
		return false, fmt.Errorf("failed to delete task %d: %w", id, err)
	}

	return deleted, nil
}

func (r *repositoryImpl) Count(ctx context.Context, q database.Querier) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".task.Count")
	defer scope.End()

	count, err := r.base.Count(ctx, q, gDto.FilterGroup{})
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}
