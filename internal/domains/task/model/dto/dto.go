package dto

import (
	"time"

	"github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/model"
	gDto "github.com/laiba166-shaikh/AI-400-task-manager/shared/dto"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/failure"
	gModel "github.com/laiba166-shaikh/AI-400-task-manager/shared/model"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/optional"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/validator"
)

// CreateTaskRequest carries the client-settable fields of a new task.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,min=1,max=200" example:"Buy groceries"`
	Description *string `json:"description"                                   example:"Milk, eggs, bread"`
	Completed   bool    `json:"completed"                                     example:"false"`
}

func (c *CreateTaskRequest) ToModel(now time.Time) model.Task {
	return model.Task{
		Title:       c.Title,
		Description: c.Description,
		Completed:   c.Completed,
		Timestamps: gModel.Timestamps{
			CreatedAt: now,
		},
	}
}

// UpdateTaskRequest is a partial update: only fields present in the body change.
// A null description clears it; title and completed cannot be null.
type UpdateTaskRequest struct {
	Title       optional.Field[string] `json:"title"       swaggertype:"string"  example:"Buy groceries"`
	Description optional.Field[string] `json:"description" swaggertype:"string"  example:"Milk, eggs, bread, coffee"`
	Completed   optional.Field[bool]   `json:"completed"   swaggertype:"boolean" example:"true"`
}

// Empty reports whether no field was supplied.
func (u *UpdateTaskRequest) Empty() bool {
	return !u.Title.Set && !u.Description.Set && !u.Completed.Set
}

func (u *UpdateTaskRequest) Validate() error {
	if u.Title.Set {
		if u.Title.Null {
			return notNull(model.FieldTitle)
		}

		if err := validator.ValidateField(model.FieldTitle, u.Title.Value, model.TitleRules); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if u.Completed.Set && u.Completed.Null {
		return notNull(model.FieldCompleted)
	}

	return nil
}

// ToFields maps the supplied fields to their columns.
func (u *UpdateTaskRequest) ToFields() map[string]any {
	fields := map[string]any{}

	if u.Title.Set {
		fields[model.FieldTitle] = u.Title.Value
	}

	if u.Description.Set {
		fields[model.FieldDescription] = u.Description.Ptr()
	}

	if u.Completed.Set {
		fields[model.FieldCompleted] = u.Completed.Value
	}

	return fields
}

func notNull(field string) error {
	msg := field + " may not be null"

	return failure.Unprocessable(msg, failure.FieldError{Field: field, Message: msg}) //nolint:wrapcheck
}

type TaskResponse struct {
	ID          int64   `json:"id"          example:"1"`
	Title       string  `json:"title"       example:"Buy groceries"`
	Description *string `json:"description" example:"Milk, eggs, bread"`
	Completed   bool    `json:"completed"   example:"false"`
	gDto.Timestamps
}

func (r *TaskResponse) FromModel(model model.Task) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Completed = model.Completed
	r.Timestamps.FromModel(model.Timestamps)
}

type GetTasksResponse struct {
	Tasks     []TaskResponse
	TotalData int
}

func (r *GetTasksResponse) FromModels(models []model.Task, totalData int) {
	r.TotalData = totalData

	r.Tasks = make([]TaskResponse, len(models))
	for i, mod := range models {
		r.Tasks[i].FromModel(mod)
	}
}
