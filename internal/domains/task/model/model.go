package model

import "github.com/laiba166-shaikh/AI-400-task-manager/shared/model"

const (
	TableName  = "tasks"
	EntityName = "task"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCompleted   = "completed"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)

// TitleRules applies wherever a title is accepted.
const TitleRules = "required,min=1,max=200"

// Task is a row of the tasks table.
type Task struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Description *string `db:"description"`
	Completed   bool    `db:"completed"`
	model.Timestamps
}
