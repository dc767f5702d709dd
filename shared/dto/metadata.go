package dto

import (
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/constant"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/model"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/timezone"
)

type Timestamps struct {
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

func (m *Timestamps) FromModel(model model.Timestamps) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	m.UpdatedAt = nil

	if model.UpdatedAt != nil {
		updatedAt := timezone.Format(*model.UpdatedAt, constant.DateFormat)
		m.UpdatedAt = &updatedAt
	}
}
