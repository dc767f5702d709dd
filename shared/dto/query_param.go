package dto

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/laiba166-shaikh/AI-400-task-manager/shared/constant"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/failure"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/validator"
)

type QueryParams struct {
	Skip  int `json:"skip"  validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=0,lte=100"`
}

// FromRequest populates QueryParams from the HTTP request, defaulting
// skip to 0 and limit to 100.
//
//	q := &dto.QueryParams{}
//	if err := q.FromRequest(req); err != nil {
//		// 422
//	}
//
// Non-integer values and values outside skip >= 0, 0 <= limit <= 100 are rejected.
func (q *QueryParams) FromRequest(r *http.Request) error {
	queryParams := r.URL.Query()

	q.Skip = constant.DefaultValueSkip
	q.Limit = constant.DefaultValueLimit

	var fields []failure.FieldError

	if skip := queryParams.Get(constant.RequestParamSkip); skip != "" {
		value, err := strconv.Atoi(skip)
		if err != nil {
			fields = append(fields, integerField(constant.RequestParamSkip))
		} else {
			q.Skip = value
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		value, err := strconv.Atoi(limit)
		if err != nil {
			fields = append(fields, integerField(constant.RequestParamLimit))
		} else {
			q.Limit = value
		}
	}

	if len(fields) > 0 {
		return failure.Unprocessable(fields[0].Message, fields...) //nolint:wrapcheck
	}

	return validator.ValidateStruct(q) //nolint:wrapcheck
}

func integerField(name string) failure.FieldError {
	return failure.FieldError{Field: name, Message: fmt.Sprintf("%s must be a valid integer", name)}
}
