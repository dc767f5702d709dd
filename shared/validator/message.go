package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"

	"github.com/laiba166-shaikh/AI-400-task-manager/shared/failure"
)

var (
	messages = map[string]string{
		"required":   "{field} is required",
		"gte":        "{field} must be greater than or equal to {param}",
		"lte":        "{field} must be less than or equal to {param}",
		"oneof":      "{field} must be one of {param}",
		"max":        "{field} must be less than or equal to {param}",
		"min":        "{field} must be greater than or equal to {param}",
		"pascalcase": "{field} must be PascalCase (letters only, starting with an uppercase letter)",
	}

	// string lengths read better as character counts
	stringMessages = map[string]string{
		"max": "{field} must be at most {param} characters",
		"min": "{field} must be at least {param} characters",
	}
)

func render(valErr val.FieldError, field string) string {
	tmpl := messages[valErr.Tag()]
	if valErr.Kind() == reflect.String {
		if s, ok := stringMessages[valErr.Tag()]; ok {
			tmpl = s
		}
	}

	if tmpl == "" {
		return ""
	}

	if field == "" {
		field = "value"
	}

	tmpl = strings.ReplaceAll(tmpl, "{field}", field)

	return strings.ReplaceAll(tmpl, "{param}", valErr.Param())
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			if msg := render(valErr, valErr.Field()); msg != "" {
				return msg
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}

func fieldErrors(err error, name string) []failure.FieldError {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return nil
	}

	fields := make([]failure.FieldError, 0, len(valErrors))

	for _, valErr := range valErrors {
		field := name
		if field == "" {
			field = valErr.Field()
		}

		msg := render(valErr, field)
		if msg == "" {
			msg = valErr.Error()
		}

		fields = append(fields, failure.FieldError{Field: field, Message: msg})
	}

	return fields
}
