package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	val "github.com/go-playground/validator/v10"

	"github.com/laiba166-shaikh/AI-400-task-manager/shared/failure"
)

const msgBodyNotObject = "request body must be a JSON object"

var (
	validate *val.Validate

	pascalCase = regexp.MustCompile(`^[A-Z][A-Za-z]*$`)
)

func registerPascalCaseValidation(field val.FieldLevel) bool {
	return pascalCase.MatchString(field.Field().String())
}

// jsonTagName reports fields by their wire name so messages match the request body.
func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0] //nolint:mnd
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("pascalcase", registerPascalCaseValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. A body that cannot be decoded, or a struct that
// breaks its validation rules, is reported as an unprocessable entity.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	var raw json.RawMessage

	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return decodeFailure(err)
	}

	// Structs only accept objects; a bare null would otherwise decode to the zero value.
	if body := bytes.TrimSpace(raw); bytes.Equal(body, []byte("null")) ||
		(reflect.TypeFor[T]().Kind() == reflect.Struct && body[0] != '{') {
		return failure.Unprocessable(msgBodyNotObject, //nolint:wrapcheck
			failure.FieldError{Field: "body", Message: msgBodyNotObject})
	}

	if err := json.Unmarshal(raw, data); err != nil {
		return decodeFailure(err)
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		fields := fieldErrors(err, "")
		if len(fields) == 0 {
			return failure.Unprocessable(message(err)) //nolint:wrapcheck
		}

		return failure.Unprocessable(fields[0].Message, fields...) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		return failure.Unprocessable(message(err)) //nolint:wrapcheck
	}

	return nil
}

// ValidateField validates one value against tag and reports failures under name.
func ValidateField(name string, field any, tag string) error {
	err := validate.Var(field, tag)
	if err == nil {
		return nil
	}

	fields := fieldErrors(err, name)
	if len(fields) == 0 {
		return failure.Unprocessable(message(err), failure.FieldError{Field: name, Message: message(err)}) //nolint:wrapcheck
	}

	return failure.Unprocessable(fields[0].Message, fields...) //nolint:wrapcheck
}

func decodeFailure(err error) error {
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, io.EOF):
		return failure.Unprocessable("request body is required", //nolint:wrapcheck
			failure.FieldError{Field: "body", Message: "request body is required"})
	case errors.As(err, &typeErr) && typeErr.Field != "":
		msg := fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String())

		return failure.Unprocessable(msg, failure.FieldError{Field: typeErr.Field, Message: msg}) //nolint:wrapcheck
	default:
		msg := fmt.Sprintf("failed to decode request body: %s", err.Error())

		return failure.Unprocessable(msg, failure.FieldError{Field: "body", Message: msg}) //nolint:wrapcheck
	}
}
