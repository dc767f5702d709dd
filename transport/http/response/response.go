package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/laiba166-shaikh/AI-400-task-manager/shared/constant"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/failure"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/logger"
)

// Error is the body of every failed request.
type Error struct {
	Detail string                `json:"detail"`
	Errors []failure.FieldError `json:"errors,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

// WithJSON sends payload as the whole body.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, payload)
}

// WithNoContent sends code with an empty body.
func WithNoContent(writer http.ResponseWriter, code int) {
	writer.WriteHeader(code)
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: message})
}

// WithError maps err to its status code. Field-level detail is included when err carries it;
// errors that are not a failure.Failure are reported without their text.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		WithDetail(writer, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))

		return
	}

	response(writer, fail.Code, Error{Detail: fail.Message, Errors: fail.Fields})
}

// WithDetail sends an error body that has no underlying error value.
func WithDetail(writer http.ResponseWriter, code int, detail string) {
	response(writer, code, Error{Detail: detail})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithDetail(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithDetail(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(response); err != nil {
		logger.ErrorWithStack(err)
	}
}
