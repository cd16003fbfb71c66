package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Secondary error IDs carried in the response body. They loosely mirror the
// HTTP status but are a coarse classification of their own; clients should
// read the real status code as well.
const (
	ErrIDBadInput   = 400
	ErrIDNotFound   = 404
	ErrIDInternal   = 500
	ErrIDDependency = 2
)

// AppError is the error type every service layer returns. It carries the
// HTTP status to respond with and the {id, message} body shape shared by
// all services.
type AppError struct {
	StatusCode int    `json:"-"`
	ID         int    `json:"id"`
	Message    string `json:"message"`
	Cause      error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{
		StatusCode: e.StatusCode,
		ID:         e.ID,
		Message:    e.Message,
		Cause:      cause,
	}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      int    `json:"id"`
		Message string `json:"message"`
	}{ID: e.ID, Message: e.Message})
}

func NewValidationError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		ID:         ErrIDBadInput,
		Message:    message,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		ID:         ErrIDNotFound,
		Message:    message,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		ID:         ErrIDInternal,
		Message:    message,
		Cause:      cause,
	}
}

// NewDependencyError marks failures of an upstream collaborator. The
// distinct secondary id lets clients tell a transient outage apart from
// "no such user" and from plain internal failures.
func NewDependencyError(message string, cause error) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		ID:         ErrIDDependency,
		Message:    message,
		Cause:      cause,
	}
}

var (
	ErrUserNotFound     = NewNotFoundError("User does not exist")
	ErrUserVerification = NewDependencyError("failed to validate user", nil)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
