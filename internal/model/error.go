package model

import (
	"errors"
	"fmt"
)

// Application-level sentinel errors. Repositories and services return these
// (possibly wrapped in an AppError); webutil maps them to HTTP statuses.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("resource conflict")
	ErrInternalServer = errors.New("internal server error")
	ErrLookupFailed   = errors.New("dictionary lookup failed")
)

// AppError attaches a machine-readable code and a caller-facing message to a
// sentinel error.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// APIErrorResponse is the JSON body returned for any failed request.
type APIErrorResponse struct {
	Error *AppError `json:"error"`
}
