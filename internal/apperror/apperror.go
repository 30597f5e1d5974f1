package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrQuery          = errors.New("query error")
	ErrStore          = errors.New("store error")
)

// AppError carries an error kind and the detail shown to API callers
type AppError struct {
	Err     error  // kind sentinel
	Message string // detail returned to the caller
	Cause   error  // underlying failure, if any
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func Validation(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Err: ErrAuthentication, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

// Query wraps a downstream failure of the query pipeline. The cause's
// message becomes the detail.
func Query(cause error) *AppError {
	return &AppError{Err: ErrQuery, Message: cause.Error(), Cause: cause}
}

// Queryf is Query with a prefix, e.g. "Error processing query: <cause>"
func Queryf(prefix string, cause error) *AppError {
	return &AppError{Err: ErrQuery, Message: fmt.Sprintf("%s: %v", prefix, cause), Cause: cause}
}

// Store reports a failed persistence operation
func Store(prefix string, cause error) *AppError {
	return &AppError{Err: ErrStore, Message: fmt.Sprintf("%s: %v", prefix, cause), Cause: cause}
}
