package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConfiguration indicates that a required external collaborator is not
// configured (e.g. missing clearing-service credentials). Runs hitting this
// terminate immediately without any network call.
var ErrConfiguration = errors.New("service not configured")

// ErrSubmission indicates the clearing service rejected an entire batch.
// The run terminates and nothing is persisted locally for the batch.
var ErrSubmission = errors.New("batch submission rejected")

// AppError carries an HTTP-ish status code alongside a message and the
// wrapped cause. Repositories and services use it for failures that handlers
// map directly onto responses.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
