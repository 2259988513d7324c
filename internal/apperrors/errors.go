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

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure in a collaborator.
var ErrInternal = errors.New("internal error")

// ErrPatchUnsupported is returned by a store that cannot apply a field-level
// update to a record. Callers fall back to a full overwrite.
var ErrPatchUnsupported = errors.New("partial update not supported")

// AppError attaches a sentinel code and a user-facing message to an underlying error.
type AppError struct {
	Code    error
	Message string
	Err     error
}

// NewAppError wraps err under the sentinel code with a message.
func NewAppError(code error, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the sentinel code and the cause to errors.Is.
func (e *AppError) Unwrap() []error {
	errs := []error{e.Code}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
