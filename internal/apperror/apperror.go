// Package apperror defines the error kinds shared by every layer of the API.
//
// Each kind is a sentinel error. Constructors return an *AppError that wraps
// the sentinel and carries a message that is safe to show to API callers:
//
//	err := apperror.ReferenceNotFound("author", 999)
//	errors.Is(err, apperror.ErrReferenceNotFound) // true
//	err.Error()                                   // "author with id 999 does not exist"
//
// Anything that is NOT an *AppError is treated by the HTTP layer as an
// opaque failure: logged in full, answered with a generic 500.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
	ErrReferenceNotFound = errors.New("reference not found")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness or constraint violation raised by storage.
func Conflict(resource, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict: %s", resource, message),
	}
}

// ReferenceNotFound reports that a foreign reference supplied to a create
// operation does not name an existing record. The resource is the role of
// the reference ("author", "post"), not the table it lives in.
func ReferenceNotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrReferenceNotFound,
		Message: fmt.Sprintf("%s with id %d does not exist", resource, id),
		Field:   resource + "_id",
	}
}
