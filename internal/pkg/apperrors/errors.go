package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Entity errors
	ErrEntityAlreadyExists = errors.New("entity already exists")
	ErrEntityNotFound      = errors.New("entity not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// EntityAlreadyExistsError reports a create-time conflict on the
// (courseId, googleId) key of an instructor role. It is a recoverable,
// expected outcome that callers are meant to match with
// errors.Is(err, ErrEntityAlreadyExists).
type EntityAlreadyExistsError struct {
	GoogleID string
	CourseID string
}

// Error implements the error interface
func (e *EntityAlreadyExistsError) Error() string {
	return fmt.Sprintf("trying to create an instructor that exists: %s, %s", e.GoogleID, e.CourseID)
}

// Unwrap makes the error matchable against ErrEntityAlreadyExists
func (e *EntityAlreadyExistsError) Unwrap() error {
	return ErrEntityAlreadyExists
}

// NewEntityAlreadyExistsError creates an EntityAlreadyExistsError for the given key
func NewEntityAlreadyExistsError(googleID, courseID string) error {
	return &EntityAlreadyExistsError{GoogleID: googleID, CourseID: courseID}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewValidationError creates a new custom error for failed attribute validation
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
