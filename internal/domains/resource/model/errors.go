package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound   = "RES001"
	ErrCodeNotOwner   = "RES002"
	ErrCodeValidation = "RES003"
)

// Sentinel errors returned by the store; handlers map them to HTTP
// status codes at the boundary.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrNotOwner         = errors.New("not the resource owner")
)

// ResourceError wraps a sentinel with an error code and a
// client-facing message.
type ResourceError struct {
	Code    string
	Message string
	Err     error
}

func (e *ResourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewNotFoundError() *ResourceError {
	return &ResourceError{
		Code:    ErrCodeNotFound,
		Message: "Resource not found",
		Err:     ErrResourceNotFound,
	}
}

func NewNotOwnerError() *ResourceError {
	return &ResourceError{
		Code:    ErrCodeNotOwner,
		Message: "You can only modify your own resources",
		Err:     ErrNotOwner,
	}
}

func NewValidationError(message string) *ResourceError {
	return &ResourceError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}
