package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by repositories when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers bad signatures, expired tokens and unknown subjects.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInactiveUser is returned for disabled accounts on protected routes.
	ErrInactiveUser = errors.New("user account is disabled")
	// ErrForbidden is returned when neither the role nor the ownership check passes.
	ErrForbidden = errors.New("insufficient permissions")
)

// NotFoundError names the missing resource. It matches ErrNotFound.
type NotFoundError struct {
	Resource string
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found."
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// OperationError wraps a store failure. Message is safe to show to clients,
// Err is for server logs only.
type OperationError struct {
	Message string
	Err     error
}

func Operation(message string, err error) error {
	return &OperationError{Message: message, Err: err}
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// ValidationError reports bad client input.
type ValidationError struct {
	Message string
}

func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}
