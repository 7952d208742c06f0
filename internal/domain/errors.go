// Package domain contains the core entities of the Hijri users registry.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidName indicates the user name is empty or too long.
	ErrInvalidName = errors.New("invalid name: must be 1-255 characters")
)

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string

	// Resource identifies the affected resource (e.g., user ID).
	Resource string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Message, e.Resource)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message, resource string) *DomainError {
	return &DomainError{
		Err:      err,
		Message:  message,
		Resource: resource,
	}
}
