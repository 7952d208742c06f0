// Package service provides the business logic of the Hijri users registry.
package service

import (
	"errors"

	"github.com/prn-tf/hijri-users/internal/domain"
)

// Common service errors.
var (
	// User errors
	ErrUserNotFound     = domain.ErrUserNotFound
	ErrInvalidName      = domain.ErrInvalidName
	ErrInvalidBirthDate = errors.New("invalid birth date")

	// Conversion errors
	ErrInvalidDate = errors.New("invalid hijri date")

	// General errors
	ErrInternalError = errors.New("internal server error")
)
