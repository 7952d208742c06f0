// Package repository defines data access interfaces for the Hijri users service.
// These interfaces abstract database operations, allowing for different implementations
// (SQLite, PostgreSQL, in-memory for testing) while keeping the service layer clean.
package repository

import (
	"context"

	"github.com/prn-tf/hijri-users/internal/domain"
)

// UserRepository defines the interface for user data access.
// Birth dates are stored as their canonical integer encoding and loaded
// back without re-validation.
type UserRepository interface {
	// Create creates a new user and sets its ID.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List returns users ordered by ID with pagination.
	List(ctx context.Context, opts ListOptions) (*ListResult[domain.User], error)

	// ListAll returns every user ordered by ID.
	ListAll(ctx context.Context) ([]*domain.User, error)

	// Delete deletes a user by ID.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored users.
	Count(ctx context.Context) (int64, error)
}

// ListOptions contains common pagination options.
type ListOptions struct {
	// Offset is the number of records to skip.
	Offset int

	// Limit is the maximum number of records to return.
	Limit int
}

// ListResult is a generic paginated list result.
type ListResult[T any] struct {
	// Items is the list of items.
	Items []*T

	// Total is the total number of items (without pagination).
	Total int64

	// Offset is the current offset.
	Offset int

	// Limit is the current limit.
	Limit int
}
