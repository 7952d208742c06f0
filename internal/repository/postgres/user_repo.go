package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/prn-tf/hijri-users/internal/domain"
	"github.com/prn-tf/hijri-users/internal/hijri"
	"github.com/prn-tf/hijri-users/internal/repository"
)

// userRepository implements repository.UserRepository for PostgreSQL.
type userRepository struct {
	pool Pool
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(pool Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, birth_date, created_at`

// Create creates a new user. ID and CreatedAt are assigned by the database.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, birth_date, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.Name,
		int64(user.BirthDate.Int()),
		user.CreatedAt,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// List returns users with pagination.
func (r *userRepository) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.User], error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, err
	}

	return &repository.ListResult[domain.User]{
		Items:  users,
		Total:  total,
		Offset: opts.Offset,
		Limit:  opts.Limit,
	}, nil
}

// ListAll returns every user.
func (r *userRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Delete deletes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Count returns the number of users.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	var birthDate int64
	var createdAt time.Time

	if err := row.Scan(&user.ID, &user.Name, &birthDate, &createdAt); err != nil {
		return nil, err
	}

	user.BirthDate = hijri.FromEncoded(int(birthDate))
	user.CreatedAt = createdAt
	return user, nil
}

func scanUsers(rows pgx.Rows) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

var _ repository.UserRepository = (*userRepository)(nil)
