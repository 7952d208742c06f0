// Package factory creates repositories based on configuration.
package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/config"
	"github.com/prn-tf/hijri-users/internal/repository"
	"github.com/prn-tf/hijri-users/internal/repository/postgres"
	"github.com/prn-tf/hijri-users/internal/repository/sqlite"
)

// Factory creates repositories based on configuration.
type Factory struct {
	cfg    config.DatabaseConfig
	logger zerolog.Logger
}

// NewFactory creates a new repository factory.
func NewFactory(cfg config.DatabaseConfig, logger zerolog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// Driver returns the configured database driver.
func (f *Factory) Driver() string {
	return f.cfg.Driver
}

// Create opens the configured database, brings its schema up to date and
// returns the repositories bound to it.
func (f *Factory) Create(ctx context.Context) (*repository.CreateRepositoriesResult, error) {
	switch f.cfg.Driver {
	case "sqlite":
		return f.createSQLite(ctx)
	case "postgres":
		return f.createPostgres(ctx)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", f.cfg.Driver)
	}
}

func (f *Factory) createSQLite(ctx context.Context) (*repository.CreateRepositoriesResult, error) {
	logger := f.logger.With().Str("component", "sqlite").Logger()

	db, err := sqlite.NewDB(ctx, sqlite.ConfigFrom(f.cfg), logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
	}

	return &repository.CreateRepositoriesResult{
		Repos:    &repository.Repositories{User: sqlite.NewUserRepository(db)},
		Database: db,
	}, nil
}

func (f *Factory) createPostgres(ctx context.Context) (*repository.CreateRepositoriesResult, error) {
	logger := f.logger.With().Str("component", "postgres").Logger()

	if err := postgres.MigrateUp(f.cfg.URL(), logger); err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(ctx, f.cfg, logger)
	if err != nil {
		return nil, err
	}

	return &repository.CreateRepositoriesResult{
		Repos:    &repository.Repositories{User: postgres.NewUserRepository(db.Pool)},
		Database: db,
	}, nil
}

// Open is a shorthand for NewFactory(cfg, logger).Create(ctx).
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*repository.CreateRepositoriesResult, error) {
	return NewFactory(cfg, logger).Create(ctx)
}
