// Package bootstrap assembles the service graph shared by the commands.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/cache/memory"
	rediscache "github.com/prn-tf/hijri-users/internal/cache/redis"
	"github.com/prn-tf/hijri-users/internal/config"
	"github.com/prn-tf/hijri-users/internal/lock"
	"github.com/prn-tf/hijri-users/internal/metrics"
	"github.com/prn-tf/hijri-users/internal/repository"
	"github.com/prn-tf/hijri-users/internal/repository/factory"
	"github.com/prn-tf/hijri-users/internal/service"
)

// App holds the wired components. Close releases them in reverse order.
type App struct {
	Config      *config.Config
	Database    repository.DatabaseHealth
	UserService *service.UserService
	Metrics     *metrics.Metrics

	closers []io.Closer
}

// New opens the database, selects the cache and locker backends and builds
// the user service.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	app := &App{Config: cfg, Metrics: metrics.New()}

	result, err := factory.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.Database = result.Database
	app.closers = append(app.closers, result.Database)

	opts := []service.Option{service.WithMetrics(app.Metrics)}

	switch cfg.Cache.Backend {
	case "memory":
		c := memory.NewCache(memory.DefaultCleanupInterval)
		app.closers = append(app.closers, c)
		opts = append(opts,
			service.WithCache(c, cfg.Cache.TTL),
			service.WithLocker(lock.NewMemoryLocker()),
		)
	case "redis":
		client, err := rediscache.NewClient(ctx, cfg.Redis)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.closers = append(app.closers, client)
		opts = append(opts,
			service.WithCache(rediscache.NewCache(client, logger), cfg.Cache.TTL),
			service.WithLocker(lock.NewRedisLocker(client)),
		)
	}

	app.UserService = service.NewUserService(result.Repos.User, logger, opts...)

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Str("cache", cfg.Cache.Backend).
		Msg("application initialized")

	return app, nil
}

// Close releases every opened resource.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
