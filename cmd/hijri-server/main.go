// Package main is the entry point for the Hijri users HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/bootstrap"
	"github.com/prn-tf/hijri-users/internal/config"
	"github.com/prn-tf/hijri-users/internal/handler"
	"github.com/prn-tf/hijri-users/internal/logging"
	"github.com/prn-tf/hijri-users/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "hijri-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting hijri users server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close resources")
		}
	}()

	if cfg.Seed.Enabled {
		if _, err := app.UserService.Seed(ctx, service.DefaultSeed); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	routerCfg := handler.RouterConfig{
		UserHandler: handler.NewUserHandler(app.UserService, logger),
		Database:    app.Database,
		Logger:      logger,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = app.Metrics
		routerCfg.MetricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.NewRouter(routerCfg).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	return shutdown(srv, cfg.Server, logger)
}

func shutdown(srv *http.Server, cfg config.ServerConfig, logger zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
