package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/metrics"
)

// DatabaseChecker reports database health.
type DatabaseChecker interface {
	Health(ctx context.Context) error
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	UserHandler *UserHandler
	Database    DatabaseChecker

	// Metrics enables request instrumentation and the scrape endpoint when set.
	Metrics     *metrics.Metrics
	MetricsPath string

	Logger zerolog.Logger
}

// Router wires handlers and middleware into a chi mux.
type Router struct {
	cfg    RouterConfig
	logger zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(cfg RouterConfig) *Router {
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	return &Router{
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(middleware.Recoverer)
	r.Use(AccessLog(rt.logger))
	if rt.cfg.Metrics != nil {
		r.Use(Instrument(rt.cfg.Metrics))
		r.Method(http.MethodGet, rt.cfg.MetricsPath, rt.cfg.Metrics.Handler())
	}

	r.Get("/health", rt.handleHealth)

	if rt.cfg.UserHandler != nil {
		rt.cfg.UserHandler.RegisterRoutes(r)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// handleHealth handles health check requests.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	if rt.cfg.Database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := rt.cfg.Database.Health(ctx); err != nil {
			rt.logger.Warn().Err(err).Msg("database health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
