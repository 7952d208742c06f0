// Package postgres provides PostgreSQL database utilities.
package postgres

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/config"
)

// MigrationsFS holds the versioned schema files applied by golang-migrate.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// DB wraps a pgx connection pool with additional functionality.
type DB struct {
	Pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDB creates a new database connection pool.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.ConnMaxIdleTime

	poolConfig.ConnConfig.ConnectTimeout = 10 * time.Second

	if logger.GetLevel() <= zerolog.DebugLevel {
		poolConfig.ConnConfig.Tracer = &queryTracer{logger: logger}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_conns", cfg.MaxOpenConns).
		Msg("connected to PostgreSQL")

	return &DB{
		Pool:   pool,
		logger: logger,
	}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	db.Pool.Close()
	db.logger.Info().Msg("database connection pool closed")
	return nil
}

// Ping checks the database connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Health checks the database connection health.
func (db *DB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// queryTracer implements pgx.QueryTracer for debug logging.
type queryTracer struct {
	logger zerolog.Logger
}

type traceQueryCtxKey struct{}

type traceQueryData struct {
	sql       string
	args      []any
	startTime time.Time
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceQueryCtxKey{}, &traceQueryData{
		sql:       data.SQL,
		args:      data.Args,
		startTime: time.Now(),
	})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	queryData, ok := ctx.Value(traceQueryCtxKey{}).(*traceQueryData)
	if !ok {
		return
	}

	duration := time.Since(queryData.startTime)

	event := t.logger.Debug().
		Str("sql", queryData.sql).
		Dur("duration", duration).
		Str("command_tag", data.CommandTag.String())

	if data.Err != nil {
		event.Err(data.Err)
	}

	event.Msg("query executed")
}

// Pool is the subset of pgxpool.Pool used by the repositories.
// pgxmock pools satisfy it too.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Pool = (*pgxpool.Pool)(nil)
	_ Pool = (pgx.Tx)(nil)
)
