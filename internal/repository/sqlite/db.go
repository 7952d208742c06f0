// Package sqlite provides SQLite database utilities for embedded deployments.
// This package uses modernc.org/sqlite, a pure Go SQLite implementation that
// doesn't require CGO, making it ideal for cross-platform single-binary deployments.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Config holds SQLite connection settings.
type Config struct {
	// Path is the path to the SQLite database file.
	Path string

	// MaxOpenConns sets the maximum number of open connections.
	MaxOpenConns int

	// MaxIdleConns sets the maximum number of idle connections.
	MaxIdleConns int

	// ConnMaxLifetime sets the maximum connection lifetime.
	ConnMaxLifetime time.Duration

	// JournalMode sets the SQLite journal mode (WAL recommended for concurrency).
	JournalMode string

	// BusyTimeout sets the busy timeout in milliseconds.
	BusyTimeout int

	// CacheSize sets the page cache size (negative = KB, positive = pages).
	CacheSize int

	// SynchronousMode sets the synchronous mode (NORMAL, FULL, OFF).
	SynchronousMode string
}

// DefaultConfig returns a default SQLite configuration.
func DefaultConfig(dbPath string) Config {
	return Config{
		Path:            dbPath,
		MaxOpenConns:    1, // SQLite works best with single writer
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		JournalMode:     "WAL",
		BusyTimeout:     5000,  // 5 seconds
		CacheSize:       -2000, // 2MB
		SynchronousMode: "NORMAL",
	}
}

// ConfigFrom maps the application database settings onto a SQLite Config.
func ConfigFrom(cfg config.DatabaseConfig) Config {
	c := DefaultConfig(cfg.Path)
	if cfg.JournalMode != "" {
		c.JournalMode = cfg.JournalMode
	}
	if cfg.BusyTimeout > 0 {
		c.BusyTimeout = cfg.BusyTimeout
	}
	if cfg.CacheSize != 0 {
		c.CacheSize = cfg.CacheSize
	}
	if cfg.SynchronousMode != "" {
		c.SynchronousMode = cfg.SynchronousMode
	}
	return c
}

// DB wraps a sql.DB connection for SQLite.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger
	path   string
}

// NewDB creates a new SQLite database connection.
// The parent directory of cfg.Path is created if missing.
func NewDB(ctx context.Context, cfg Config, logger zerolog.Logger) (*DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	connStr := fmt.Sprintf(
		"%s?_pragma=journal_mode(%s)&_pragma=busy_timeout(%d)&_pragma=cache_size(%d)&_pragma=synchronous(%s)&_pragma=foreign_keys(1)",
		cfg.Path,
		cfg.JournalMode,
		cfg.BusyTimeout,
		cfg.CacheSize,
		cfg.SynchronousMode,
	)

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	logger.Info().
		Str("path", cfg.Path).
		Str("journal_mode", cfg.JournalMode).
		Int("max_conns", cfg.MaxOpenConns).
		Msg("connected to SQLite database")

	return &DB{
		db:     db,
		logger: logger,
		path:   cfg.Path,
	}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.logger.Info().Msg("closing SQLite connection")
	return db.db.Close()
}

// Ping checks the database connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

// Health checks the database connection health.
func (db *DB) Health(ctx context.Context) error {
	return db.Ping(ctx)
}

// DB returns the underlying sql.DB.
func (db *DB) DB() *sql.DB {
	return db.db
}

// WithTx executes a function within a transaction.
// If the function returns an error, the transaction is rolled back.
// Otherwise, the transaction is committed.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ExecContext executes a query without returning rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// Migrate applies the embedded *.up.sql migrations that have not run yet.
// Files are named NNNNNN_description.up.sql and applied in version order.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err = db.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	db.logger.Info().Int("current_version", currentVersion).Msg("checking migrations")

	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.sql); err != nil {
				return fmt.Errorf("failed to apply migration %d: %w", m.version, err)
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		db.logger.Info().Int("version", m.version).Str("file", m.name).Msg("applied migration")
	}

	return nil
}

type migration struct {
	version int
	name    string
	sql     string
}

func loadMigrations() ([]migration, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	migrations := make([]migration, 0, len(names))
	for _, name := range names {
		base := filepath.Base(name)
		prefix, _, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("malformed migration file name %q", base)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("malformed migration version in %q: %w", base, err)
		}
		body, err := migrationsFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %q: %w", base, err)
		}
		migrations = append(migrations, migration{version: version, name: base, sql: string(body)})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].version < migrations[j].version })
	return migrations, nil
}
