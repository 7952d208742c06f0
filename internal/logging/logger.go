// Package logging builds the zerolog logger used across the service.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/config"
)

// New creates a logger from the logging configuration.
func New(cfg config.LoggingConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var out io.Writer
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to open log output: %w", err)
		}
		out = f
	}

	return NewWithWriter(out, cfg.Format, cfg.TimeFormat, level), nil
}

// NewWithWriter creates a logger writing to out.
func NewWithWriter(out io.Writer, format, timeFormat string, level zerolog.Level) zerolog.Logger {
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = timeFormat

	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
