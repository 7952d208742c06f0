package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/hijri-users/internal/bootstrap"
	"github.com/prn-tf/hijri-users/internal/config"
	"github.com/prn-tf/hijri-users/internal/hijri"
	"github.com/prn-tf/hijri-users/internal/service"
)

func newService(t *testing.T) *service.UserService {
	t.Helper()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "admin.db")},
		Cache:    config.CacheConfig{Backend: "none"},
	}
	app, err := bootstrap.New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app.UserService
}

func TestSeedThenList(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, runCommand(ctx, svc, []string{"seed"}, &stdout, &stderr))
	assert.Equal(t, "Seeded 5 users\n", stdout.String())

	stdout.Reset()
	require.NoError(t, runCommand(ctx, svc, []string{"list"}, &stdout, &stderr))
	assert.Equal(t, "Ali, 2016-10-04\n"+
		"Wael, 2016-11-23\n"+
		"Mostafa, 2017-09-23\n"+
		"Mortada, 2022-08-14\n"+
		"Ibrahim, 2014-10-29\n", stdout.String())
	assert.Empty(t, stderr.String())

	stdout.Reset()
	require.NoError(t, runCommand(ctx, svc, []string{"seed"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "nothing seeded")
}

func TestAddAndListSkipped(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, runCommand(ctx, svc, []string{"add", "Sami", "14381230"}, &stdout, &stderr))
	assert.Equal(t, "Created user 1: Sami, 14381230\n", stdout.String())

	stdout.Reset()
	require.NoError(t, runCommand(ctx, svc, []string{"list"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "skipped Sami (id 1)")
}

func TestConvertCommand(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, runCommand(ctx, svc, []string{"convert", "1444-01-16"}, &stdout, &stderr))
	assert.Equal(t, "14440116 -> 2022-08-14\n", stdout.String())

	err := runCommand(ctx, svc, []string{"convert", "1444-1-16"}, &stdout, &stderr)
	assert.ErrorIs(t, err, hijri.ErrInvalidFormat)
}

func TestUsageErrors(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	var stdout, stderr bytes.Buffer

	assert.ErrorIs(t, runCommand(ctx, svc, []string{"add", "OnlyName"}, &stdout, &stderr), errUsage)
	assert.ErrorIs(t, runCommand(ctx, svc, []string{"convert"}, &stdout, &stderr), errUsage)
	assert.ErrorIs(t, runCommand(ctx, svc, []string{"frobnicate"}, &stdout, &stderr), errUsage)
	assert.Contains(t, stderr.String(), "Unknown command: frobnicate")
}
