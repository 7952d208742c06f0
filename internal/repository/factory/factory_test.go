package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/hijri-users/internal/config"
	"github.com/prn-tf/hijri-users/internal/domain"
	"github.com/prn-tf/hijri-users/internal/hijri"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "hijri.db"),
	}

	result, err := Open(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = result.Database.Close() })

	require.NoError(t, result.Database.Health(ctx))

	user := domain.NewUser("Wael", hijri.MustParse("14380222"))
	require.NoError(t, result.Repos.User.Create(ctx, user))

	got, err := result.Repos.User.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.BirthDate, got.BirthDate)
}

func TestOpen_UnknownDriver(t *testing.T) {
	f := NewFactory(config.DatabaseConfig{Driver: "oracle"}, zerolog.Nop())
	assert.Equal(t, "oracle", f.Driver())

	_, err := f.Create(context.Background())
	assert.ErrorContains(t, err, "unsupported database driver")
}
