package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/hijri-users/internal/repository"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Stop()
	ctx := context.Background()

	value := []byte(`{"id":1}`)
	require.NoError(t, c.Set(ctx, "k", value, 0))

	value[0] = 'X'
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(got))

	got[0] = 'Y'
	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(again))
}

func TestCache_Miss(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Stop()

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), 10*time.Millisecond))
	ok, err := c.Exists(ctx, "short")
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)

	_, err = c.Get(ctx, "short")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
	ok, err = c.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	c.cleanup()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Delete(t *testing.T) {
	c := NewCache(time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}

func TestCache_StopTwice(t *testing.T) {
	c := NewCache(0)
	c.Stop()
	assert.NotPanics(t, c.Stop)
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache(time.Millisecond)
	defer c.Stop()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, "shared", []byte("v"), time.Millisecond)
				_, _ = c.Get(ctx, "shared")
				_ = c.Delete(ctx, "shared")
			}
		}()
	}
	wg.Wait()
}
