package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*Replies, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewReplies(client, 5*time.Second), mr
}

func TestReplies(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		cache, _ := setupCache(t)

		_, ok := cache.Get(ctx, "tech", 1)
		assert.False(t, ok)

		cache.Set(ctx, "tech", 1, 7)

		count, ok := cache.Get(ctx, "tech", 1)
		require.True(t, ok)
		assert.Equal(t, 7, count)
	})

	t.Run("keys are scoped per board", func(t *testing.T) {
		cache, _ := setupCache(t)

		cache.Set(ctx, "tech", 1, 3)

		_, ok := cache.Get(ctx, "random", 1)
		assert.False(t, ok)
	})

	t.Run("entries expire", func(t *testing.T) {
		cache, mr := setupCache(t)

		cache.Set(ctx, "tech", 1, 3)
		mr.FastForward(6 * time.Second)

		_, ok := cache.Get(ctx, "tech", 1)
		assert.False(t, ok)
	})

	t.Run("garbage value is a miss", func(t *testing.T) {
		cache, mr := setupCache(t)

		require.NoError(t, mr.Set("replies:tech:1", "not-a-number"))

		_, ok := cache.Get(ctx, "tech", 1)
		assert.False(t, ok)
	})

	t.Run("redis outage degrades to miss", func(t *testing.T) {
		cache, mr := setupCache(t)
		mr.Close()

		_, ok := cache.Get(ctx, "tech", 1)
		assert.False(t, ok)

		// Set must not panic either
		cache.Set(ctx, "tech", 1, 2)
	})
}
