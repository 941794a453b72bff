package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheMarksReferences(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCache(NewRedisClient(mr.Addr(), "", 0), time.Hour)
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))

	seen, err := cache.Seen(ctx, "QK1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, cache.MarkProcessed(ctx, "QK1"))

	seen, err = cache.Seen(ctx, "QK1")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.True(t, mr.Exists(keyPrefix+"QK1"))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"QK1"))

	seen, err = cache.Seen(ctx, "QK2")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisCacheExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCache(NewRedisClient(mr.Addr(), "", 0), time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.MarkProcessed(ctx, "QK1"))
	mr.FastForward(2 * time.Minute)

	seen, err := cache.Seen(ctx, "QK1")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisCacheDefaultTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCache(NewRedisClient(mr.Addr(), "", 0), 0)

	require.NoError(t, cache.MarkProcessed(context.Background(), "QK1"))
	assert.Equal(t, DefaultTTL, mr.TTL(keyPrefix+"QK1"))
}

func TestRedisCacheUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCache(NewRedisClient(mr.Addr(), "", 0), time.Minute)
	mr.Close()

	_, err := cache.Seen(context.Background(), "QK1")
	assert.Error(t, err)
}
