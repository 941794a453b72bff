package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix = "pm:confirmation:"
	// DefaultTTL bounds how long a processed reference is remembered.
	DefaultTTL = 7 * 24 * time.Hour
)

// RedisCache remembers processed gateway transaction references.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ services.ProcessedReferenceCache = (*RedisCache)(nil)

// NewRedisClient creates a Redis client from connection settings.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisCache wraps client. A non-positive ttl selects DefaultTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Seen reports whether reference was marked as processed.
func (c *RedisCache) Seen(ctx context.Context, reference string) (bool, error) {
	_, err := c.client.Get(ctx, keyPrefix+reference).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkProcessed records reference until the TTL expires.
func (c *RedisCache) MarkProcessed(ctx context.Context, reference string) error {
	return c.client.Set(ctx, keyPrefix+reference, time.Now().UTC().Format(time.RFC3339), c.ttl).Err()
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
