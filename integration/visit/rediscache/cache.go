package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/visitlog/core/visit"
)

// Cache keeps the last recorded digest per user and session in Redis, shared by
// every process of a deployment.
type Cache struct {
	client redis.Cmdable
	prefix string
}

// Option configures a Cache.
type Option func(*Cache)

// WithKeyPrefix namespaces keys, e.g. per environment.
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a Cache on client.
func New(client redis.Cmdable, opts ...Option) *Cache {
	if client == nil {
		panic("rediscache: client is required")
	}
	c := &Cache{client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the digest stored under key. A missing key is a miss, not an error.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	hash, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get user visit cache entry: %w", err)
	}
	return hash, true, nil
}

// Set stores hash under key with ttl. A non-positive ttl deletes the key.
func (c *Cache) Set(ctx context.Context, key, hash string, ttl time.Duration) error {
	var err error
	if ttl <= 0 {
		err = c.client.Del(ctx, c.prefix+key).Err()
	} else {
		err = c.client.Set(ctx, c.prefix+key, hash, ttl).Err()
	}
	if err != nil {
		return fmt.Errorf("set user visit cache entry: %w", err)
	}
	return nil
}

var _ visit.Cache = (*Cache)(nil)
