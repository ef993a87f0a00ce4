package cache

import (
	"context"
	"errors"
	"time"
)

// Store is a small TTL key-value cache used for the cart handle and the
// badge count. Redis in production, memory when no redis is configured.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")
