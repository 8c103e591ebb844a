package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract shared by repositories and services.
// Values are JSON encoded by the implementation.
type Cache interface {
	// Get decodes the cached value into dest.
	// found is false on a miss, in which case dest is untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error

	// Counters, used for failed login tracking.
	Increment(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
