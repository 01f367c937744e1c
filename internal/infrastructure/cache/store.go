package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented cache with per-entry expiry.
// A miss is reported as (nil, false, nil); errors are reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
