package cache

import (
	"context"
	"time"
)

// BytesCache caches serialized responses keyed by request identity.
type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
