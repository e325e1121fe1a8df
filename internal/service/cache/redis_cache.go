package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	applogger "FinLens/pkg/logger"
)

// RedisCache caches serialized responses in Redis so cached analytics
// survive restarts and are shared across replicas. Failures degrade to
// a cache miss.
type RedisCache struct {
	client *redis.Client
	prefix string
	log    *applogger.Logger
}

// NewRedisCache connects to Redis. The prefix namespaces keys.
func NewRedisCache(addr, password string, db int, prefix string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{client: client, prefix: prefix}, nil
}

// SetLogger attaches a logger for cache diagnostics.
func (c *RedisCache) SetLogger(l *applogger.Logger) { c.log = l }

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil && c.log != nil {
			c.log.Warn("redis get error", applogger.Error(err))
		}
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil && c.log != nil {
		c.log.Warn("redis set error", applogger.Error(err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil && c.log != nil {
		c.log.Warn("redis del error", applogger.Error(err))
	}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
