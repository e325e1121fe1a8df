package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// TTLCache is an in-process cache with per-entry expiry. Expired
// entries are dropped lazily on read and swept periodically.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	stop    chan struct{}
	once    sync.Once
}

// NewTTLCache creates a TTL cache and starts its sweeper.
func NewTTLCache(sweepEvery time.Duration) *TTLCache {
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}
	c := &TTLCache{
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}
	go c.sweep(sweepEvery)
	return c
}

func (c *TTLCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.Delete(context.Background(), key)
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *TTLCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Close stops the sweeper.
func (c *TTLCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *TTLCache) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for k, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
