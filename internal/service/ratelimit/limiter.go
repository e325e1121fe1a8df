package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token-bucket rate limiter keyed by caller identity
// (typically client IP). Each key gets its own bucket.
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// NewLimiter creates a limiter refilling rate tokens per second up to
// capacity.
func NewLimiter(rate float64, capacity int) *Limiter {
	if rate <= 0 {
		rate = 10
	}
	if capacity <= 0 {
		capacity = int(rate)
	}
	return &Limiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: float64(capacity),
	}
}

// Allow reports whether the key may proceed, consuming one token.
func (l *Limiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastFill: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens += elapsed * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastFill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Prune drops buckets idle longer than maxIdle. Callers may run this
// periodically to bound memory on high-cardinality keys.
func (l *Limiter) Prune(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, b := range l.buckets {
		if b.lastFill.Before(cutoff) {
			delete(l.buckets, k)
		}
	}
}
