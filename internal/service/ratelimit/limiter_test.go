package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterAllowsUpToCapacity(t *testing.T) {
	l := NewLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("ip") {
			t.Fatalf("request %d within capacity must be allowed", i)
		}
	}
	if l.Allow("ip") {
		t.Fatalf("request beyond capacity must be denied")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("a") {
		t.Fatalf("first request for a must pass")
	}
	if !l.Allow("b") {
		t.Fatalf("first request for b must pass")
	}
	if l.Allow("a") {
		t.Fatalf("second request for a must be denied")
	}
}

func TestLimiterRefills(t *testing.T) {
	l := NewLimiter(100, 1)

	if !l.Allow("ip") {
		t.Fatalf("first request must pass")
	}
	if l.Allow("ip") {
		t.Fatalf("bucket must be empty")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("ip") {
		t.Fatalf("bucket must refill at 100 tokens/s")
	}
}

func TestLimiterPrune(t *testing.T) {
	l := NewLimiter(1, 1)
	l.Allow("old")
	l.Prune(0)

	l.mu.Lock()
	n := len(l.buckets)
	l.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected pruned buckets, got %d", n)
	}
}
