package cache

import (
	"context"
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("expected hit with 'v', got %q ok=%v", got, ok)
	}

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Delete(ctx, "k")
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected deleted entry to miss")
	}
}

func TestTTLCacheZeroTTLIgnored(t *testing.T) {
	c := NewTTLCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 0)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("zero TTL must not store")
	}
}
