package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	return NewCache("test", client)
}

func TestCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Store(ctx, "dims:some-url", "640x480", time.Hour); err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	got, err := c.Get(ctx, "dims:some-url")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "640x480" {
		t.Errorf("Get() = %q, want 640x480", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := newTestCache(t)
	if _, err := c.Get(context.Background(), "never-stored"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestCacheRemove(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	if err := c.Store(ctx, "k", "v", time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := c.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, err := c.Get(ctx, "k"); err == nil {
		t.Error("expected error after Remove")
	}
}

func TestCacheNamespaceIsolation(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	a := NewCache("a", client)
	b := NewCache("b", client)
	ctx := context.Background()

	if err := a.Store(ctx, "k", "from-a", time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Get(ctx, "k"); err == nil {
		t.Error("namespace b sees namespace a's key")
	}
	if err := a.Flush(ctx); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if _, err := a.Get(ctx, "k"); err == nil {
		t.Error("expected error after Flush")
	}
}
