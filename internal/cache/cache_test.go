package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/rahulk1255/taskhub/internal/cache"
)

func TestMemoryGetSetDelete(t *testing.T) {
	c := cache.NewMemory(time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	c.Set(ctx, "k", []byte("v1"))

	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v1" {
		t.Fatalf("expected hit with v1, got %q ok=%v", got, ok)
	}

	c.Delete(ctx, "k")

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	c := cache.NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v1"))

	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after ttl elapsed")
	}
}

func TestMemoryClear(t *testing.T) {
	c := cache.NewMemory(time.Minute)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))

	c.Clear()

	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatalf("expected miss after clear")
	}
	if _, ok := c.Get(ctx, "b"); ok {
		t.Fatalf("expected miss after clear")
	}
}
