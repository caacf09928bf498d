package cache

import (
	"context"
	"testing"
	"time"
)

func TestKeyCanonical(t *testing.T) {
	got := Key("launchpad_tokens", "Raydium", "7d")
	if got != "launchpad_tokens:raydium:7d" {
		t.Fatalf("unexpected key %q", got)
	}
	if Key("macro") != "macro" {
		t.Fatalf("bare capability should have no separator")
	}
	if Key("whales", "ethereum") != Key("whales", "ETHEREUM") {
		t.Fatalf("keys must be case insensitive over params")
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type payload struct {
		Value int `json:"value"`
	}

	if err := mc.Set(ctx, "k", payload{Value: 7}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Value != 7 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestMemoryCacheMissOnAbsent(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var dest string
	if err := mc.Get(context.Background(), "absent", &dest); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheMissAfterTTL(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	var dest string
	if err := mc.Get(ctx, "k", &dest); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestMemoryCacheOverwriteExtendsExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "old", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := mc.Set(ctx, "k", "new", time.Minute); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	var dest string
	if err := mc.Get(ctx, "k", &dest); err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if dest != "new" {
		t.Fatalf("expected replaced payload, got %q", dest)
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", 1, time.Minute)
	_ = mc.Set(ctx, "b", 2, time.Minute)

	// Touch "a" so "b" becomes the LRU victim.
	var n int
	_ = mc.Get(ctx, "a", &n)

	_ = mc.Set(ctx, "c", 3, time.Minute)

	if ok, _ := mc.Exists(ctx, "b"); ok {
		t.Fatalf("expected lru eviction of b")
	}
	if ok, _ := mc.Exists(ctx, "a"); !ok {
		t.Fatalf("recently used key evicted")
	}
}
