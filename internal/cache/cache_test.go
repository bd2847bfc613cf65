package cache

import (
	"context"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(true)
	ctx := context.Background()

	etag := c.Set(ctx, "k", []byte(`{"a":1}`), time.Minute)
	data, gotETag, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(data) != `{"a":1}` {
		t.Errorf("data = %s", data)
	}
	if gotETag != etag {
		t.Errorf("etag = %q, want %q", gotETag, etag)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(true)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", []byte("v"), time.Minute)
	now = now.Add(2 * time.Minute)

	if _, _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}
	c.evict()
	if got := c.Stats()["total_keys"]; got != 0 {
		t.Errorf("total_keys after evict = %v", got)
	}
}

func TestCacheDisabled(t *testing.T) {
	c := New(false)
	ctx := context.Background()

	etag := c.Set(ctx, "k", []byte("v"), time.Minute)
	if etag == "" {
		t.Error("disabled cache should still compute an etag")
	}
	if _, _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("disabled cache must always miss")
	}
}

func TestETag(t *testing.T) {
	a := ComputeETag([]byte("x"))
	if a != ComputeETag([]byte("x")) {
		t.Fatal("etag must be deterministic")
	}
	if a == ComputeETag([]byte("y")) {
		t.Fatal("different payloads should differ")
	}
	if !CheckETagMatch(a, a) || !CheckETagMatch("*", a) {
		t.Error("expected match")
	}
	if CheckETagMatch("", a) || CheckETagMatch(`W/"other"`, a) {
		t.Error("unexpected match")
	}
}
