package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), "redis://"+s.Addr())
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, s
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, s := newTestRedis(t)

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Fatalf("Get before Set = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get = %q, hit %v, err %v", data, hit, err)
	}
	if ttl := s.TTL("key"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if s.Exists("key") {
		t.Error("key still present after Delete")
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, s := newTestRedis(t)

	if err := c.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	s.FastForward(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should miss")
	}
}

func TestRedisCacheNoTTL(t *testing.T) {
	ctx := context.Background()
	c, s := newTestRedis(t)

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if ttl := s.TTL("key"); ttl != 0 {
		t.Errorf("TTL = %v, want none", ttl)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not a url"); err == nil {
		t.Error("NewRedisCache should reject an invalid URL")
	}
}

func TestRedisCacheServerDown(t *testing.T) {
	ctx := context.Background()
	c, s := newTestRedis(t)
	s.Close()

	_, _, err := c.Get(ctx, "key")
	if err == nil {
		t.Fatal("Get against a stopped server should fail")
	}
	if !IsRetryable(err) {
		t.Errorf("connection failure should be retryable: %v", err)
	}
}
