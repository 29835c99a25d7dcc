//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Run with: REDIS_ADDR=localhost:6379 go test -tags integration ./pkg/cache
func TestRedisCacheIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr, Prefix: "panelayout-test:"})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer c.Close()

	key := "format:" + time.Now().Format(time.RFC3339Nano)
	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get before Set = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("snapshot"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "snapshot" {
		t.Fatalf("Get after Set = %q, hit %v, err %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry should be gone after Delete")
	}
}
