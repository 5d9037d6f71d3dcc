//go:build integration

// Package testutil provides test helpers for integration tests.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultRedisAddr is used when MISTCONV_REDIS_ADDR is unset.
const DefaultRedisAddr = "127.0.0.1:6379"

// TestDB is the Redis database integration tests write to.
const TestDB = 15

// RedisAddr returns the address of the test Redis server.
func RedisAddr() string {
	if addr := os.Getenv("MISTCONV_REDIS_ADDR"); addr != "" {
		return addr
	}
	return DefaultRedisAddr
}

// SkipIfNoRedis skips the test if the test Redis server is not reachable.
func SkipIfNoRedis(t *testing.T) {
	t.Helper()

	addr := RedisAddr()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("test Redis not reachable at %s: %v", addr, err)
	}
}

// Must fails the test on err and returns val otherwise.
func Must[T any](t *testing.T, val T, err error) T {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return val
}
