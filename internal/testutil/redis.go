//go:build integration

package testutil

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
)

// RedisClient returns a client on TestDB, closed when the test ends.
func RedisClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: RedisAddr(), DB: TestDB})
	t.Cleanup(func() { client.Close() })
	return client
}

// FlushTestDB empties TestDB.
func FlushTestDB(t *testing.T) {
	t.Helper()
	if err := RedisClient(t).FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("flushing DB %d: %v", TestDB, err)
	}
}

// HashEntry reads the "TABLE|key" hash from TestDB.
func HashEntry(t *testing.T, table, key string) map[string]string {
	t.Helper()
	vals, err := RedisClient(t).HGetAll(context.Background(), table+"|"+key).Result()
	if err != nil {
		t.Fatalf("reading %s|%s: %v", table, key, err)
	}
	return vals
}

// HasEntry reports whether "TABLE|key" exists in TestDB.
func HasEntry(t *testing.T, table, key string) bool {
	t.Helper()
	n, err := RedisClient(t).Exists(context.Background(), table+"|"+key).Result()
	if err != nil {
		t.Fatalf("checking %s|%s: %v", table, key, err)
	}
	return n > 0
}
