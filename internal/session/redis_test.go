package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"msgboard/internal/config"
	"msgboard/internal/redis"
)

func newRedisTestStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis-backed session tests")
	}
	cfg := &config.Config{
		Redis: config.RedisConfig{Addr: addr},
	}
	client, err := redis.NewClient(cfg)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Hour)
}

func TestRedisStoreLifecycle(t *testing.T) {
	store := newRedisTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, Session{
		User: Identity{ID: 7, Username: "carol"},
		Role: "admin",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	sess, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if sess.User.ID != 7 || sess.Role != "admin" {
		t.Fatalf("unexpected session %+v", sess)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy error: %v", err)
	}
	if _, err := store.Get(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after destroy, got %v", err)
	}
}
