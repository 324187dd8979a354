package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"msgboard/internal/redis"
)

const redisSessionPrefix = "session:"

// RedisStore keeps sessions in redis so multiple instances can share them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps a redis client as a session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Create stores the session under a fresh token with the store TTL.
func (r *RedisStore) Create(ctx context.Context, sess Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	sess.ExpiresAt = time.Now().UTC().Add(r.ttl)
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, redisSessionPrefix+token, payload, r.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get returns the live session for the token.
func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	raw, err := r.client.Get(ctx, redisSessionPrefix+token)
	if err != nil {
		if errors.Is(err, redis.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.Expired(time.Now().UTC()) {
		_ = r.client.Del(ctx, redisSessionPrefix+token)
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Destroy removes the session if present.
func (r *RedisStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := r.client.Del(ctx, redisSessionPrefix+token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
