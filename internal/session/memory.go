package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Sessions do not survive a
// restart; expired entries are dropped on read.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
}

// NewMemoryStore builds an in-memory store with the supplied session lifetime.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

// Create stores the session and returns its token.
func (m *MemoryStore) Create(_ context.Context, sess Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	sess.ExpiresAt = time.Now().UTC().Add(m.ttl)
	m.mu.Lock()
	m.sessions[token] = sess
	m.mu.Unlock()
	return token, nil
}

// Get returns the live session for the token.
func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	m.mu.RLock()
	sess, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired(time.Now().UTC()) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Destroy removes the session if present.
func (m *MemoryStore) Destroy(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}
