// Package session holds server-side login state keyed by an opaque cookie
// token. Handlers only see the Store interface, so the in-memory backend can
// be swapped for redis without touching them.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no live session matches the token.
var ErrNotFound = errors.New("session not found")

// Identity is the authenticated user stored in a session.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Session is the state held server-side for one logged-in client.
type Session struct {
	User      Identity  `json:"user"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its lifetime.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store persists sessions between requests.
type Store interface {
	// Create stores the session and returns its opaque token.
	Create(ctx context.Context, sess Session) (string, error)
	// Get returns the live session for the token, or ErrNotFound.
	Get(ctx context.Context, token string) (*Session, error)
	// Destroy removes the session. Destroying an absent session is a no-op.
	Destroy(ctx context.Context, token string) error
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
