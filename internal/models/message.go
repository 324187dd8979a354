package models

import "time"

// Message is a free-text entry owned by exactly one user. The wire field
// name "texto" is part of the public API and must not change.
type Message struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Texto     string    `json:"texto"`
	CreatedAt time.Time `json:"created_at"`
}
