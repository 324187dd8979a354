package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"msgboard/internal/models"
	"msgboard/internal/storage"
)

// AddMessage stores a message owned by the user. The messages table is
// created lazily before every insert so a never-migrated database heals
// itself on first write.
func (s *Service) AddMessage(ctx context.Context, userID int64, texto string) (*models.Message, error) {
	if userID <= 0 {
		return nil, errors.New("user id is required")
	}
	if texto == "" {
		return nil, errors.New("texto cannot be empty")
	}
	if err := storage.EnsureMessagesTable(s.db, s.driver); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (user_id, texto, created_at) VALUES (?, ?, ?)`,
		userID, texto, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("message id: %w", err)
	}
	return &models.Message{ID: id, UserID: userID, Texto: texto, CreatedAt: now}, nil
}

// ListMessages returns the user's messages in insertion order.
func (s *Service) ListMessages(ctx context.Context, userID int64) ([]models.Message, error) {
	if userID <= 0 {
		return nil, errors.New("user id is required")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, texto, created_at FROM messages WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Texto, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.UserID = userID
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}
