// Package board implements user accounts and per-user message storage over
// the shared SQL pool.
package board

import "database/sql"

// Service handles user lifecycle and message persistence.
type Service struct {
	db     *sql.DB
	driver string
}

// NewService builds a board service. The driver name selects the dialect for
// lazy schema creation on the message write path.
func NewService(db *sql.DB, driver string) *Service {
	return &Service{db: db, driver: driver}
}
