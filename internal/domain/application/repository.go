package application

import "context"

type Repository interface {
	// Create stores a new session; it expires after the store's TTL.
	Create(ctx context.Context, s *Session) error
	// Get returns ErrSessionNotFound for missing or expired sessions.
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}
