package session

import "context"

type Store interface {
	// Create stores a new session; it expires at s.ExpiresAt
	Create(ctx context.Context, s *Session) error
	// Get returns ErrNotFound for unknown or already evicted ids
	Get(ctx context.Context, id string) (*Session, error)
	// Save overwrites an existing session keeping its expiry
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
