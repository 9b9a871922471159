package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

// SessionRepository stores one active session per user.
type SessionRepository interface {
	Save(ctx context.Context, s *entity.Session, ttl time.Duration) error
	// Rotate atomically swaps the session for s when the stored sid equals
	// oldSID, and returns ErrNotFound otherwise.
	Rotate(ctx context.Context, oldSID string, s *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, userID string) (*entity.Session, error)
	Delete(ctx context.Context, userID string) error
}
