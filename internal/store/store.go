// Package store provides session persistence interfaces and implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/entrevio-dev/entrevio/internal/domain"
)

// ErrNotFound is returned by updates against a session the store no longer
// holds.
var ErrNotFound = errors.New("session not found")

// Repository defines the interface for persisting interview sessions.
type Repository interface {
	// CreateSession stores a new session. The id must be unused.
	CreateSession(ctx context.Context, s *domain.Session) error

	// GetSession retrieves a session by id. A missing session returns
	// nil, nil.
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// UpdateSession replaces a stored session. Updating a missing session
	// returns ErrNotFound.
	UpdateSession(ctx context.Context, s *domain.Session) error

	// DeleteSession removes a session. Deleting a missing session is a no-op.
	DeleteSession(ctx context.Context, id string) error

	// ListSessions returns every stored session, newest first.
	ListSessions(ctx context.Context) ([]*domain.Session, error)

	// DeleteExpiredSessions removes sessions idle longer than ttl and returns
	// the ids it deleted.
	DeleteExpiredSessions(ctx context.Context, ttl time.Duration) ([]string, error)

	// Ping verifies the store is usable.
	Ping(ctx context.Context) error

	// Close releases the store.
	Close() error
}
