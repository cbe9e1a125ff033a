package session

import (
	"context"
	"fmt"
	"time"

	"prizzys-backend/internal/domain/apperr"
	"prizzys-backend/internal/domain/user"
)

var ErrNotFound = fmt.Errorf("session expired or revoked: %w", apperr.ErrAuthFailure)

// Session is the server-side half of a bearer token; the token's jti is its ID.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      user.Role `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type EventKind string

const (
	EventLogin  EventKind = "login"
	EventLogout EventKind = "logout"
)

// Event announces a session change for one user.
type Event struct {
	Kind      EventKind `json:"kind"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	At        time.Time `json:"at"`
}

type Store interface {
	Create(ctx context.Context, s Session) error
	// Get returns ErrNotFound once the session expired or was deleted.
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	Publish(ctx context.Context, ev Event) error
	// Subscribe streams events for userID until ctx is done, then closes the channel.
	Subscribe(ctx context.Context, userID string) (<-chan Event, error)
}
