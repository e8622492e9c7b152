// Package session owns the full session lifecycle: credential verification,
// identity resolution, and destruction. No other component creates or
// invalidates session state.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors used by the manager and stores
var (
	// ErrInvalidCredentials is the constant-shape authentication failure:
	// it does not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
)

// Session binds one issued token to one user identity until it expires or
// is destroyed by logout.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Store is the server-side session registry. A token only resolves while its
// session record is live, so deleting the record revokes the token.
// All methods must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, s Session) error
	// Get returns ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, id uuid.UUID) (Session, error)
	// Delete is idempotent; removing an absent session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes expired sessions and returns how many.
	DeleteExpired(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// TokenCodec translates between a session and its opaque wire token.
type TokenCodec interface {
	Encode(s Session) (string, error)
	// Decode verifies the token and extracts the session and user IDs.
	Decode(token string) (sessionID, userID uuid.UUID, err error)
}
