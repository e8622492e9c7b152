package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ogaworks/taskboard/pkg/authz"
	"github.com/ogaworks/taskboard/pkg/user"
)

// Manager verifies credentials and issues, resolves and destroys sessions.
type Manager struct {
	users user.Repository
	store Store
	codec TokenCodec
	ttl   time.Duration
}

func NewManager(users user.Repository, store Store, codec TokenCodec, ttl time.Duration) *Manager {
	return &Manager{users: users, store: store, codec: codec, ttl: ttl}
}

// Authenticate verifies the email/password pair and issues a new session.
// Both an unknown email and a wrong password surface as
// ErrInvalidCredentials.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (Session, string, error) {
	u, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, "", ErrInvalidCredentials
		}
		return Session{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	s := Session{
		ID:        uuid.New(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return Session{}, "", err
	}
	token, err := m.codec.Encode(s)
	if err != nil {
		// Roll back the registry entry; a session without a token is
		// unreachable anyway.
		_ = m.store.Delete(ctx, s.ID)
		return Session{}, "", err
	}
	return s, token, nil
}

// Resolve maps a wire token to a caller identity. The token must verify, the
// session record must still be live, and the bound user must still exist.
// Any failure yields an anonymous identity with authz.ErrLoginRequired.
func (m *Manager) Resolve(ctx context.Context, token string) (authz.Identity, error) {
	sessionID, userID, err := m.codec.Decode(token)
	if err != nil {
		return authz.Identity{}, authz.ErrLoginRequired
	}
	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return authz.Identity{}, authz.ErrLoginRequired
		}
		return authz.Identity{}, err
	}
	if s.UserID != userID {
		return authz.Identity{}, authz.ErrLoginRequired
	}
	if _, err := m.users.GetByID(ctx, s.UserID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return authz.Identity{}, authz.ErrLoginRequired
		}
		return authz.Identity{}, err
	}
	return authz.Identity{UserID: s.UserID, SessionID: s.ID}, nil
}

// Destroy invalidates the session carried by token. It is idempotent:
// malformed tokens and already-destroyed sessions are not errors.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	sessionID, _, err := m.codec.Decode(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, sessionID)
}
