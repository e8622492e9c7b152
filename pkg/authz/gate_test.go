package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequireAuthenticated(t *testing.T) {
	gate := NewGate()

	t.Run("anonymous is rejected", func(t *testing.T) {
		assert.ErrorIs(t, gate.RequireAuthenticated(Identity{}), ErrLoginRequired)
	})
	t.Run("any authenticated identity is admitted", func(t *testing.T) {
		id := Identity{UserID: uuid.New(), SessionID: uuid.New()}
		assert.NoError(t, gate.RequireAuthenticated(id))
	})
}

func TestRequireOwner(t *testing.T) {
	gate := NewGate()
	owner := uuid.New()

	tests := []struct {
		name   string
		caller Identity
		want   error
	}{
		{
			name:   "owner is admitted",
			caller: Identity{UserID: owner, SessionID: uuid.New()},
			want:   nil,
		},
		{
			name:   "other authenticated user is forbidden",
			caller: Identity{UserID: uuid.New(), SessionID: uuid.New()},
			want:   ErrForbidden,
		},
		{
			// Authentication is checked strictly before ownership.
			name:   "anonymous gets login required, never forbidden",
			caller: Identity{},
			want:   ErrLoginRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.RequireOwner(tt.caller, owner)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestIdentityAnonymous(t *testing.T) {
	assert.True(t, Identity{}.Anonymous())
	assert.False(t, Identity{UserID: uuid.New()}.Anonymous())
}
