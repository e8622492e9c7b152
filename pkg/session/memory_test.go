package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveSession() Session {
	now := time.Now().UTC()
	return Session{ID: uuid.New(), UserID: uuid.New(), CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
}

func expiredSession() Session {
	now := time.Now().UTC()
	return Session{ID: uuid.New(), UserID: uuid.New(), CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		store := NewMemoryStore()
		s := liveSession()
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})

	t.Run("unknown session", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := store.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("expired session is not returned", func(t *testing.T) {
		store := NewMemoryStore()
		s := expiredSession()
		require.NoError(t, store.Save(ctx, s))

		_, err := store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := NewMemoryStore()
		s := liveSession()
		require.NoError(t, store.Save(ctx, s))

		require.NoError(t, store.Delete(ctx, s.ID))
		require.NoError(t, store.Delete(ctx, s.ID))
		_, err := store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete expired keeps live sessions", func(t *testing.T) {
		store := NewMemoryStore()
		live := liveSession()
		require.NoError(t, store.Save(ctx, live))
		require.NoError(t, store.Save(ctx, expiredSession()))
		require.NoError(t, store.Save(ctx, expiredSession()))

		deleted, err := store.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		_, err = store.Get(ctx, live.ID)
		assert.NoError(t, err)
	})
}
