package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeper(t *testing.T) {
	t.Run("nonpositive interval is rejected", func(t *testing.T) {
		sweeper := NewSweeper(NewMemoryStore())
		assert.Error(t, sweeper.Start(0))
	})

	t.Run("sweep removes expired sessions", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryStore()
		require.NoError(t, store.Save(ctx, expiredSession()))
		live := liveSession()
		require.NoError(t, store.Save(ctx, live))

		sweeper := NewSweeper(store)
		sweeper.sweep()

		_, err := store.Get(ctx, live.ID)
		assert.NoError(t, err)
		deleted, err := store.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, deleted, "expired sessions were already swept")
	})

	t.Run("start and stop", func(t *testing.T) {
		sweeper := NewSweeper(NewMemoryStore())
		require.NoError(t, sweeper.Start(time.Minute))
		sweeper.Stop()
	})
}
