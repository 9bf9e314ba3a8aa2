package sessions_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"courier/internal/adapters/out/sessions"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/user"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func session(username string, lastSeen time.Time) ports.Session {
	return ports.Session{
		ID:        kernel.NewUUID(),
		Username:  username,
		Role:      user.Customer,
		CreatedAt: t0,
		LastSeen:  lastSeen,
	}
}

// exerciseSessionStore runs the behaviour every backend must share.
func exerciseSessionStore(t *testing.T, store ports.SessionStore) {
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := store.Get(ctx, "nobody")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("save replaces per username", func(t *testing.T) {
		first := session("alice", t0)
		second := session("alice", t0)
		require.NoError(t, store.Save(ctx, first))
		require.NoError(t, store.Save(ctx, second))

		got, err := store.Get(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, got.ID.IsEqual(second.ID))
		assert.Equal(t, user.Customer, got.Role)
		assert.True(t, got.LastSeen.Equal(t0))
	})

	t.Run("touch moves last seen forward only", func(t *testing.T) {
		require.NoError(t, store.Touch(ctx, "alice", t0.Add(time.Minute)))
		require.NoError(t, store.Touch(ctx, "alice", t0))

		got, err := store.Get(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, got.LastSeen.Equal(t0.Add(time.Minute)))

		require.ErrorIs(t, store.Touch(ctx, "nobody", t0), errs.ErrObjectNotFound)
	})

	t.Run("delete revokes and is idempotent", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "alice"))
		require.NoError(t, store.Delete(ctx, "alice"))

		_, err := store.Get(ctx, "alice")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("delete idle", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, session("old", t0.Add(-2*time.Hour))))
		require.NoError(t, store.Save(ctx, session("fresh", t0)))

		removed, err := store.DeleteIdle(ctx, t0.Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		_, err = store.Get(ctx, "old")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		_, err = store.Get(ctx, "fresh")
		require.NoError(t, err)
		require.NoError(t, store.Delete(ctx, "fresh"))
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseSessionStore(t, sessions.NewMemoryStore())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewMemoryStore()
	require.NoError(t, store.Save(ctx, session("alice", t0)))

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Touch(ctx, "alice", t0.Add(time.Duration(i)*time.Second))
			_, _ = store.Get(ctx, "alice")
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.LastSeen.Equal(t0.Add(15*time.Second)))
}
