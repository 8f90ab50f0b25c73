// Package kvtest holds behaviour tests every kv.Store implementation must pass.
package kvtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-site/internal/pkg/kv"
)

// RunStoreTests exercises the kv.Store contract against s
func RunStoreTests(t *testing.T, s kv.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "cg_cart_v1", []byte(`[{"id":"a"}]`)))
		got, err := s.Get(ctx, "cg_cart_v1")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"a"}]`, string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "slot", []byte("first")))
		require.NoError(t, s.Set(ctx, "slot", []byte("second")))
		got, err := s.Get(ctx, "slot")
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "a/b", []byte("1")))
		require.NoError(t, s.Set(ctx, "a_b", []byte("2")))
		got, err := s.Get(ctx, "a/b")
		require.NoError(t, err)
		assert.Equal(t, "1", string(got))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "gone", []byte("x")))
		require.NoError(t, s.Delete(ctx, "gone"))
		_, err := s.Get(ctx, "gone")
		assert.ErrorIs(t, err, kv.ErrNotFound)
		assert.NoError(t, s.Delete(ctx, "gone"), "deleting a missing key is not an error")
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}

// RunWatcherTests checks that w reports a write made through s
func RunWatcherTests(t *testing.T, s kv.Store, w kv.Watcher) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := w.Watch(ctx, "watched")
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "watched", []byte("v1")))
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-changes:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond, "channel closes after cancel")
}
