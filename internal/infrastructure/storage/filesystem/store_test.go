package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-site/internal/pkg/kv/kvtest"
)

func TestStore(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	kvtest.RunStoreTests(t, s)
}

func TestStore_FileLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "cg_cart_v1", []byte("[]")))

	data, err := os.ReadFile(filepath.Join(dir, "cg_cart_v1.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestStore_PingMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, s.Ping(context.Background()))
}
