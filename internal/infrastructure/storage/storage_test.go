package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-site/internal/config"
	"github.com/your-org/restaurant-site/internal/pkg/kv"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     func(*config.Config)
		watcher bool
	}{
		{"memory", func(c *config.Config) {}, true},
		{"filesystem", func(c *config.Config) { c.Storage.LocalPath = filepath.Join(dir, "fs") }, false},
		{"sqlite", func(c *config.Config) { c.Storage.SQLiteDSN = filepath.Join(dir, "kv.db") }, false},
		{"redis", func(c *config.Config) {
			c.Redis.Host = mr.Host()
			c.Redis.Port = mr.Port()
			c.Redis.PoolSize = 2
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Storage.Backend = tt.name
			tt.cfg(cfg)

			b, err := Open(cfg)
			require.NoError(t, err)
			t.Cleanup(func() { b.Close() })

			assert.Equal(t, tt.name, b.Name)
			require.NoError(t, b.Store.Ping(context.Background()))

			_, isWatcher := b.Store.(kv.Watcher)
			assert.Equal(t, tt.watcher, isWatcher)
			assert.Equal(t, tt.name == config.StorageRedis, b.Redis != nil)
		})
	}
}

func TestOpen_Unsupported(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Backend = "floppy"

	_, err := Open(cfg)
	assert.EqualError(t, err, `unsupported storage backend "floppy"`)
}
