package storage

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/config"
	"github.com/your-org/restaurant-site/internal/infrastructure/database/postgres"
	redisdb "github.com/your-org/restaurant-site/internal/infrastructure/database/redis"
	"github.com/your-org/restaurant-site/internal/infrastructure/storage/filesystem"
	"github.com/your-org/restaurant-site/internal/infrastructure/storage/memory"
	"github.com/your-org/restaurant-site/internal/infrastructure/storage/sqlite"
	"github.com/your-org/restaurant-site/internal/pkg/kv"
)

// Backend is the opened key-value store plus the connections it owns.
type Backend struct {
	Name  string
	Store kv.Store

	// Redis is set only for the redis backend; the rate limiter reuses it.
	Redis *goredis.Client

	closers []func() error
}

// Open connects the backend selected by STORAGE_BACKEND.
func Open(cfg *config.Config) (*Backend, error) {
	b := &Backend{Name: cfg.Storage.Backend}
	storageField := logrus.Fields{
		"storageType": cfg.Storage.Backend,
	}

	switch cfg.Storage.Backend {
	case config.StorageFilesystem:
		storageField["basePath"] = cfg.Storage.LocalPath
		store, err := filesystem.NewStore(cfg.Storage.LocalPath)
		if err != nil {
			return nil, err
		}
		b.Store = store
	case config.StorageSQLite:
		storageField["dataSourceName"] = cfg.Storage.SQLiteDSN
		store, err := sqlite.NewStore(cfg.Storage.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		b.Store = store
		b.closers = append(b.closers, store.Close)
	case config.StorageRedis:
		storageField["addr"] = cfg.GetRedisAddr()
		client, err := redisdb.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		b.Store = redisdb.NewStore(client.GetClient())
		b.Redis = client.GetClient()
		b.closers = append(b.closers, client.Close)
	case config.StoragePostgres:
		storageField["database"] = cfg.Database.Name
		db, err := postgres.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		migration := postgres.NewMigration(db.GetDB())
		if err := migration.RunAutoMigrations(); err != nil {
			db.Close()
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
		if err := migration.CreateIndexes(); err != nil {
			logrus.WithError(err).Warn("Index creation failed")
		}
		b.Store = postgres.NewStore(db.GetDB())
		b.closers = append(b.closers, db.Close)
	case config.StorageMemory:
		b.Store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}

	logrus.WithFields(storageField).Info("Use storage")
	return b, nil
}

// Close releases every connection the backend opened, in reverse order.
func (b *Backend) Close() error {
	var firstErr error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
