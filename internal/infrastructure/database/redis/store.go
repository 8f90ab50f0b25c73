package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/pkg/kv"
)

const changeChannelPrefix = "kv:changed:"

// Store keeps key-value slots in Redis and announces every write on a
// per-key pub/sub channel so other processes sharing the slot can reload.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a Redis-backed key-value store
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func changeChannel(key string) string {
	return changeChannelPrefix + key
}

// Get retrieves a value by key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		logrus.WithField("storage_key", key).WithError(err).Error("Failed to read value from Redis")
		return nil, err
	}
	return data, nil
}

// Set stores the value without expiration and publishes a change event
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key, value, 0)
	pipe.Publish(ctx, changeChannel(key), "set")
	if _, err := pipe.Exec(ctx); err != nil {
		logrus.WithField("storage_key", key).WithError(err).Error("Failed to write value to Redis")
		return err
	}
	return nil
}

// Delete removes the key and publishes a change event
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.Publish(ctx, changeChannel(key), "del")
	_, err := pipe.Exec(ctx)
	return err
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close is a no-op; the connection is owned by Client.
func (s *Store) Close() error {
	return nil
}

// Watch subscribes to change events for key
func (s *Store) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	sub := s.rdb.Subscribe(ctx, changeChannel(key))
	// Wait for the subscription confirmation so no write is missed after
	// Watch returns.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", changeChannel(key), err)
	}

	out := make(chan struct{})
	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
