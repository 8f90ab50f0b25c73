package memory

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/pkg/kv"
)

type memoryStore struct {
	mu       sync.RWMutex
	values   map[string][]byte
	watchers map[string][]chan struct{}
}

// NewStore creates an in-memory key-value store. Nothing survives a restart.
func NewStore() *memoryStore {
	return &memoryStore{
		values:   make(map[string][]byte),
		watchers: make(map[string][]chan struct{}),
	}
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		logrus.WithField("storage_key", key).Debug("Key not present in memory store")
		return nil, kv.ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.values[key] = stored
	watchers := append([]chan struct{}(nil), s.watchers[key]...)
	s.mu.Unlock()

	for _, ch := range watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}

	logrus.WithFields(logrus.Fields{
		"storage_key": key,
		"data_length": len(value),
	}).Debug("Value stored in memory")
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}

// Watch notifies on every Set of key until ctx is done. Notifications are
// coalesced: a slow reader sees at least one signal after the latest write.
func (s *memoryStore) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers[key] = append(s.watchers[key], ch)
	s.mu.Unlock()

	out := make(chan struct{})
	go func() {
		defer close(out)
		defer s.unwatch(key, ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
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

func (s *memoryStore) unwatch(key string, ch chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.watchers[key]
	for i, c := range list {
		if c == ch {
			s.watchers[key] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(s.watchers[key]) == 0 {
		delete(s.watchers, key)
	}
}
