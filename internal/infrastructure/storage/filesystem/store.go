package filesystem

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/pkg/kv"
)

type fsStore struct {
	basePath string
}

// NewStore creates a filesystem-backed store rooted at basePath. Each key is
// one file.
func NewStore(basePath string) (*fsStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &fsStore{basePath: basePath}, nil
}

func (s *fsStore) path(key string) string {
	return filepath.Join(s.basePath, url.PathEscape(key)+".json")
}

func (s *fsStore) Get(ctx context.Context, key string) ([]byte, error) {
	filePath := s.path(key)
	log := logrus.WithFields(logrus.Fields{
		"storage_key": key,
		"file_path":   filePath,
	})

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("No file for key")
			return nil, kv.ErrNotFound
		}
		log.WithError(err).Error("Failed to read value")
		return nil, err
	}
	return data, nil
}

// Set writes through a temporary file and renames it over the old value so a
// crash never leaves a half-written slot behind.
func (s *fsStore) Set(ctx context.Context, key string, value []byte) error {
	filePath := s.path(key)
	log := logrus.WithFields(logrus.Fields{
		"storage_key": key,
		"file_path":   filePath,
	})

	tmp, err := os.CreateTemp(s.basePath, ".tmp-*")
	if err != nil {
		log.WithError(err).Error("Failed to create temp file")
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		log.WithError(err).Error("Failed to write value")
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		log.WithError(err).Error("Failed to replace value")
		return err
	}

	log.WithField("data_length", len(value)).Debug("Value written")
	return nil
}

func (s *fsStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *fsStore) Ping(ctx context.Context) error {
	info, err := os.Stat(s.basePath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.basePath)
	}
	return nil
}

func (s *fsStore) Close() error {
	return nil
}
