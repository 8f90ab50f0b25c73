package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/pkg/kv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one persisted key-value slot
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (KVEntry) TableName() string {
	return "kv_entries"
}

// Store keeps key-value slots in the kv_entries table
type Store struct {
	db *gorm.DB
}

// NewStore creates a PostgreSQL-backed key-value store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get retrieves a value by key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		logrus.WithField("storage_key", key).WithError(err).Error("Failed to read value from database")
		return nil, err
	}
	return entry.Value, nil
}

// Set upserts the value for key
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	entry := KVEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		logrus.WithField("storage_key", key).WithError(err).Error("Failed to write value to database")
		return err
	}
	return nil
}

// Delete removes the key
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&KVEntry{}).Error
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close is a no-op; the pool is owned by DB.
func (s *Store) Close() error {
	return nil
}
