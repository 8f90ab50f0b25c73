package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB builds statements without a server and records the last SQL text
func dryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var last string
	record := func(tx *gorm.DB) { last = tx.Statement.SQL.String() }
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:record_create", record))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("test:record_delete", record))
	return db, &last
}

func TestStore_SetUpserts(t *testing.T) {
	db, last := dryRunDB(t)
	s := NewStore(db)

	require.NoError(t, s.Set(context.Background(), "cg_cart_v1", []byte("[]")))

	assert.Contains(t, *last, `INSERT INTO "kv_entries"`)
	assert.Contains(t, *last, `ON CONFLICT ("key") DO UPDATE SET`)
}

func TestStore_DeleteByKey(t *testing.T) {
	db, last := dryRunDB(t)
	s := NewStore(db)

	require.NoError(t, s.Delete(context.Background(), "cg_cart_v1"))
	assert.Contains(t, *last, `DELETE FROM "kv_entries" WHERE key =`)
}

func TestKVEntry_TableName(t *testing.T) {
	assert.Equal(t, "kv_entries", KVEntry{}.TableName())
}
