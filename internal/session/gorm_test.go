package session

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormStore(t *testing.T, ttl time.Duration) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := NewGormStoreWithDB(db, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGormStore(t *testing.T) {
	ctx := context.Background()
	store := newTestGormStore(t, 0)

	_, ok, err := store.CurrentPath(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetCurrentPath(ctx, "a", "/one"))
	require.NoError(t, store.SetCurrentPath(ctx, "a", "/two"))
	require.NoError(t, store.SetCurrentPath(ctx, "b", "/three"))

	path, ok, err := store.CurrentPath(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/two", path)

	var count int64
	require.NoError(t, store.db.Model(&SessionPath{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGormStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newTestGormStore(t, time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SetCurrentPath(ctx, "old", "/one"))
	now = now.Add(45 * time.Second)
	require.NoError(t, store.SetCurrentPath(ctx, "new", "/two"))
	now = now.Add(30 * time.Second)

	_, ok, err := store.CurrentPath(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	path, ok, err := store.CurrentPath(ctx, "new")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/two", path)

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// a write renews the expiry
	require.NoError(t, store.SetCurrentPath(ctx, "old", "/three"))
	path, ok, err = store.CurrentPath(ctx, "old")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/three", path)
}

func TestGormStoreWithoutTTLNeverSweeps(t *testing.T) {
	ctx := context.Background()
	store := newTestGormStore(t, 0)
	require.NoError(t, store.SetCurrentPath(ctx, "a", "/one"))

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestGormStoreClosed(t *testing.T) {
	store := newTestGormStore(t, 0)
	require.NoError(t, store.Close())

	_, _, err := store.CurrentPath(context.Background(), "a")
	assert.Error(t, err)
	assert.Error(t, store.SetCurrentPath(context.Background(), "a", "/one"))
}

func TestNewGormStoreInvalidDSN(t *testing.T) {
	_, err := NewGormStore("host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1", 0)
	assert.Error(t, err)
}
