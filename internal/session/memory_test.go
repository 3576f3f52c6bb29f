package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 0)

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
	assert.Equal(t, 2, store.Len())

	assert.NoError(t, store.Close())
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore(0, 0)
	assert.ErrorIs(t, store.SetCurrentPath(ctx, "a", "/one"), context.Canceled)
	_, _, err := store.CurrentPath(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%5)
			_ = store.SetCurrentPath(ctx, id, fmt.Sprintf("/p/%d", i))
			_, _, _ = store.CurrentPath(ctx, id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, store.Len())
}

func TestMemoryStoreEvictsLeastRecentlySeen(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(3, 0)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.SetCurrentPath(ctx, fmt.Sprintf("s%d", i), "/one"))
	}
	// reading s0 makes s1 the oldest
	_, ok, err := store.CurrentPath(ctx, "s0")
	require.NoError(t, err)
	require.True(t, ok)

	for i := 3; i < 1000; i++ {
		require.NoError(t, store.SetCurrentPath(ctx, fmt.Sprintf("s%d", i), "/two"))
		if i == 3 {
			_, ok, _ := store.CurrentPath(ctx, "s1")
			assert.False(t, ok, "s1 should be evicted first")
			_, ok, _ = store.CurrentPath(ctx, "s0")
			assert.True(t, ok)
		}
	}

	assert.Equal(t, 3, store.Len())
	path, ok, err := store.CurrentPath(ctx, "s999")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/two", path)
}

func TestMemoryStoreDefaultLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(-1, 0)

	for i := 0; i < DefaultMaxSessions+10; i++ {
		require.NoError(t, store.SetCurrentPath(ctx, fmt.Sprintf("s%d", i), "/one"))
	}
	assert.Equal(t, DefaultMaxSessions, store.Len())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 50*time.Millisecond)

	require.NoError(t, store.SetCurrentPath(ctx, "a", "/one"))
	path, ok, err := store.CurrentPath(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/one", path)

	assert.Eventually(t, func() bool {
		_, ok, _ := store.CurrentPath(ctx, "a")
		return !ok && store.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
}
