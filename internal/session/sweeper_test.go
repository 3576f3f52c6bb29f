package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSweeperStopsOnCancel(t *testing.T) {
	store := newTestGormStore(t, time.Nanosecond)
	require.NoError(t, store.SetCurrentPath(context.Background(), "a", "/one"))

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		RunSweeper(ctx, store, time.Millisecond, func(removed int, err error) {
			if err == nil && removed > 0 {
				select {
				case swept <- removed:
				default:
				}
			}
		})
		close(done)
	}()

	select {
	case removed := <-swept:
		assert.Equal(t, 1, removed)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
