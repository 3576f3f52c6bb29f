package session

import (
	"context"
	"time"
)

// Sweeper is a store that deletes expired sessions on demand
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// RunSweeper calls s.Sweep every interval until ctx is cancelled. onSweep,
// when set, receives the result of each sweep.
func RunSweeper(ctx context.Context, s Sweeper, interval time.Duration, onSweep func(removed int, err error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := s.Sweep(ctx)
			if onSweep != nil {
				onSweep(removed, err)
			}
		case <-ctx.Done():
			return
		}
	}
}
