package session

import "context"

// Store holds the current navigation path of each session
type Store interface {
	// CurrentPath returns the session's path. ok is false when the session
	// has not navigated anywhere yet.
	CurrentPath(ctx context.Context, sessionID string) (path string, ok bool, err error)
	// SetCurrentPath replaces the session's path
	SetCurrentPath(ctx context.Context, sessionID, path string) error
	Close() error
}
