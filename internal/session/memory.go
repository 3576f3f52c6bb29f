package session

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMaxSessions bounds the memory store when no limit is configured
const DefaultMaxSessions = 10000

// MemoryStore keeps session paths in process memory. It holds at most
// maxSessions entries, evicting the least recently seen session first, and
// forgets sessions idle for longer than the TTL.
type MemoryStore struct {
	paths *expirable.LRU[string, string]
}

// NewMemoryStore creates an empty in-memory store. maxSessions <= 0 uses
// DefaultMaxSessions; a zero ttl keeps sessions until they are evicted.
func NewMemoryStore(maxSessions int, ttl time.Duration) *MemoryStore {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	// the expiry ticker runs every ttl/100 and must not be zero
	if ttl > 0 && ttl < time.Millisecond {
		ttl = time.Millisecond
	}
	return &MemoryStore{paths: expirable.NewLRU[string, string](maxSessions, nil, ttl)}
}

// CurrentPath returns the stored path for a session
func (s *MemoryStore) CurrentPath(ctx context.Context, sessionID string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, ok := s.paths.Get(sessionID)
	return path, ok, nil
}

// SetCurrentPath stores the path for a session and renews its TTL
func (s *MemoryStore) SetCurrentPath(ctx context.Context, sessionID, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.paths.Add(sessionID, path)
	return nil
}

// Len returns the number of tracked sessions
func (s *MemoryStore) Len() int {
	return s.paths.Len()
}

// Close drops every session
func (s *MemoryStore) Close() error {
	s.paths.Purge()
	return nil
}
