package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "navshell:session:"

// RedisStore keeps session paths in Redis so several server instances can
// share navigation state
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redisURL and verifies the connection
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ttl), nil
}

// NewRedisStoreWithClient wraps an existing client. A zero ttl keeps keys
// forever.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func pathKey(sessionID string) string {
	return keyPrefix + sessionID + ":path"
}

// CurrentPath returns the stored path for a session
func (s *RedisStore) CurrentPath(ctx context.Context, sessionID string) (string, bool, error) {
	path, err := s.client.Get(ctx, pathKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get current path: %w", err)
	}
	return path, true, nil
}

// SetCurrentPath stores the path and refreshes the session TTL
func (s *RedisStore) SetCurrentPath(ctx context.Context, sessionID, path string) error {
	if err := s.client.Set(ctx, pathKey(sessionID), path, s.ttl).Err(); err != nil {
		return fmt.Errorf("set current path: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Client returns the underlying Redis client
func (s *RedisStore) Client() *redis.Client {
	return s.client
}
