package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStorage implements fiber.Storage on top of Redis so sessions survive
// restarts and are shared between instances.
type SessionStorage struct {
	rdb     *redis.Client
	timeout time.Duration
}

// NewSessionStorage returns a storage bound to rdb, or nil when rdb is nil so
// callers can fall back to fiber's in-memory storage.
func NewSessionStorage(rdb *redis.Client) *SessionStorage {
	if rdb == nil {
		return nil
	}
	return &SessionStorage{rdb: rdb, timeout: 2 * time.Second}
}

func (s *SessionStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get returns nil, nil for unknown keys as fiber.Storage requires.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.rdb.Get(ctx, SessionKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val; a zero exp keeps the key without expiry.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.rdb.Set(ctx, SessionKey(key), val, exp).Err()
}

func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.rdb.Del(ctx, SessionKey(key)).Err()
}

// Reset removes every stored session.
func (s *SessionStorage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()

	iter := s.rdb.Scan(ctx, 0, SessionKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op: the Redis client is owned by the server.
func (s *SessionStorage) Close() error {
	return nil
}
