// Package cache holds the shared Redis client and what the API keeps in it:
// sessions and read-through user records.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"photoshare/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// errorCounter feeds failed commands into the redis error metric. A miss
// (redis.Nil) is not a failure.
type errorCounter struct{}

func (errorCounter) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (errorCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (errorCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// Connect dials REDIS_URL, which is either "host:port" or a redis:// URL, and
// installs the client for the package helpers. Redis is optional for the
// photo API: when it cannot be reached Connect returns nil and the caller
// falls back to in-memory sessions and uncached reads.
func Connect(ctx context.Context, addr string) *redis.Client {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			middleware.Logger.Warn("invalid REDIS_URL, continuing without redis", "url", addr, "error", err)
			SetClient(nil)
			return nil
		}
		opts = parsed
	}

	c := redis.NewClient(opts)
	c.AddHook(errorCounter{})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		middleware.Logger.Warn("redis unavailable, continuing without it", "addr", opts.Addr, "error", err)
		_ = c.Close()
		SetClient(nil)
		return nil
	}

	middleware.Logger.Info("Redis connected successfully", "addr", opts.Addr)
	SetClient(c)
	return c
}

// GetClient returns the installed client, nil when running without Redis.
func GetClient() *redis.Client {
	return client
}

// SetClient installs an already-connected client.
func SetClient(c *redis.Client) {
	client = c
}
