package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside returns the value cached under key, or calls fetch on a miss and
// caches what it returns for ttl. Redis problems degrade to calling fetch;
// only fetch errors reach the caller, and they are never cached.
func Aside[T any](ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (*T, error)) (*T, error) {
	if client == nil {
		return fetch(ctx)
	}

	if raw, err := client.Get(ctx, key).Bytes(); err == nil {
		var v T
		if json.Unmarshal(raw, &v) == nil {
			return &v, nil
		}
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		return fetch(ctx)
	}

	v, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(v); err == nil {
		client.Set(ctx, key, raw, ttl)
	}
	return v, nil
}
