package repository

import (
	"context"

	"photoshare/internal/cache"
	"photoshare/internal/models"
)

// cachedUserRepository serves GetByID through Redis. Users are never updated
// or deleted through the API, so entries only expire. Cached copies carry no
// password since it never serializes.
type cachedUserRepository struct {
	UserRepository
}

// NewCachedUserRepository decorates next with a read-through user cache. It is
// a pass-through when no Redis client is configured.
func NewCachedUserRepository(next UserRepository) UserRepository {
	return &cachedUserRepository{UserRepository: next}
}

func (r *cachedUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return cache.Aside(ctx, cache.UserKey(id), cache.UserTTL, func(ctx context.Context) (*models.User, error) {
		return r.UserRepository.GetByID(ctx, id)
	})
}
