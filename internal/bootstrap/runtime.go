package bootstrap

import (
	"context"
	"fmt"
	"log"

	"photoshare/internal/auth"
	"photoshare/internal/cache"
	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/repository"
	"photoshare/internal/seed"

	"github.com/redis/go-redis/v9"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedFixtures bool
}

// InitRuntime connects the configured store and Redis and optionally loads
// the fixture dataset into an empty store.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*repository.Store, *redis.Client, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// Init Redis (may result in nil client if unreachable)
	r := cache.Connect(ctx, cfg.RedisURL)

	if opts.SeedFixtures {
		if err := ensureFixtures(ctx, cfg, store); err != nil {
			_ = store.Close(ctx)
			return nil, nil, fmt.Errorf("failed to seed fixtures: %w", err)
		}
	}

	return store, r, nil
}

// OpenStore connects the backend selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		_, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		return repository.NewMongoStore(db), nil
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		return repository.NewGormStore(db), nil
	}
}

func ensureFixtures(ctx context.Context, cfg *config.Config, store *repository.Store) error {
	if cfg.IsProduction() {
		log.Println("SEED_FIXTURES ignored in production")
		return nil
	}

	empty, err := seed.IsEmpty(ctx, store)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHashing)
	if err != nil {
		return err
	}
	res, err := seed.LoadFixtures(ctx, store, hasher)
	if err != nil {
		return err
	}
	log.Printf("fixture dataset loaded: %d users, %d photos, %d comments", res.Users, res.Photos, res.Comments)
	return nil
}
