package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"photoshare/internal/config"
	"photoshare/internal/middleware"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/event"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names used by the document store.
const (
	UsersCollection      = "users"
	PhotosCollection     = "photos"
	SchemaInfoCollection = "schemainfos"
)

func commandMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			middleware.Logger.WarnContext(ctx, "mongo command failed",
				slog.String("command", evt.CommandName),
				slog.Duration("elapsed", evt.Duration),
				slog.Any("error", evt.Failure),
			)
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			if evt.Duration > 200*time.Millisecond {
				middleware.Logger.WarnContext(ctx, "mongo slow command",
					slog.String("command", evt.CommandName),
					slog.Duration("elapsed", evt.Duration),
				)
			}
		},
	}
}

// ConnectMongo dials cfg.MongoURI, verifies the primary is reachable and
// ensures the indexes the store relies on.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMonitor(commandMonitor()).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to reach mongo: %w", err)
	}

	db := client.Database(cfg.MongoDB)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	middleware.Logger.Info("MongoDB connected successfully", slog.String("database", cfg.MongoDB))
	return client, db, nil
}

// EnsureIndexes creates the unique login name index and the photo owner index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "login_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = db.Collection(PhotosCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create photos index: %w", err)
	}
	return nil
}
