package repository

import (
	"context"

	"photoshare/internal/database"
	"photoshare/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"
)

// NewGormStore wires the GORM repositories over db.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Backend:    BackendGorm,
		Users:      NewCachedUserRepository(NewUserRepository(db)),
		Photos:     NewPhotoRepository(db),
		SchemaInfo: NewSchemaInfoRepository(db),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		clear: func(ctx context.Context) error {
			return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				for _, model := range []any{&models.Comment{}, &models.Photo{}, &models.User{}, &models.SchemaInfo{}} {
					if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
						return err
					}
				}
				return nil
			})
		},
		close: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// NewMongoStore wires the MongoDB repositories over db.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Backend:    BackendMongo,
		Users:      NewCachedUserRepository(NewMongoUserRepository(db)),
		Photos:     NewMongoPhotoRepository(db),
		SchemaInfo: NewMongoSchemaInfoRepository(db),
		ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
		clear: func(ctx context.Context) error {
			for _, name := range []string{database.UsersCollection, database.PhotosCollection, database.SchemaInfoCollection} {
				if _, err := db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
					return err
				}
			}
			return nil
		},
		close: func(ctx context.Context) error {
			return db.Client().Disconnect(ctx)
		},
	}
}
