package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupSQLite returns a migrated in-memory database private to the test.
func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// setupMongo connects to MONGO_URI and skips the test when no server answers.
func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping MongoDB repository tests")
	}

	cfg := &config.Config{MongoURI: uri, MongoDB: "photoshare_test_" + models.NewID()}
	client, db, err := database.ConnectMongo(context.Background(), cfg)
	if err != nil {
		t.Skipf("MongoDB unavailable: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

type fixture struct {
	malcolm, ripley, took models.User
	photoA, photoB        models.Photo
}

var day = time.Date(2009, 9, 13, 20, 0, 0, 0, time.UTC)

// seedFixture loads three users: malcolm owns two photos carrying three
// comments in total, one of them by a user id that does not exist.
func seedFixture(t *testing.T, s *Store) fixture {
	t.Helper()
	ctx := context.Background()

	f := fixture{
		malcolm: models.User{FirstName: "Ian", LastName: "Malcolm", LoginName: "malcolm", Password: "weak"},
		ripley:  models.User{FirstName: "Ellen", LastName: "Ripley", LoginName: "ripley", Password: "weak"},
		took:    models.User{FirstName: "Peregrin", LastName: "Took", LoginName: "took", Password: "weak"},
	}
	require.NoError(t, s.Users.Create(ctx, &f.malcolm))
	require.NoError(t, s.Users.Create(ctx, &f.ripley))
	require.NoError(t, s.Users.Create(ctx, &f.took))

	f.photoA = models.Photo{
		FileName: "malcolm2.jpg",
		DateTime: day,
		UserID:   f.malcolm.ID,
		Comments: []models.Comment{
			{Comment: "Life finds a way.", DateTime: day.Add(time.Hour), UserID: f.ripley.ID},
			{Comment: "Who wrote this?", DateTime: day.Add(2 * time.Hour), UserID: models.NewID()},
		},
	}
	f.photoB = models.Photo{
		FileName: "malcolm1.jpg",
		DateTime: day.Add(24 * time.Hour),
		UserID:   f.malcolm.ID,
		Comments: []models.Comment{
			{Comment: "Nice hat.", DateTime: day.Add(25 * time.Hour), UserID: f.took.ID},
		},
	}
	require.NoError(t, s.Photos.Create(ctx, &f.photoA))
	require.NoError(t, s.Photos.Create(ctx, &f.photoB))
	return f
}
