package database

import (
	"testing"

	"photoshare/internal/config"
	"photoshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "photo",
		DBPassword: "secret",
		DBName:     "photoshare",
	}
	assert.Equal(t, "host=db port=5432 user=photo password=secret dbname=photoshare sslmode=disable", PostgresDSN(cfg))

	cfg.DBSSLMode = "require"
	assert.Contains(t, PostgresDSN(cfg), "sslmode=require")
}

func TestConnect_SQLiteMigrates(t *testing.T) {
	cfg := &config.Config{
		Env:         "test",
		StoreDriver: config.StoreSQLite,
		SQLitePath:  "file::memory:",
	}

	db, err := Connect(cfg)
	require.NoError(t, err)

	for _, model := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(model), "%T should be migrated", model)
	}
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "LoginName"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())
}

func TestConnect_RejectsDocumentDriver(t *testing.T) {
	_, err := Connect(&config.Config{StoreDriver: config.StoreMongo})
	assert.Error(t, err)
}
