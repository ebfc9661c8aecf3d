package seed

import (
	"context"
	"testing"

	"photoshare/internal/auth"
	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := database.Connect(&config.Config{
		Env:         "test",
		StoreDriver: config.StoreSQLite,
		SQLitePath:  "file::memory:",
	})
	require.NoError(t, err)
	store := repository.NewGormStore(db)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func plainHasher(t *testing.T) auth.PasswordHasher {
	t.Helper()
	h, err := auth.NewPasswordHasher(config.PasswordPlain)
	require.NoError(t, err)
	return h
}

func TestDefaultDataset(t *testing.T) {
	ds, err := DefaultDataset()
	require.NoError(t, err)
	assert.Len(t, ds.Users, 6)
	assert.Equal(t, "weak", ds.Password)
	assert.NotEmpty(t, ds.Version)
}

func TestParseDataset_RejectsDanglingReferences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown owner", `
users:
  - {key: a, login_name: a}
photos:
  - {owner: b, file_name: x.jpg}
`},
		{"unknown author", `
users:
  - {key: a, login_name: a}
photos:
  - owner: a
    file_name: x.jpg
    comments:
      - {author: z, text: hi}
`},
		{"duplicate key", `
users:
  - {key: a, login_name: a}
  - {key: a, login_name: b}
`},
		{"missing login", `
users:
  - {key: a}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataset([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadFixtures(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	empty, err := IsEmpty(ctx, store)
	require.NoError(t, err)
	assert.True(t, empty)

	res, err := LoadFixtures(ctx, store, plainHasher(t))
	require.NoError(t, err)
	assert.Equal(t, 6, res.Users)
	assert.Equal(t, 9, res.Photos)
	assert.Equal(t, 9, res.Comments)

	malcolm, err := store.Users.GetByLoginName(ctx, "malcolm")
	require.NoError(t, err)
	require.NotNil(t, malcolm)
	assert.Equal(t, res.UserIDs["im"], malcolm.ID)
	assert.Equal(t, "weak", malcolm.Password)

	photos, err := store.Photos.CountByOwner(ctx, malcolm.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, photos)

	comments, err := store.Photos.CountCommentsByOwner(ctx, malcolm.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, comments)

	info, err := store.SchemaInfo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0", info.Version)

	empty, err = IsEmpty(ctx, store)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestLoadFixtures_BcryptPasswords(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	hasher, err := auth.NewPasswordHasher(config.PasswordBcrypt)
	require.NoError(t, err)

	_, err = LoadFixtures(ctx, store, hasher)
	require.NoError(t, err)

	ripley, err := store.Users.GetByLoginName(ctx, "ripley")
	require.NoError(t, err)
	require.NotNil(t, ripley)
	assert.NotEqual(t, "weak", ripley.Password)
	assert.True(t, hasher.Compare(ripley.Password, "weak"))
}

func TestFake(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	res, err := Fake(ctx, store, plainHasher(t), "password123", Options{
		NumUsers:         4,
		PhotosPerUser:    3,
		CommentsPerPhoto: 2,
		Seed:             42,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Users)
	assert.Equal(t, 12, res.Photos)
	assert.Equal(t, 24, res.Comments)

	users, err := store.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, users)

	photos, err := store.Photos.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 12, photos)

	for login, id := range res.UserIDs {
		u, err := store.Users.GetByLoginName(ctx, login)
		require.NoError(t, err)
		require.NotNil(t, u, login)
		assert.Equal(t, id, u.ID)
	}
}

func TestFake_NoUsers(t *testing.T) {
	res, err := Fake(context.Background(), newStore(t), plainHasher(t), "x", Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Users)
}
