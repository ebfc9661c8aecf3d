package service

import (
	"context"
	"testing"

	"photoshare/internal/models"

	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn        func(context.Context, string) (*models.User, error)
	getByLoginNameFn func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	listFn           func(context.Context) ([]models.User, error)
	countFn          func(context.Context) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByLoginName(ctx context.Context, loginName string) (*models.User, error) {
	return s.getByLoginNameFn(ctx, loginName)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

// usersByID serves GetByID from a fixed set and NOT_FOUND otherwise.
func usersByID(users ...models.User) *userRepoStub {
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.User, error) {
			u, ok := byID[id]
			if !ok {
				return nil, models.NewNotFoundError("User not found")
			}
			return &u, nil
		},
		getByLoginNameFn: func(_ context.Context, name string) (*models.User, error) {
			for _, u := range byID {
				if u.LoginName == name {
					return &u, nil
				}
			}
			return nil, nil
		},
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = models.NewID()
			return nil
		},
		listFn: func(_ context.Context) ([]models.User, error) {
			return users, nil
		},
		countFn: func(_ context.Context) (int64, error) { return int64(len(users)), nil },
	}
}

// photoRepoStub is a stub for repository.PhotoRepository.
type photoRepoStub struct {
	getByIDFn              func(context.Context, string) (*models.Photo, error)
	listByOwnerFn          func(context.Context, string) ([]models.Photo, error)
	countByOwnerFn         func(context.Context, string) (int64, error)
	countCommentsByOwnerFn func(context.Context, string) (int64, error)
	createFn               func(context.Context, *models.Photo) error
	addCommentFn           func(context.Context, string, *models.Comment) error
	countFn                func(context.Context) (int64, error)
}

func (s *photoRepoStub) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	return s.getByIDFn(ctx, id)
}
func (s *photoRepoStub) ListByOwner(ctx context.Context, userID string) ([]models.Photo, error) {
	return s.listByOwnerFn(ctx, userID)
}
func (s *photoRepoStub) CountByOwner(ctx context.Context, userID string) (int64, error) {
	return s.countByOwnerFn(ctx, userID)
}
func (s *photoRepoStub) CountCommentsByOwner(ctx context.Context, userID string) (int64, error) {
	return s.countCommentsByOwnerFn(ctx, userID)
}
func (s *photoRepoStub) Create(ctx context.Context, photo *models.Photo) error {
	return s.createFn(ctx, photo)
}
func (s *photoRepoStub) AddComment(ctx context.Context, photoID string, comment *models.Comment) error {
	return s.addCommentFn(ctx, photoID, comment)
}
func (s *photoRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopPhotoRepo() *photoRepoStub {
	return &photoRepoStub{
		getByIDFn: func(_ context.Context, _ string) (*models.Photo, error) {
			return nil, models.NewNotFoundError("Photo not found")
		},
		listByOwnerFn:          func(_ context.Context, _ string) ([]models.Photo, error) { return nil, nil },
		countByOwnerFn:         func(_ context.Context, _ string) (int64, error) { return 0, nil },
		countCommentsByOwnerFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
		createFn: func(_ context.Context, p *models.Photo) error {
			p.ID = models.NewID()
			return nil
		},
		addCommentFn: func(_ context.Context, _ string, _ *models.Comment) error { return nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
	}
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, models.ErrorCode(err), "unexpected error: %v", err)
}
