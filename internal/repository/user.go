package repository

import (
	"context"
	"errors"

	"photoshare/internal/models"
	"photoshare/internal/observability"

	"gorm.io/gorm"
)

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository returns a GORM-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger(BackendGorm, "users")}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	defer observability.TrackQuery(BackendGorm, "get_by_id", "users")()

	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByLoginName(ctx context.Context, loginName string) (*models.User, error) {
	defer observability.TrackQuery(BackendGorm, "get_by_login_name", "users")()

	var user models.User
	if err := r.db.WithContext(ctx).Where("login_name = ?", loginName).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery(BackendGorm, "create", "users")()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError(loginNameTaken)
		}
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogWrite(ctx, "create", map[string]any{"user_id": user.ID})
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	defer observability.TrackQuery(BackendGorm, "list", "users")()

	var users []models.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
