package repository

import (
	"context"
	"errors"

	"photoshare/internal/models"
	"photoshare/internal/observability"

	"gorm.io/gorm"
)

type photoRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPhotoRepository returns a GORM-backed PhotoRepository.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db, log: observability.NewRepoLogger(BackendGorm, "photos")}
}

func orderedComments(db *gorm.DB) *gorm.DB {
	return db.Order("date_time ASC").Order("id ASC")
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	defer observability.TrackQuery(BackendGorm, "get_by_id", "photos")()

	var photo models.Photo
	err := r.db.WithContext(ctx).
		Preload("Comments", orderedComments).
		Where("id = ?", id).
		First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Photo not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &photo, nil
}

func (r *photoRepository) ListByOwner(ctx context.Context, userID string) ([]models.Photo, error) {
	defer observability.TrackQuery(BackendGorm, "list_by_owner", "photos")()

	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Preload("Comments", orderedComments).
		Where("user_id = ?", userID).
		Order("date_time ASC").
		Find(&photos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return photos, nil
}

func (r *photoRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	defer observability.TrackQuery(BackendGorm, "count_by_owner", "photos")()

	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Photo{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *photoRepository) CountCommentsByOwner(ctx context.Context, userID string) (int64, error) {
	defer observability.TrackQuery(BackendGorm, "count_comments_by_owner", "photos")()

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Joins("JOIN photos ON photos.id = comments.photo_id").
		Where("photos.user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *photoRepository) Create(ctx context.Context, photo *models.Photo) error {
	defer observability.TrackQuery(BackendGorm, "create", "photos")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Comments").Create(photo).Error; err != nil {
			return err
		}
		for i := range photo.Comments {
			photo.Comments[i].PhotoID = photo.ID
			if err := tx.Create(&photo.Comments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogWrite(ctx, "create", map[string]any{"photo_id": photo.ID, "user_id": photo.UserID})
	return nil
}

func (r *photoRepository) AddComment(ctx context.Context, photoID string, comment *models.Comment) error {
	defer observability.TrackQuery(BackendGorm, "add_comment", "photos")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Photo{}).Where("id = ?", photoID).Count(&n).Error; err != nil {
			return models.NewInternalError(err)
		}
		if n == 0 {
			return models.NewNotFoundError("Photo not found")
		}

		comment.PhotoID = photoID
		if err := tx.Create(comment).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		if !models.IsNotFound(err) {
			r.log.LogError(ctx, err, "add_comment")
		}
		return err
	}
	r.log.LogWrite(ctx, "add_comment", map[string]any{"photo_id": photoID, "comment_id": comment.ID})
	return nil
}

func (r *photoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Photo{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
