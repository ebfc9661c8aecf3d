package repository

import (
	"context"
	"errors"

	"photoshare/internal/models"

	"gorm.io/gorm"
)

type schemaInfoRepository struct {
	db *gorm.DB
}

// NewSchemaInfoRepository returns a GORM-backed SchemaInfoRepository.
func NewSchemaInfoRepository(db *gorm.DB) SchemaInfoRepository {
	return &schemaInfoRepository{db: db}
}

func (r *schemaInfoRepository) Get(ctx context.Context) (*models.SchemaInfo, error) {
	var info models.SchemaInfo
	if err := r.db.WithContext(ctx).Order("load_date_time DESC").First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("SchemaInfo not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &info, nil
}

func (r *schemaInfoRepository) Save(ctx context.Context, info *models.SchemaInfo) error {
	if err := r.db.WithContext(ctx).Save(info).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *schemaInfoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.SchemaInfo{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
