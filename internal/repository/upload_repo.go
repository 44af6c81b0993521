package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
)

// UploadRepository records every stored file for later auditing.
type UploadRepository interface {
	Create(ctx context.Context, record *models.UploadRecord) error
	List(ctx context.Context, page, pageSize int) ([]models.UploadRecord, int64, error)
}

type uploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, record *models.UploadRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *uploadRepository) List(ctx context.Context, page, pageSize int) ([]models.UploadRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UploadRecord{})

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pageSize > 0 {
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var records []models.UploadRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
