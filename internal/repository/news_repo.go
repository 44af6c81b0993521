package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
)

// NewsFilter narrows news list queries.
type NewsFilter struct {
	Page          int
	PageSize      int
	Search        string
	PublishedOnly bool
}

// NewsRepository exposes persistence helpers for articles.
type NewsRepository interface {
	List(ctx context.Context, filter NewsFilter) ([]models.News, int64, error)
	GetByID(ctx context.Context, id uint) (models.News, error)
	GetBySlug(ctx context.Context, slug string) (models.News, error)
	Create(ctx context.Context, article *models.News) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.News, error)
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
	IncrementViews(ctx context.Context, id uint) error
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository constructs the news repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) List(ctx context.Context, filter NewsFilter) ([]models.News, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.News{})

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?", like, like, like)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var items []models.News
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (models.News, error) {
	var article models.News
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return models.News{}, err
	}
	return article, nil
}

func (r *newsRepository) GetBySlug(ctx context.Context, slug string) (models.News, error) {
	var article models.News
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error; err != nil {
		return models.News{}, err
	}
	return article, nil
}

func (r *newsRepository) Create(ctx context.Context, article *models.News) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *newsRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.News, error) {
	tx := r.db.WithContext(ctx).Model(&models.News{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.News{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.News{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.News{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *newsRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	tx := r.db.WithContext(ctx).Model(&models.News{}).Where("id = ?", id).Update("is_published", published)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *newsRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.News{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}
