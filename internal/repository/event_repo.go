package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
)

// EventFilter narrows event list queries.
type EventFilter struct {
	Page          int
	PageSize      int
	Search        string
	DistrictID    uint
	CategoryID    uint
	PublishedOnly bool
}

// EventRepository exposes persistence helpers for events.
type EventRepository interface {
	List(ctx context.Context, filter EventFilter) ([]models.Event, int64, error)
	GetByID(ctx context.Context, id uint) (models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Event, error)
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository constructs the event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(place) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}

	if filter.DistrictID > 0 {
		query = query.Where("district_id = ?", filter.DistrictID)
	}

	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
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

	var events []models.Event
	if err := query.Preload("District").Preload("Category").
		Order("event_start DESC").Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Preload("District").Preload("Category").
		First(&event, id).Error; err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Event, error) {
	tx := r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Event{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Event{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	tx := r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Update("is_published", published)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TaxonomyRepository manages the flat district and event category tables.
type TaxonomyRepository interface {
	ListDistricts(ctx context.Context) ([]models.District, error)
	CreateDistrict(ctx context.Context, district *models.District) error
	UpdateDistrict(ctx context.Context, id uint, updates map[string]interface{}) (models.District, error)
	DeleteDistrict(ctx context.Context, id uint) error
	GetDistrict(ctx context.Context, id uint) (models.District, error)

	ListCategories(ctx context.Context) ([]models.EventCategory, error)
	CreateCategory(ctx context.Context, category *models.EventCategory) error
	UpdateCategory(ctx context.Context, id uint, updates map[string]interface{}) (models.EventCategory, error)
	DeleteCategory(ctx context.Context, id uint) error
	GetCategory(ctx context.Context, id uint) (models.EventCategory, error)
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository constructs the taxonomy repository.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListDistricts(ctx context.Context) ([]models.District, error) {
	var districts []models.District
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&districts).Error; err != nil {
		return nil, err
	}
	return districts, nil
}

func (r *taxonomyRepository) CreateDistrict(ctx context.Context, district *models.District) error {
	return r.db.WithContext(ctx).Create(district).Error
}

func (r *taxonomyRepository) UpdateDistrict(ctx context.Context, id uint, updates map[string]interface{}) (models.District, error) {
	tx := r.db.WithContext(ctx).Model(&models.District{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.District{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.District{}, gorm.ErrRecordNotFound
	}
	return r.GetDistrict(ctx, id)
}

func (r *taxonomyRepository) DeleteDistrict(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.District{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taxonomyRepository) GetDistrict(ctx context.Context, id uint) (models.District, error) {
	var district models.District
	if err := r.db.WithContext(ctx).First(&district, id).Error; err != nil {
		return models.District{}, err
	}
	return district, nil
}

func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]models.EventCategory, error) {
	var categories []models.EventCategory
	if err := r.db.WithContext(ctx).Order("category ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *taxonomyRepository) CreateCategory(ctx context.Context, category *models.EventCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *taxonomyRepository) UpdateCategory(ctx context.Context, id uint, updates map[string]interface{}) (models.EventCategory, error) {
	tx := r.db.WithContext(ctx).Model(&models.EventCategory{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.EventCategory{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.EventCategory{}, gorm.ErrRecordNotFound
	}
	return r.GetCategory(ctx, id)
}

func (r *taxonomyRepository) DeleteCategory(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.EventCategory{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taxonomyRepository) GetCategory(ctx context.Context, id uint) (models.EventCategory, error) {
	var category models.EventCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return models.EventCategory{}, err
	}
	return category, nil
}
