package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
)

// ContentFilter narrows gallery and initiative queries.
type ContentFilter struct {
	Page          int
	PageSize      int
	Search        string
	PublishedOnly bool
}

// GalleryRepository exposes persistence helpers for gallery items.
type GalleryRepository interface {
	List(ctx context.Context, filter ContentFilter) ([]models.GalleryItem, int64, error)
	GetByID(ctx context.Context, id uint) (models.GalleryItem, error)
	Create(ctx context.Context, item *models.GalleryItem) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.GalleryItem, error)
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository constructs the gallery repository.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) List(ctx context.Context, filter ContentFilter) ([]models.GalleryItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GalleryItem{})

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(caption) LIKE ?", like, like)
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

	var items []models.GalleryItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *galleryRepository) GetByID(ctx context.Context, id uint) (models.GalleryItem, error) {
	var item models.GalleryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return models.GalleryItem{}, err
	}
	return item, nil
}

func (r *galleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *galleryRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.GalleryItem, error) {
	tx := r.db.WithContext(ctx).Model(&models.GalleryItem{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.GalleryItem{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.GalleryItem{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *galleryRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.GalleryItem{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *galleryRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	tx := r.db.WithContext(ctx).Model(&models.GalleryItem{}).Where("id = ?", id).Update("is_published", published)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// InitiativeRepository exposes persistence helpers for initiatives.
type InitiativeRepository interface {
	List(ctx context.Context, filter ContentFilter) ([]models.Initiative, int64, error)
	GetByID(ctx context.Context, id uint) (models.Initiative, error)
	Create(ctx context.Context, initiative *models.Initiative) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Initiative, error)
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
}

type initiativeRepository struct {
	db *gorm.DB
}

// NewInitiativeRepository constructs the initiative repository.
func NewInitiativeRepository(db *gorm.DB) InitiativeRepository {
	return &initiativeRepository{db: db}
}

func (r *initiativeRepository) List(ctx context.Context, filter ContentFilter) ([]models.Initiative, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Initiative{})

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
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

	var initiatives []models.Initiative
	if err := query.Order("updated_at DESC").Find(&initiatives).Error; err != nil {
		return nil, 0, err
	}

	return initiatives, total, nil
}

func (r *initiativeRepository) GetByID(ctx context.Context, id uint) (models.Initiative, error) {
	var initiative models.Initiative
	if err := r.db.WithContext(ctx).First(&initiative, id).Error; err != nil {
		return models.Initiative{}, err
	}
	return initiative, nil
}

func (r *initiativeRepository) Create(ctx context.Context, initiative *models.Initiative) error {
	return r.db.WithContext(ctx).Create(initiative).Error
}

func (r *initiativeRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Initiative, error) {
	tx := r.db.WithContext(ctx).Model(&models.Initiative{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Initiative{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Initiative{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *initiativeRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Initiative{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *initiativeRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	tx := r.db.WithContext(ctx).Model(&models.Initiative{}).Where("id = ?", id).Update("is_published", published)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ContactFilter narrows contact inbox queries.
type ContactFilter struct {
	Page       int
	PageSize   int
	Search     string
	UnreadOnly bool
}

// ContactRepository exposes persistence helpers for contact messages.
type ContactRepository interface {
	List(ctx context.Context, filter ContactFilter) ([]models.ContactMessage, int64, error)
	GetByID(ctx context.Context, id uint) (models.ContactMessage, error)
	Create(ctx context.Context, message *models.ContactMessage) error
	MarkRead(ctx context.Context, id uint, read bool) error
	Delete(ctx context.Context, id uint) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository constructs the contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) List(ctx context.Context, filter ContactFilter) ([]models.ContactMessage, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})

	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ?", like, like, like)
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

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (r *contactRepository) GetByID(ctx context.Context, id uint) (models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return models.ContactMessage{}, err
	}
	return message, nil
}

func (r *contactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *contactRepository) MarkRead(ctx context.Context, id uint, read bool) error {
	tx := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("is_read", read)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.ContactMessage{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
