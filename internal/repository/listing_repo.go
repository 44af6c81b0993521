package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
)

// ListingFilter narrows job, exam and entrance notification queries.
type ListingFilter struct {
	Page          int
	PageSize      int
	Search        string
	PublishedOnly bool
}

// JobRepository exposes persistence helpers for job postings.
type JobRepository interface {
	List(ctx context.Context, filter ListingFilter) ([]models.Job, int64, error)
	GetByID(ctx context.Context, id uint) (models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Job, error)
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository constructs the job repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) List(ctx context.Context, filter ListingFilter) ([]models.Job, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{})

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
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

	var jobs []models.Job
	if err := query.Order("last_date DESC").Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return models.Job{}, err
	}
	return job, nil
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Job, error) {
	tx := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Job{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Job{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Job{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *jobRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	tx := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Update("is_published", published)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExamFilter narrows exam queries.
type ExamFilter struct {
	ListingFilter
	DegreeID      uint
	UniversityID  uint
	Semester      string
	AdmissionYear int
}

// ExamRepository exposes persistence helpers for exams.
type ExamRepository interface {
	List(ctx context.Context, filter ExamFilter) ([]models.Exam, int64, error)
	GetByID(ctx context.Context, id uint) (models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Exam, error)
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
}

type examRepository struct {
	db *gorm.DB
}

// NewExamRepository constructs the exam repository.
func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) List(ctx context.Context, filter ExamFilter) ([]models.Exam, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Exam{})

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(exam_name) LIKE ?", like)
	}

	if filter.DegreeID > 0 {
		query = query.Where("degree_id = ?", filter.DegreeID)
	}

	if filter.UniversityID > 0 {
		query = query.Where("university_id = ?", filter.UniversityID)
	}

	if filter.Semester != "" {
		query = query.Where("semester = ?", filter.Semester)
	}

	if filter.AdmissionYear > 0 {
		query = query.Where("admission_year = ?", filter.AdmissionYear)
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

	var exams []models.Exam
	if err := query.Preload("Degree").Preload("University").
		Order("exam_date DESC").Find(&exams).Error; err != nil {
		return nil, 0, err
	}

	return exams, total, nil
}

func (r *examRepository) GetByID(ctx context.Context, id uint) (models.Exam, error) {
	var exam models.Exam
	if err := r.db.WithContext(ctx).Preload("Degree").Preload("University").
		First(&exam, id).Error; err != nil {
		return models.Exam{}, err
	}
	return exam, nil
}

func (r *examRepository) Create(ctx context.Context, exam *models.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Exam, error) {
	tx := r.db.WithContext(ctx).Model(&models.Exam{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Exam{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Exam{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *examRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Exam{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *examRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	tx := r.db.WithContext(ctx).Model(&models.Exam{}).Where("id = ?", id).Update("is_published", published)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EntranceNotificationRepository exposes persistence helpers for entrance notifications.
type EntranceNotificationRepository interface {
	List(ctx context.Context, filter ListingFilter) ([]models.EntranceNotification, int64, error)
	GetByID(ctx context.Context, id uint) (models.EntranceNotification, error)
	Create(ctx context.Context, notification *models.EntranceNotification) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.EntranceNotification, error)
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
}

type entranceNotificationRepository struct {
	db *gorm.DB
}

// NewEntranceNotificationRepository constructs the entrance notification repository.
func NewEntranceNotificationRepository(db *gorm.DB) EntranceNotificationRepository {
	return &entranceNotificationRepository{db: db}
}

func (r *entranceNotificationRepository) List(ctx context.Context, filter ListingFilter) ([]models.EntranceNotification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EntranceNotification{})

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
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

	var notifications []models.EntranceNotification
	if err := query.Order("deadline DESC").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *entranceNotificationRepository) GetByID(ctx context.Context, id uint) (models.EntranceNotification, error) {
	var notification models.EntranceNotification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return models.EntranceNotification{}, err
	}
	return notification, nil
}

func (r *entranceNotificationRepository) Create(ctx context.Context, notification *models.EntranceNotification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *entranceNotificationRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.EntranceNotification, error) {
	tx := r.db.WithContext(ctx).Model(&models.EntranceNotification{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.EntranceNotification{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.EntranceNotification{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *entranceNotificationRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.EntranceNotification{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *entranceNotificationRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	tx := r.db.WithContext(ctx).Model(&models.EntranceNotification{}).Where("id = ?", id).Update("is_published", published)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
