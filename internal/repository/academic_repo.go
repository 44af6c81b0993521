package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
)

// AcademicFilter narrows question paper and note queries.
type AcademicFilter struct {
	Page          int
	PageSize      int
	Search        string
	DegreeID      uint
	UniversityID  uint
	Semester      int
	Year          int
	PublishedOnly bool
}

// AcademicTaxonomyRepository manages universities and degrees.
type AcademicTaxonomyRepository interface {
	ListUniversities(ctx context.Context, search string) ([]models.University, error)
	GetUniversity(ctx context.Context, id uint) (models.University, error)
	CreateUniversity(ctx context.Context, university *models.University) error
	UpdateUniversity(ctx context.Context, id uint, updates map[string]interface{}) (models.University, error)
	DeleteUniversity(ctx context.Context, id uint) error

	ListDegrees(ctx context.Context, universityID uint, search string) ([]models.Degree, error)
	GetDegree(ctx context.Context, id uint) (models.Degree, error)
	CreateDegree(ctx context.Context, degree *models.Degree) error
	UpdateDegree(ctx context.Context, id uint, updates map[string]interface{}) (models.Degree, error)
	DeleteDegree(ctx context.Context, id uint) error
}

type academicTaxonomyRepository struct {
	db *gorm.DB
}

// NewAcademicTaxonomyRepository constructs the academic taxonomy repository.
func NewAcademicTaxonomyRepository(db *gorm.DB) AcademicTaxonomyRepository {
	return &academicTaxonomyRepository{db: db}
}

func (r *academicTaxonomyRepository) ListUniversities(ctx context.Context, search string) ([]models.University, error) {
	query := r.db.WithContext(ctx).Model(&models.University{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var universities []models.University
	if err := query.Order("name ASC").Find(&universities).Error; err != nil {
		return nil, err
	}
	return universities, nil
}

func (r *academicTaxonomyRepository) GetUniversity(ctx context.Context, id uint) (models.University, error) {
	var university models.University
	if err := r.db.WithContext(ctx).First(&university, id).Error; err != nil {
		return models.University{}, err
	}
	return university, nil
}

func (r *academicTaxonomyRepository) CreateUniversity(ctx context.Context, university *models.University) error {
	return r.db.WithContext(ctx).Create(university).Error
}

func (r *academicTaxonomyRepository) UpdateUniversity(ctx context.Context, id uint, updates map[string]interface{}) (models.University, error) {
	tx := r.db.WithContext(ctx).Model(&models.University{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.University{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.University{}, gorm.ErrRecordNotFound
	}
	return r.GetUniversity(ctx, id)
}

func (r *academicTaxonomyRepository) DeleteUniversity(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.University{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *academicTaxonomyRepository) ListDegrees(ctx context.Context, universityID uint, search string) ([]models.Degree, error) {
	query := r.db.WithContext(ctx).Model(&models.Degree{})
	if universityID > 0 {
		query = query.Where("university_id = ?", universityID)
	}
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var degrees []models.Degree
	if err := query.Preload("University").Order("name ASC").Find(&degrees).Error; err != nil {
		return nil, err
	}
	return degrees, nil
}

func (r *academicTaxonomyRepository) GetDegree(ctx context.Context, id uint) (models.Degree, error) {
	var degree models.Degree
	if err := r.db.WithContext(ctx).Preload("University").First(&degree, id).Error; err != nil {
		return models.Degree{}, err
	}
	return degree, nil
}

func (r *academicTaxonomyRepository) CreateDegree(ctx context.Context, degree *models.Degree) error {
	return r.db.WithContext(ctx).Create(degree).Error
}

func (r *academicTaxonomyRepository) UpdateDegree(ctx context.Context, id uint, updates map[string]interface{}) (models.Degree, error) {
	tx := r.db.WithContext(ctx).Model(&models.Degree{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Degree{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Degree{}, gorm.ErrRecordNotFound
	}
	return r.GetDegree(ctx, id)
}

func (r *academicTaxonomyRepository) DeleteDegree(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Degree{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// QuestionPaperRepository exposes persistence helpers for question papers.
type QuestionPaperRepository interface {
	List(ctx context.Context, filter AcademicFilter) ([]models.QuestionPaper, int64, error)
	GetByID(ctx context.Context, id uint) (models.QuestionPaper, error)
	Create(ctx context.Context, paper *models.QuestionPaper) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.QuestionPaper, error)
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
}

type questionPaperRepository struct {
	db *gorm.DB
}

// NewQuestionPaperRepository constructs the question paper repository.
func NewQuestionPaperRepository(db *gorm.DB) QuestionPaperRepository {
	return &questionPaperRepository{db: db}
}

func applyAcademicFilter(query *gorm.DB, filter AcademicFilter, searchColumn string) *gorm.DB {
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("LOWER("+searchColumn+") LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.DegreeID > 0 {
		query = query.Where("degree_id = ?", filter.DegreeID)
	}
	if filter.UniversityID > 0 {
		query = query.Where("university_id = ?", filter.UniversityID)
	}
	if filter.Semester > 0 {
		query = query.Where("semester = ?", filter.Semester)
	}
	if filter.Year > 0 {
		query = query.Where("year = ?", filter.Year)
	}
	return query
}

func (r *questionPaperRepository) List(ctx context.Context, filter AcademicFilter) ([]models.QuestionPaper, int64, error) {
	query := applyAcademicFilter(r.db.WithContext(ctx).Model(&models.QuestionPaper{}), filter, "subject")

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

	var papers []models.QuestionPaper
	if err := query.Preload("Degree").Preload("University").
		Order("year DESC, updated_at DESC").Find(&papers).Error; err != nil {
		return nil, 0, err
	}

	return papers, total, nil
}

func (r *questionPaperRepository) GetByID(ctx context.Context, id uint) (models.QuestionPaper, error) {
	var paper models.QuestionPaper
	if err := r.db.WithContext(ctx).Preload("Degree").Preload("University").
		First(&paper, id).Error; err != nil {
		return models.QuestionPaper{}, err
	}
	return paper, nil
}

func (r *questionPaperRepository) Create(ctx context.Context, paper *models.QuestionPaper) error {
	return r.db.WithContext(ctx).Create(paper).Error
}

func (r *questionPaperRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.QuestionPaper, error) {
	tx := r.db.WithContext(ctx).Model(&models.QuestionPaper{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.QuestionPaper{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.QuestionPaper{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *questionPaperRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.QuestionPaper{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *questionPaperRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	tx := r.db.WithContext(ctx).Model(&models.QuestionPaper{}).Where("id = ?", id).Update("is_published", published)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NoteRepository exposes persistence helpers for study notes.
type NoteRepository interface {
	List(ctx context.Context, filter AcademicFilter) ([]models.Note, int64, error)
	GetByID(ctx context.Context, id uint) (models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Note, error)
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository constructs the note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) List(ctx context.Context, filter AcademicFilter) ([]models.Note, int64, error) {
	query := applyAcademicFilter(r.db.WithContext(ctx).Model(&models.Note{}), filter, "title")

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

	var notes []models.Note
	if err := query.Preload("Degree").Preload("University").
		Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, 0, err
	}

	return notes, total, nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uint) (models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).Preload("Degree").Preload("University").
		First(&note, id).Error; err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Note, error) {
	tx := r.db.WithContext(ctx).Model(&models.Note{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Note{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Note{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *noteRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	tx := r.db.WithContext(ctx).Model(&models.Note{}).Where("id = ?", id).Update("is_published", published)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
