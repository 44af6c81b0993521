package dto

import (
	"time"

	"github.com/keralatechreach/portal-api/internal/models"
)

// JobCreateRequest carries fields for creating a job posting.
type JobCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	LastDate    string `json:"last_date" validate:"required"`
	IsPublished bool   `json:"is_published"`
}

// JobUpdateRequest carries partial updates for a job posting.
type JobUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	LastDate    *string `json:"last_date"`
}

// JobResponse serializes a job posting.
type JobResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	LastDate    time.Time `json:"last_date"`
	IsPublished bool      `json:"is_published"`
	CreatedBy   *uint     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewJobResponse maps a model to its response payload.
func NewJobResponse(model models.Job) JobResponse {
	return JobResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		LastDate:    model.LastDate,
		IsPublished: model.IsPublished,
		CreatedBy:   model.CreatedBy,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// ExamCreateRequest carries fields for creating an exam.
type ExamCreateRequest struct {
	ExamName      string `json:"exam_name" validate:"required,max=255"`
	ExamDate      string `json:"exam_date" validate:"required"`
	ExamURL       string `json:"exam_url" validate:"omitempty,url"`
	DegreeID      uint   `json:"degree_id" validate:"required"`
	UniversityID  uint   `json:"university_id" validate:"required"`
	Semester      string `json:"semester" validate:"max=10"`
	AdmissionYear int    `json:"admission_year" validate:"omitempty,min=1900"`
	IsPublished   bool   `json:"is_published"`
}

// ExamUpdateRequest carries partial updates for an exam.
type ExamUpdateRequest struct {
	ExamName      *string `json:"exam_name" validate:"omitempty,max=255"`
	ExamDate      *string `json:"exam_date"`
	ExamURL       *string `json:"exam_url" validate:"omitempty,url"`
	DegreeID      *uint   `json:"degree_id"`
	UniversityID  *uint   `json:"university_id"`
	Semester      *string `json:"semester" validate:"omitempty,max=10"`
	AdmissionYear *int    `json:"admission_year" validate:"omitempty,min=1900"`
}

// ExamResponse serializes an exam.
type ExamResponse struct {
	ID            uint      `json:"id"`
	ExamName      string    `json:"exam_name"`
	ExamDate      time.Time `json:"exam_date"`
	ExamURL       string    `json:"exam_url"`
	DegreeID      uint      `json:"degree_id"`
	UniversityID  uint      `json:"university_id"`
	Degree        *string   `json:"degree"`
	University    *string   `json:"university"`
	Semester      string    `json:"semester"`
	AdmissionYear int       `json:"admission_year"`
	IsPublished   bool      `json:"is_published"`
	CreatedBy     *uint     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewExamResponse maps a model to its response payload.
func NewExamResponse(model models.Exam) ExamResponse {
	resp := ExamResponse{
		ID:            model.ID,
		ExamName:      model.ExamName,
		ExamDate:      model.ExamDate,
		ExamURL:       model.ExamURL,
		DegreeID:      model.DegreeID,
		UniversityID:  model.UniversityID,
		Semester:      model.Semester,
		AdmissionYear: model.AdmissionYear,
		IsPublished:   model.IsPublished,
		CreatedBy:     model.CreatedBy,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	if model.Degree != nil {
		resp.Degree = &model.Degree.Name
	}
	if model.University != nil {
		resp.University = &model.University.Name
	}
	return resp
}

// ExamListRequest narrows exam listings.
type ExamListRequest struct {
	Page          int
	PageSize      int
	Search        string
	DegreeID      uint
	UniversityID  uint
	Semester      string
	AdmissionYear int
}

// EntranceNotificationCreateRequest carries fields for an entrance notification.
type EntranceNotificationCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Deadline    string `json:"deadline" validate:"required"`
	Link        string `json:"link" validate:"omitempty,url"`
	IsPublished bool   `json:"is_published"`
}

// EntranceNotificationUpdateRequest carries partial updates.
type EntranceNotificationUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	Link        *string `json:"link" validate:"omitempty,url"`
}

// EntranceNotificationResponse serializes an entrance notification.
type EntranceNotificationResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Deadline      time.Time `json:"deadline"`
	Link          string    `json:"link"`
	PublishedDate time.Time `json:"published_date"`
	IsPublished   bool      `json:"is_published"`
	CreatedBy     *uint     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewEntranceNotificationResponse maps a model to its response payload.
func NewEntranceNotificationResponse(model models.EntranceNotification) EntranceNotificationResponse {
	return EntranceNotificationResponse{
		ID:            model.ID,
		Title:         model.Title,
		Description:   model.Description,
		Deadline:      model.Deadline,
		Link:          model.Link,
		PublishedDate: model.PublishedDate,
		IsPublished:   model.IsPublished,
		CreatedBy:     model.CreatedBy,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
