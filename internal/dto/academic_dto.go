package dto

import (
	"time"

	"github.com/keralatechreach/portal-api/internal/models"
)

// UniversityRequest carries fields for university create/update.
type UniversityRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// DegreeRequest carries fields for degree create/update.
type DegreeRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	UniversityID uint   `json:"university_id" validate:"required"`
}

// UniversityResponse serializes a university.
type UniversityResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DegreeResponse serializes a degree.
type DegreeResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	UniversityID uint      `json:"university_id"`
	University   *string   `json:"university"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewDegreeResponse maps a model to its response payload.
func NewDegreeResponse(model models.Degree) DegreeResponse {
	resp := DegreeResponse{
		ID:           model.ID,
		Name:         model.Name,
		UniversityID: model.UniversityID,
		CreatedAt:    model.CreatedAt,
	}
	if model.University != nil {
		resp.University = &model.University.Name
	}
	return resp
}

// QuestionPaperCreateRequest carries fields for a question paper.
type QuestionPaperCreateRequest struct {
	DegreeID     uint   `json:"degree_id" validate:"required"`
	UniversityID uint   `json:"university_id" validate:"required"`
	Semester     int    `json:"semester" validate:"required,min=1,max=12"`
	Subject      string `json:"subject" validate:"required,max=200"`
	Year         int    `json:"year" validate:"required,min=1900"`
	FileURL      string `json:"file_url" validate:"omitempty,url"`
	IsPublished  bool   `json:"is_published"`
}

// QuestionPaperUpdateRequest carries partial updates.
type QuestionPaperUpdateRequest struct {
	DegreeID     *uint   `json:"degree_id"`
	UniversityID *uint   `json:"university_id"`
	Semester     *int    `json:"semester" validate:"omitempty,min=1,max=12"`
	Subject      *string `json:"subject" validate:"omitempty,max=200"`
	Year         *int    `json:"year" validate:"omitempty,min=1900"`
	FileURL      *string `json:"file_url" validate:"omitempty,url"`
}

// QuestionPaperResponse serializes a question paper.
type QuestionPaperResponse struct {
	ID           uint      `json:"id"`
	DegreeID     uint      `json:"degree_id"`
	UniversityID uint      `json:"university_id"`
	Degree       *string   `json:"degree"`
	University   *string   `json:"university"`
	Semester     int       `json:"semester"`
	Subject      string    `json:"subject"`
	Year         int       `json:"year"`
	FileURL      string    `json:"file_url"`
	IsPublished  bool      `json:"is_published"`
	CreatedBy    *uint     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewQuestionPaperResponse maps a model to its response payload.
func NewQuestionPaperResponse(model models.QuestionPaper) QuestionPaperResponse {
	resp := QuestionPaperResponse{
		ID:           model.ID,
		DegreeID:     model.DegreeID,
		UniversityID: model.UniversityID,
		Semester:     model.Semester,
		Subject:      model.Subject,
		Year:         model.Year,
		FileURL:      model.FileURL,
		IsPublished:  model.IsPublished,
		CreatedBy:    model.CreatedBy,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
	if model.Degree != nil {
		resp.Degree = &model.Degree.Name
	}
	if model.University != nil {
		resp.University = &model.University.Name
	}
	return resp
}

// NoteCreateRequest carries metadata for a study note. Dashboard creation
// and the public upload endpoint share this contract.
type NoteCreateRequest struct {
	Title        string `json:"title" form:"title" validate:"required,max=255"`
	Subject      string `json:"subject" form:"subject" validate:"required,max=255"`
	DegreeID     uint   `json:"degree_id" form:"degree_id" validate:"required"`
	UniversityID uint   `json:"university_id" form:"university_id" validate:"required"`
	Semester     int    `json:"semester" form:"semester" validate:"required,min=1,max=12"`
	Year         int    `json:"year" form:"year" validate:"required,min=1900"`
	FileURL      string `json:"file_url" form:"file_url" validate:"omitempty,url"`
	IsPublished  bool   `json:"is_published" form:"is_published"`
}

// NoteUpdateRequest carries partial updates for a note.
type NoteUpdateRequest struct {
	Title        *string `json:"title" validate:"omitempty,max=255"`
	Subject      *string `json:"subject" validate:"omitempty,max=255"`
	DegreeID     *uint   `json:"degree_id"`
	UniversityID *uint   `json:"university_id"`
	Semester     *int    `json:"semester" validate:"omitempty,min=1,max=12"`
	Year         *int    `json:"year" validate:"omitempty,min=1900"`
	FileURL      *string `json:"file_url" validate:"omitempty,url"`
}

// NoteResponse serializes a note.
type NoteResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Subject      string    `json:"subject"`
	DegreeID     uint      `json:"degree_id"`
	UniversityID uint      `json:"university_id"`
	Degree       *string   `json:"degree"`
	University   *string   `json:"university"`
	Semester     int       `json:"semester"`
	Year         int       `json:"year"`
	FileURL      string    `json:"file_url"`
	IsPublished  bool      `json:"is_published"`
	CreatedBy    *uint     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewNoteResponse maps a model to its response payload.
func NewNoteResponse(model models.Note) NoteResponse {
	resp := NoteResponse{
		ID:           model.ID,
		Title:        model.Title,
		Subject:      model.Subject,
		DegreeID:     model.DegreeID,
		UniversityID: model.UniversityID,
		Semester:     model.Semester,
		Year:         model.Year,
		FileURL:      model.FileURL,
		IsPublished:  model.IsPublished,
		CreatedBy:    model.CreatedBy,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
	if model.Degree != nil {
		resp.Degree = &model.Degree.Name
	}
	if model.University != nil {
		resp.University = &model.University.Name
	}
	return resp
}

// AcademicFilter narrows question paper and note listings.
type AcademicFilter struct {
	Page         int
	PageSize     int
	Search       string
	DegreeID     uint
	UniversityID uint
	Semester     int
	Year         int
}
