package dto

import (
	"time"

	"github.com/keralatechreach/portal-api/internal/models"
)

// NewsCreateRequest carries fields for creating an article.
type NewsCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Slug        string `json:"slug" validate:"omitempty,max=255"`
	Content     string `json:"content" validate:"required"`
	Excerpt     string `json:"excerpt"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	IsPublished bool   `json:"is_published"`
}

// NewsUpdateRequest carries partial updates for an article.
type NewsUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=255"`
	Content  *string `json:"content" validate:"omitempty,min=1"`
	Excerpt  *string `json:"excerpt"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

// NewsResponse serializes an article.
type NewsResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Content        string    `json:"content"`
	Excerpt        string    `json:"excerpt"`
	ImageURL       string    `json:"image_url"`
	IsPublished    bool      `json:"is_published"`
	ReadingMinutes int       `json:"reading_minutes"`
	ViewsCount     uint      `json:"views_count"`
	CreatedBy      *uint     `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewsListResponse wraps paginated articles.
type NewsListResponse struct {
	Items      []NewsResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
	CacheHit   bool           `json:"cache_hit,omitempty"`
}

// NewNewsResponse maps a model to its response payload.
func NewNewsResponse(model models.News) NewsResponse {
	return NewsResponse{
		ID:             model.ID,
		Title:          model.Title,
		Slug:           model.Slug,
		Content:        model.Content,
		Excerpt:        model.Excerpt,
		ImageURL:       model.ImageURL,
		IsPublished:    model.IsPublished,
		ReadingMinutes: model.ReadingMinutes,
		ViewsCount:     model.ViewsCount,
		CreatedBy:      model.CreatedBy,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
