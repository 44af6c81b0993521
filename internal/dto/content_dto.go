package dto

import (
	"time"

	"github.com/keralatechreach/portal-api/internal/models"
)

// GalleryItemCreateRequest carries fields for a gallery item.
type GalleryItemCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Caption     string `json:"caption"`
	ImageURL    string `json:"image_url" validate:"required,url"`
	IsPublished bool   `json:"is_published"`
}

// GalleryItemUpdateRequest carries partial updates.
type GalleryItemUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=255"`
	Caption  *string `json:"caption"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

// GalleryItemResponse serializes a gallery item.
type GalleryItemResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Caption     string    `json:"caption"`
	ImageURL    string    `json:"image_url"`
	IsPublished bool      `json:"is_published"`
	CreatedBy   *uint     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewGalleryItemResponse maps a model to its response payload.
func NewGalleryItemResponse(model models.GalleryItem) GalleryItemResponse {
	return GalleryItemResponse{
		ID:          model.ID,
		Title:       model.Title,
		Caption:     model.Caption,
		ImageURL:    model.ImageURL,
		IsPublished: model.IsPublished,
		CreatedBy:   model.CreatedBy,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// InitiativeCreateRequest carries fields for an initiative.
type InitiativeCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Link        string `json:"link" validate:"omitempty,url"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
	IsPublished bool   `json:"is_published"`
}

// InitiativeUpdateRequest carries partial updates.
type InitiativeUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Link        *string `json:"link" validate:"omitempty,url"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,url"`
}

// InitiativeResponse serializes an initiative.
type InitiativeResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	PhotoURL    string    `json:"photo_url"`
	IsPublished bool      `json:"is_published"`
	CreatedBy   *uint     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewInitiativeResponse maps a model to its response payload.
func NewInitiativeResponse(model models.Initiative) InitiativeResponse {
	return InitiativeResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Link:        model.Link,
		PhotoURL:    model.PhotoURL,
		IsPublished: model.IsPublished,
		CreatedBy:   model.CreatedBy,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// ContactCreateRequest is the public contact form payload.
type ContactCreateRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
}

// ContactMarkReadRequest toggles the read flag on an inbox message.
type ContactMarkReadRequest struct {
	IsRead *bool `json:"is_read" validate:"required"`
}

// ContactResponse serializes a contact message for the dashboard inbox.
type ContactResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContactResponse maps a model to its response payload.
func NewContactResponse(model models.ContactMessage) ContactResponse {
	return ContactResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Subject:   model.Subject,
		Message:   model.Message,
		IsRead:    model.IsRead,
		CreatedAt: model.CreatedAt,
	}
}
