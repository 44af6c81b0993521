package dto

import (
	"time"

	"github.com/keralatechreach/portal-api/internal/models"
)

// EventCreateRequest carries fields for creating an event. Times are RFC3339.
type EventCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	EventStart  string `json:"event_start" validate:"required"`
	EventEnd    string `json:"event_end"`
	Place       string `json:"place" validate:"required,max=255"`
	Link        string `json:"link" validate:"omitempty,url"`
	Description string `json:"description"`
	MapLink     string `json:"map_link" validate:"omitempty,url"`
	DistrictID  *uint  `json:"district_id"`
	CategoryID  *uint  `json:"category_id"`
	IsPublished bool   `json:"is_published"`
}

// EventUpdateRequest carries partial updates for an event.
type EventUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	EventStart  *string `json:"event_start"`
	EventEnd    *string `json:"event_end"`
	Place       *string `json:"place" validate:"omitempty,max=255"`
	Link        *string `json:"link" validate:"omitempty,url"`
	Description *string `json:"description"`
	MapLink     *string `json:"map_link" validate:"omitempty,url"`
	DistrictID  *uint   `json:"district_id"`
	CategoryID  *uint   `json:"category_id"`
}

// EventResponse serializes an event, with optional taxonomy names resolved.
type EventResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	EventStart  time.Time  `json:"event_start"`
	EventEnd    *time.Time `json:"event_end"`
	Place       string     `json:"place"`
	Link        string     `json:"link"`
	Description string     `json:"description"`
	MapLink     string     `json:"map_link"`
	District    *string    `json:"district"`
	Category    *string    `json:"category"`
	IsPublished bool       `json:"is_published"`
	CreatedBy   *uint      `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventListResponse wraps paginated events.
type EventListResponse struct {
	Items      []EventResponse `json:"items"`
	Pagination PaginationMeta  `json:"pagination"`
	CacheHit   bool            `json:"cache_hit,omitempty"`
}

// NewEventResponse maps a model to its response payload. Optional relations
// degrade to null when unset or unloaded.
func NewEventResponse(model models.Event) EventResponse {
	resp := EventResponse{
		ID:          model.ID,
		Name:        model.Name,
		EventStart:  model.EventStart,
		EventEnd:    model.EventEnd,
		Place:       model.Place,
		Link:        model.Link,
		Description: model.Description,
		MapLink:     model.MapLink,
		IsPublished: model.IsPublished,
		CreatedBy:   model.CreatedBy,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.District != nil {
		resp.District = &model.District.Name
	}
	if model.Category != nil {
		resp.Category = &model.Category.Category
	}
	return resp
}

// EventListRequest narrows event listings.
type EventListRequest struct {
	Page       int
	PageSize   int
	Search     string
	DistrictID uint
	CategoryID uint
}

// DistrictRequest carries fields for district create/update.
type DistrictRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	IsActive *bool  `json:"is_active"`
}

// EventCategoryRequest carries fields for category create/update.
type EventCategoryRequest struct {
	Category string `json:"category" validate:"required,max=255"`
}

// DistrictResponse serializes a district.
type DistrictResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventCategoryResponse serializes an event category.
type EventCategoryResponse struct {
	ID        uint      `json:"id"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDistrictResponse maps a model to its response payload.
func NewDistrictResponse(model models.District) DistrictResponse {
	return DistrictResponse{
		ID:        model.ID,
		Name:      model.Name,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewEventCategoryResponse maps a model to its response payload.
func NewEventCategoryResponse(model models.EventCategory) EventCategoryResponse {
	return EventCategoryResponse{
		ID:        model.ID,
		Category:  model.Category,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
