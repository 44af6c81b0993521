package dto

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ListRequest carries the shared paging and search parameters of list endpoints.
type ListRequest struct {
	Page     int
	PageSize int
	Search   string
}

// PublishRequest toggles the visibility flag of a content record.
type PublishRequest struct {
	IsPublished *bool `json:"is_published" validate:"required"`
}
