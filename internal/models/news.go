package models

import "time"

// News is an article shown on the public portal. The slug is derived from
// the title when absent and is globally unique.
type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Excerpt     string    `gorm:"type:text" json:"excerpt"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	IsPublished bool      `gorm:"index" json:"is_published"`
	CreatedBy   *uint     `gorm:"index" json:"created_by"`

	// ReadingMinutes is recalculated from the content on every save.
	ReadingMinutes int  `json:"reading_minutes"`
	ViewsCount     uint `json:"views_count"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
