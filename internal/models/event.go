package models

import "time"

// District is a flat regional taxonomy used to group events and profiles.
type District struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedBy *uint     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventCategory labels events for filtering.
type EventCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Category  string    `gorm:"size:255;not null" json:"category"`
	CreatedBy *uint     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event is a dated happening listed on the portal. EventEnd is optional but
// must not precede EventStart when present.
type Event struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	EventStart  time.Time  `gorm:"index;not null" json:"event_start"`
	EventEnd    *time.Time `json:"event_end"`
	Place       string     `gorm:"size:255;not null" json:"place"`
	Link        string     `gorm:"size:512" json:"link"`
	Description string     `gorm:"type:text" json:"description"`
	MapLink     string     `gorm:"size:512" json:"map_link"`
	DistrictID  *uint      `gorm:"index" json:"district_id"`
	CategoryID  *uint      `gorm:"index" json:"category_id"`
	IsPublished bool       `gorm:"index" json:"is_published"`
	CreatedBy   *uint      `gorm:"index" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	District *District      `gorm:"foreignKey:DistrictID" json:"district,omitempty"`
	Category *EventCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
