package models

import "time"

// Job is a job posting with an application deadline.
type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	LastDate    time.Time `gorm:"index;not null" json:"last_date"`
	IsPublished bool      `gorm:"index" json:"is_published"`
	CreatedBy   *uint     `gorm:"index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Exam is a scheduled university examination.
type Exam struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ExamName      string    `gorm:"size:255;not null" json:"exam_name"`
	ExamDate      time.Time `gorm:"index;not null" json:"exam_date"`
	ExamURL       string    `gorm:"size:512" json:"exam_url"`
	DegreeID      uint      `gorm:"index;not null" json:"degree_id"`
	UniversityID  uint      `gorm:"index;not null" json:"university_id"`
	Semester      string    `gorm:"size:10" json:"semester"`
	AdmissionYear int       `json:"admission_year"`
	IsPublished   bool      `gorm:"index" json:"is_published"`
	CreatedBy     *uint     `gorm:"index" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Degree     *Degree     `gorm:"foreignKey:DegreeID" json:"degree,omitempty"`
	University *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
}

// EntranceNotification announces an entrance exam with a deadline.
type EntranceNotification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Deadline      time.Time `gorm:"index;not null" json:"deadline"`
	Link          string    `gorm:"size:512" json:"link"`
	PublishedDate time.Time `json:"published_date"`
	IsPublished   bool      `gorm:"index" json:"is_published"`
	CreatedBy     *uint     `gorm:"index" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
