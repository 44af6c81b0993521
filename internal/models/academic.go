package models

import "time"

// University is the root of the academic taxonomy.
type University struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	CreatedBy *uint     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Degree belongs to a university.
type Degree struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	UniversityID uint      `gorm:"index;not null" json:"university_id"`
	CreatedBy    *uint     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	University *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
}

// QuestionPaper is an archived exam paper attached to a degree and semester.
type QuestionPaper struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DegreeID     uint      `gorm:"index;not null" json:"degree_id"`
	UniversityID uint      `gorm:"index;not null" json:"university_id"`
	Semester     int       `gorm:"index" json:"semester"`
	Subject      string    `gorm:"size:200;not null" json:"subject"`
	Year         int       `gorm:"index" json:"year"`
	FileURL      string    `gorm:"size:512" json:"file_url"`
	IsPublished  bool      `gorm:"index" json:"is_published"`
	CreatedBy    *uint     `gorm:"index" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Degree     *Degree     `gorm:"foreignKey:DegreeID" json:"degree,omitempty"`
	University *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
}

// Note is study material. CreatedBy is nullable because notes also arrive
// through the public upload endpoint.
type Note struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Subject      string    `gorm:"size:255;not null" json:"subject"`
	DegreeID     uint      `gorm:"index;not null" json:"degree_id"`
	UniversityID uint      `gorm:"index;not null" json:"university_id"`
	Semester     int       `gorm:"index" json:"semester"`
	Year         int       `gorm:"index" json:"year"`
	FileURL      string    `gorm:"size:512;not null" json:"file_url"`
	IsPublished  bool      `gorm:"index" json:"is_published"`
	CreatedBy    *uint     `gorm:"index" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Degree     *Degree     `gorm:"foreignKey:DegreeID" json:"degree,omitempty"`
	University *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
}
