package models

import "time"

// UserAccount stores login credentials for dashboard and API users.
type UserAccount struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:160;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Profile *UserProfile `gorm:"foreignKey:AccountID" json:"profile,omitempty"`
}

// UserProfile carries role flags and the email verification state for an
// account. Every account owns exactly one profile; both rows are created in
// the same transaction at registration time.
type UserProfile struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	AccountID  uint    `gorm:"uniqueIndex;not null" json:"account_id"`
	Phone      string  `gorm:"size:24" json:"phone"`
	Bio        string  `gorm:"type:text" json:"bio"`
	DistrictID *uint   `gorm:"index" json:"district_id"`
	IsStaff    bool    `json:"is_staff"`
	IsApproved bool    `json:"is_approved"`
	IsBlocked  bool    `json:"is_blocked"`
	IsDeleted  bool    `json:"is_deleted"`
	IsVerified bool    `json:"is_verified"`

	// VerificationToken is single-use and time-bounded. A consumed or
	// superseded token is cleared, never reused.
	VerificationToken          *string    `gorm:"size:64;uniqueIndex" json:"-"`
	VerificationTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role returns the coarse role label used in JWT claims and audit entries.
func (p UserProfile) Role() string {
	if p.IsStaff {
		return "staff"
	}
	return "member"
}
