package dto

import (
	"time"

	"github.com/keralatechreach/portal-api/internal/models"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone" validate:"omitempty,max=24"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ResendVerificationRequest asks for a fresh verification email.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenPairResponse carries the issued JWT pair.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse serializes an account together with its profile flags.
type UserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	IsStaff    bool      `json:"is_staff"`
	IsApproved bool      `json:"is_approved"`
	IsBlocked  bool      `json:"is_blocked"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewUserResponse maps an account and profile to the response payload.
func NewUserResponse(account models.UserAccount, profile models.UserProfile) UserResponse {
	return UserResponse{
		ID:         account.ID,
		Username:   account.Username,
		Email:      account.Email,
		Phone:      profile.Phone,
		IsStaff:    profile.IsStaff,
		IsApproved: profile.IsApproved,
		IsBlocked:  profile.IsBlocked,
		IsVerified: profile.IsVerified,
		CreatedAt:  account.CreatedAt,
	}
}

// UserListResponse wraps paginated users for the dashboard.
type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// UserFlagsUpdateRequest adjusts profile role flags from the dashboard.
type UserFlagsUpdateRequest struct {
	IsStaff    *bool `json:"is_staff"`
	IsApproved *bool `json:"is_approved"`
	IsBlocked  *bool `json:"is_blocked"`
	IsDeleted  *bool `json:"is_deleted"`
}
