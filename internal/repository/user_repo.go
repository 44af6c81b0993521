package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
)

// UserFilter narrows account listings for the dashboard.
type UserFilter struct {
	Page     int
	PageSize int
	Search   string
}

// UserRepository manages accounts, profiles and the verification token
// lifecycle. Accounts and profiles are always created together: every
// account has exactly one profile.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, account *models.UserAccount, profile *models.UserProfile) error
	GetByID(ctx context.Context, id uint) (models.UserAccount, error)
	GetByEmail(ctx context.Context, email string) (models.UserAccount, error)
	List(ctx context.Context, filter UserFilter) ([]models.UserAccount, int64, error)
	UpdateProfileFlags(ctx context.Context, accountID uint, updates map[string]interface{}) (models.UserProfile, error)

	SetVerificationToken(ctx context.Context, accountID uint, token string, expiresAt time.Time) error
	ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (models.UserProfile, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateWithProfile(ctx context.Context, account *models.UserAccount, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		profile.AccountID = account.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		account.Profile = profile
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.UserAccount, error) {
	var account models.UserAccount
	if err := r.db.WithContext(ctx).Preload("Profile").First(&account, id).Error; err != nil {
		return models.UserAccount{}, err
	}
	return account, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.UserAccount, error) {
	var account models.UserAccount
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Preload("Profile").
		Where("email = ?", normalized).First(&account).Error; err != nil {
		return models.UserAccount{}, err
	}
	return account, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.UserAccount, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserAccount{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var accounts []models.UserAccount
	if err := query.Preload("Profile").Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func (r *userRepository) UpdateProfileFlags(ctx context.Context, accountID uint, updates map[string]interface{}) (models.UserProfile, error) {
	tx := r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("account_id = ?", accountID).Updates(updates)
	if tx.Error != nil {
		return models.UserProfile{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.UserProfile{}, gorm.ErrRecordNotFound
	}

	var profile models.UserProfile
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

// SetVerificationToken overwrites any previously issued token in a single
// UPDATE, so concurrent issuance requests serialize at the row and exactly
// one token is active at a time.
func (r *userRepository) SetVerificationToken(ctx context.Context, accountID uint, token string, expiresAt time.Time) error {
	tx := r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("account_id = ?", accountID).
		Updates(map[string]interface{}{
			"is_verified":                   false,
			"verification_token":            token,
			"verification_token_expires_at": expiresAt,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ConsumeVerificationToken marks the profile verified and clears the token
// in one conditional UPDATE keyed on the token value and its expiry. An
// unknown, expired or already-consumed token all fail with
// gorm.ErrRecordNotFound; callers must not distinguish the three.
func (r *userRepository) ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (models.UserProfile, error) {
	var profile models.UserProfile

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("verification_token = ?", token).First(&profile).Error; err != nil {
			return err
		}

		update := tx.Model(&models.UserProfile{}).
			Where("id = ?", profile.ID).
			Where("verification_token = ?", token).
			Where("verification_token_expires_at >= ?", now).
			Updates(map[string]interface{}{
				"is_verified":                   true,
				"verification_token":            nil,
				"verification_token_expires_at": nil,
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		profile.IsVerified = true
		profile.VerificationToken = nil
		profile.VerificationTokenExpiresAt = nil
		return nil
	})
	if err != nil {
		return models.UserProfile{}, err
	}

	return profile, nil
}
