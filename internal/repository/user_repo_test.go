package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
)

func seedAccount(t *testing.T, repo UserRepository, email string) models.UserAccount {
	t.Helper()

	account := models.UserAccount{Username: "user-" + email[:4], Email: email, PasswordHash: "hash"}
	profile := models.UserProfile{}
	require.NoError(t, repo.CreateWithProfile(context.Background(), &account, &profile))
	return account
}

func TestUserRepositoryCreateWithProfileLinksRows(t *testing.T) {
	db := setupTestDB(t, &models.UserAccount{}, &models.UserProfile{})
	repo := NewUserRepository(db)

	account := seedAccount(t, repo, "asha@example.com")
	require.NotZero(t, account.ID)
	require.NotNil(t, account.Profile)
	require.Equal(t, account.ID, account.Profile.AccountID)

	found, err := repo.GetByEmail(context.Background(), "ASHA@example.com")
	require.NoError(t, err)
	require.Equal(t, account.ID, found.ID)
	require.NotNil(t, found.Profile)
}

func TestUserRepositoryCreateWithProfileRollsBackTogether(t *testing.T) {
	db := setupTestDB(t, &models.UserAccount{}, &models.UserProfile{})
	repo := NewUserRepository(db)

	seedAccount(t, repo, "taken@example.com")

	dup := models.UserAccount{Username: "someone-else", Email: "taken@example.com", PasswordHash: "hash"}
	err := repo.CreateWithProfile(context.Background(), &dup, &models.UserProfile{})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var profiles int64
	require.NoError(t, db.Model(&models.UserProfile{}).Count(&profiles).Error)
	require.Equal(t, int64(1), profiles, "failed registration must not leave an orphan profile")
}

func TestUserRepositorySetVerificationTokenOverwrites(t *testing.T) {
	db := setupTestDB(t, &models.UserAccount{}, &models.UserProfile{})
	repo := NewUserRepository(db)
	ctx := context.Background()

	account := seedAccount(t, repo, "tok@example.com")
	expires := time.Now().UTC().Add(time.Hour)

	require.NoError(t, repo.SetVerificationToken(ctx, account.ID, "first-token", expires))
	require.NoError(t, repo.SetVerificationToken(ctx, account.ID, "second-token", expires))

	var profile models.UserProfile
	require.NoError(t, db.Where("account_id = ?", account.ID).First(&profile).Error)
	require.NotNil(t, profile.VerificationToken)
	require.Equal(t, "second-token", *profile.VerificationToken)
	require.False(t, profile.IsVerified)

	_, err := repo.ConsumeVerificationToken(ctx, "first-token", time.Now().UTC())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryConsumeVerificationTokenIsSingleUse(t *testing.T) {
	db := setupTestDB(t, &models.UserAccount{}, &models.UserProfile{})
	repo := NewUserRepository(db)
	ctx := context.Background()

	account := seedAccount(t, repo, "once@example.com")
	require.NoError(t, repo.SetVerificationToken(ctx, account.ID, "one-shot", time.Now().UTC().Add(time.Hour)))

	profile, err := repo.ConsumeVerificationToken(ctx, "one-shot", time.Now().UTC())
	require.NoError(t, err)
	require.True(t, profile.IsVerified)
	require.Nil(t, profile.VerificationToken)

	_, err = repo.ConsumeVerificationToken(ctx, "one-shot", time.Now().UTC())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryConsumeVerificationTokenRejectsExpired(t *testing.T) {
	db := setupTestDB(t, &models.UserAccount{}, &models.UserProfile{})
	repo := NewUserRepository(db)
	ctx := context.Background()

	account := seedAccount(t, repo, "late@example.com")
	require.NoError(t, repo.SetVerificationToken(ctx, account.ID, "stale", time.Now().UTC().Add(-time.Minute)))

	_, err := repo.ConsumeVerificationToken(ctx, "stale", time.Now().UTC())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var profile models.UserProfile
	require.NoError(t, db.Where("account_id = ?", account.ID).First(&profile).Error)
	require.False(t, profile.IsVerified)
}

func TestUserRepositoryUpdateProfileFlags(t *testing.T) {
	db := setupTestDB(t, &models.UserAccount{}, &models.UserProfile{})
	repo := NewUserRepository(db)
	ctx := context.Background()

	account := seedAccount(t, repo, "flag@example.com")

	profile, err := repo.UpdateProfileFlags(ctx, account.ID, map[string]interface{}{"is_staff": true, "is_approved": true})
	require.NoError(t, err)
	require.True(t, profile.IsStaff)
	require.True(t, profile.IsApproved)

	_, err = repo.UpdateProfileFlags(ctx, 999, map[string]interface{}{"is_staff": true})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
