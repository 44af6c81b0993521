package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/config"
	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
)

type captureMailer struct {
	recipients []string
	bodies     []string
}

func (m *captureMailer) Send(_ context.Context, to, _ string, htmlBody string) error {
	m.recipients = append(m.recipients, to)
	m.bodies = append(m.bodies, htmlBody)
	return nil
}

func newAuthService(t *testing.T) (*authService, *gorm.DB, *captureMailer) {
	t.Helper()

	db := newTestDB(t, &models.UserAccount{}, &models.UserProfile{}, &models.ActivityLog{})
	repo := repository.NewUserRepository(db)
	activity := NewActivityService(repository.NewActivityLogRepository(db), nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())
	mail := &captureMailer{}

	cfg := config.Config{
		BaseURL:          "http://localhost:8080",
		JWTSecret:        "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  24 * time.Hour,
		VerificationTTL:  time.Hour,
	}

	svc := NewAuthService(repo, cfg, validate, activity, mail, zerolog.Nop()).(*authService)
	return svc, db, mail
}

func registerAccount(t *testing.T, svc *authService, email string) dto.UserResponse {
	t.Helper()

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "tester-" + email[:3],
		Email:    email,
		Password: "sup3r-secret",
	})
	require.NoError(t, err)
	return user
}

func storedToken(t *testing.T, db *gorm.DB, accountID uint) string {
	t.Helper()

	var profile models.UserProfile
	require.NoError(t, db.Where("account_id = ?", accountID).First(&profile).Error)
	require.NotNil(t, profile.VerificationToken)
	return *profile.VerificationToken
}

func TestAuthServiceRegisterCreatesAccountAndProfileTogether(t *testing.T) {
	svc, db, mail := newAuthService(t)

	user := registerAccount(t, svc, "asha@example.com")
	require.False(t, user.IsVerified)

	var accounts, profiles int64
	require.NoError(t, db.Model(&models.UserAccount{}).Count(&accounts).Error)
	require.NoError(t, db.Model(&models.UserProfile{}).Count(&profiles).Error)
	require.Equal(t, int64(1), accounts)
	require.Equal(t, int64(1), profiles)

	require.Equal(t, []string{"asha@example.com"}, mail.recipients)
	require.Contains(t, mail.bodies[0], storedToken(t, db, user.ID))
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	registerAccount(t, svc, "dup@example.com")

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "other",
		Email:    "dup@example.com",
		Password: "sup3r-secret",
	})
	require.ErrorIs(t, err, ErrAccountExists)
}

func TestAuthServiceLoginAndRefresh(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	user := registerAccount(t, svc, "login@example.com")

	pair, loggedIn, err := svc.Login(ctx, dto.LoginRequest{Email: "Login@Example.com", Password: "sup3r-secret"})
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	refreshed, err := svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	// An access token must not pass as a refresh token.
	_, err = svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: pair.AccessToken})
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	svc, db, _ := newAuthService(t)
	ctx := context.Background()

	user := registerAccount(t, svc, "cred@example.com")

	_, _, err := svc.Login(ctx, dto.LoginRequest{Email: "cred@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "sup3r-secret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, db.Model(&models.UserProfile{}).Where("account_id = ?", user.ID).Update("is_blocked", true).Error)
	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "cred@example.com", Password: "sup3r-secret"})
	require.ErrorIs(t, err, ErrAccountBlocked)
}

func TestAuthServiceVerificationTokenIsSingleUse(t *testing.T) {
	svc, db, _ := newAuthService(t)
	ctx := context.Background()

	user := registerAccount(t, svc, "verify@example.com")
	token := storedToken(t, db, user.ID)

	verified, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	require.True(t, verified.IsVerified)

	// Replaying the consumed token must fail.
	_, err = svc.Verify(ctx, token)
	require.ErrorIs(t, err, ErrVerificationTokenInvalid)

	_, err = svc.Verify(ctx, "0000000000000000000000000000000000000000000000000000000000000000")
	require.ErrorIs(t, err, ErrVerificationTokenInvalid)
}

func TestAuthServiceVerificationTokenExpires(t *testing.T) {
	svc, db, _ := newAuthService(t)
	ctx := context.Background()

	user := registerAccount(t, svc, "expire@example.com")
	token := storedToken(t, db, user.ID)

	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }

	_, err := svc.Verify(ctx, token)
	require.ErrorIs(t, err, ErrVerificationTokenInvalid)
}

func TestAuthServiceResendOverwritesPreviousToken(t *testing.T) {
	svc, db, mail := newAuthService(t)
	ctx := context.Background()

	user := registerAccount(t, svc, "resend@example.com")
	first := storedToken(t, db, user.ID)

	require.NoError(t, svc.ResendVerification(ctx, dto.ResendVerificationRequest{Email: "resend@example.com"}))
	second := storedToken(t, db, user.ID)
	require.NotEqual(t, first, second)
	require.Len(t, mail.recipients, 2)

	// The superseded token no longer verifies, the fresh one does.
	_, err := svc.Verify(ctx, first)
	require.ErrorIs(t, err, ErrVerificationTokenInvalid)

	_, err = svc.Verify(ctx, second)
	require.NoError(t, err)
}

func TestAuthServiceResendIsNoopWhenVerified(t *testing.T) {
	svc, db, mail := newAuthService(t)
	ctx := context.Background()

	user := registerAccount(t, svc, "settled@example.com")
	token := storedToken(t, db, user.ID)

	_, err := svc.Verify(ctx, token)
	require.NoError(t, err)

	sent := len(mail.recipients)
	require.NoError(t, svc.ResendVerification(ctx, dto.ResendVerificationRequest{Email: "settled@example.com"}))
	require.Len(t, mail.recipients, sent, "no mail should go out for a verified account")

	var profile models.UserProfile
	require.NoError(t, db.Where("account_id = ?", user.ID).First(&profile).Error)
	require.Nil(t, profile.VerificationToken)

	_, err = svc.Verify(ctx, token)
	require.ErrorIs(t, err, ErrVerificationTokenInvalid)
}
