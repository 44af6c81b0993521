package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/config"
	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
	"github.com/keralatechreach/portal-api/pkg/mailer"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists indicates the username or email is already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountBlocked indicates the profile is blocked or deleted.
	ErrAccountBlocked = errors.New("account is blocked")
	// ErrVerificationTokenInvalid covers unknown, expired and consumed
	// tokens. The three cases are deliberately indistinguishable.
	ErrVerificationTokenInvalid = errors.New("verification token is invalid or expired")
	// ErrAccountNotFound indicates no account matches the email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidRefreshToken indicates the refresh token failed validation.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthService handles registration, login and the verification lifecycle.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenPairResponse, dto.UserResponse, error)
	Refresh(ctx context.Context, payload dto.RefreshRequest) (dto.TokenPairResponse, error)
	Verify(ctx context.Context, token string) (dto.UserResponse, error)
	ResendVerification(ctx context.Context, payload dto.ResendVerificationRequest) error
	Me(ctx context.Context, accountID uint) (dto.UserResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	cfg       config.Config
	validator *validator.Validate
	activity  ActivityRecorder
	mail      mailer.Mailer
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(repo repository.UserRepository, cfg config.Config, validate *validator.Validate, activity ActivityRecorder, mail mailer.Mailer, logger zerolog.Logger) AuthService {
	return &authService{
		repo:      repo,
		cfg:       cfg,
		validator: validate,
		activity:  activity,
		mail:      mail,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

// Register creates the account and its profile in one transaction, then
// issues a verification token and emails the link.
func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	account := models.UserAccount{
		Username:     strings.TrimSpace(payload.Username),
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		PasswordHash: string(hash),
	}
	profile := models.UserProfile{
		Phone: strings.TrimSpace(payload.Phone),
	}

	if err := s.repo.CreateWithProfile(ctx, &account, &profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.UserResponse{}, ErrAccountExists
		}
		return dto.UserResponse{}, err
	}

	if err := s.issueVerification(ctx, account); err != nil {
		s.logger.Warn().Err(err).Uint("account_id", account.ID).Msg("failed to issue verification token")
	}

	s.recordAuth(ctx, account.ID, profile.Role(), "user.registered")

	return dto.NewUserResponse(account, profile), nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenPairResponse, dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenPairResponse{}, dto.UserResponse{}, err
	}

	account, err := s.repo.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenPairResponse{}, dto.UserResponse{}, ErrInvalidCredentials
		}
		return dto.TokenPairResponse{}, dto.UserResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.TokenPairResponse{}, dto.UserResponse{}, ErrInvalidCredentials
	}

	profile := models.UserProfile{}
	if account.Profile != nil {
		profile = *account.Profile
	}
	if profile.IsBlocked || profile.IsDeleted {
		return dto.TokenPairResponse{}, dto.UserResponse{}, ErrAccountBlocked
	}

	pair, err := s.issueTokenPair(account.ID, profile.Role())
	if err != nil {
		return dto.TokenPairResponse{}, dto.UserResponse{}, err
	}

	s.recordAuth(ctx, account.ID, profile.Role(), "user.logged_in")

	return pair, dto.NewUserResponse(account, profile), nil
}

func (s *authService) Refresh(ctx context.Context, payload dto.RefreshRequest) (dto.TokenPairResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenPairResponse{}, err
	}

	token, err := jwt.Parse(payload.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.cfg.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return dto.TokenPairResponse{}, ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dto.TokenPairResponse{}, ErrInvalidRefreshToken
	}
	if kind, _ := claims["type"].(string); kind != "refresh" {
		return dto.TokenPairResponse{}, ErrInvalidRefreshToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return dto.TokenPairResponse{}, ErrInvalidRefreshToken
	}

	account, err := s.repo.GetByID(ctx, uint(sub))
	if err != nil {
		return dto.TokenPairResponse{}, ErrInvalidRefreshToken
	}

	profile := models.UserProfile{}
	if account.Profile != nil {
		profile = *account.Profile
	}
	if profile.IsBlocked || profile.IsDeleted {
		return dto.TokenPairResponse{}, ErrAccountBlocked
	}

	return s.issueTokenPair(account.ID, profile.Role())
}

// Verify consumes a verification token. The conditional update in the
// repository guarantees a token flips exactly one profile exactly once.
func (s *authService) Verify(ctx context.Context, token string) (dto.UserResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return dto.UserResponse{}, ErrVerificationTokenInvalid
	}

	profile, err := s.repo.ConsumeVerificationToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrVerificationTokenInvalid
		}
		return dto.UserResponse{}, err
	}

	account, err := s.repo.GetByID(ctx, profile.AccountID)
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.recordAuth(ctx, account.ID, profile.Role(), "user.verified")

	return dto.NewUserResponse(account, profile), nil
}

// ResendVerification issues a fresh token unless the account is already
// verified, in which case it does nothing.
func (s *authService) ResendVerification(ctx context.Context, payload dto.ResendVerificationRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	account, err := s.repo.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if account.Profile != nil && account.Profile.IsVerified {
		return nil
	}

	return s.issueVerification(ctx, account)
}

func (s *authService) Me(ctx context.Context, accountID uint) (dto.UserResponse, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrAccountNotFound
		}
		return dto.UserResponse{}, err
	}
	profile := models.UserProfile{}
	if account.Profile != nil {
		profile = *account.Profile
	}
	return dto.NewUserResponse(account, profile), nil
}

// issueVerification overwrites any previous token, so only the newest link
// in the user's mailbox works.
func (s *authService) issueVerification(ctx context.Context, account models.UserAccount) error {
	token, err := generateVerificationToken()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.cfg.VerificationTTL)
	if err := s.repo.SetVerificationToken(ctx, account.ID, token, expiresAt); err != nil {
		return err
	}

	if s.mail == nil {
		return nil
	}

	link := s.cfg.VerificationURL(token)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Confirm your email address by opening <a href=%q>this link</a>. It expires in %s.</p>",
		html.EscapeString(account.Username), link, s.cfg.VerificationTTL)
	if err := s.mail.Send(ctx, account.Email, "Verify your email", body); err != nil {
		s.logger.Warn().Err(err).Uint("account_id", account.ID).Msg("failed to send verification email")
	}
	return nil
}

func (s *authService) issueTokenPair(accountID uint, role string) (dto.TokenPairResponse, error) {
	now := s.now()

	access, err := signToken(jwt.MapClaims{
		"sub":  accountID,
		"role": role,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.AccessTokenTTL).Unix(),
	}, s.cfg.JWTSecret)
	if err != nil {
		return dto.TokenPairResponse{}, err
	}

	refresh, err := signToken(jwt.MapClaims{
		"sub":  accountID,
		"type": "refresh",
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.RefreshTokenTTL).Unix(),
	}, s.cfg.JWTRefreshSecret)
	if err != nil {
		return dto.TokenPairResponse{}, err
	}

	return dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func signToken(claims jwt.MapClaims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func generateVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *authService) recordAuth(ctx context.Context, accountID uint, role, action string) {
	if s.activity == nil {
		return
	}
	id := accountID
	_, _ = s.activity.Record(ctx, ActivityEntry{
		ActorID:    accountID,
		ActorRole:  role,
		Action:     action,
		EntityType: "user",
		EntityID:   &id,
	})
}
