package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/handler"
	"github.com/keralatechreach/portal-api/internal/service"
)

type mockAuthService struct {
	user      dto.UserResponse
	tokens    dto.TokenPairResponse
	err       error
	lastToken string
}

func (m *mockAuthService) Register(context.Context, dto.RegisterRequest) (dto.UserResponse, error) {
	return m.user, m.err
}

func (m *mockAuthService) Login(context.Context, dto.LoginRequest) (dto.TokenPairResponse, dto.UserResponse, error) {
	return m.tokens, m.user, m.err
}

func (m *mockAuthService) Refresh(context.Context, dto.RefreshRequest) (dto.TokenPairResponse, error) {
	return m.tokens, m.err
}

func (m *mockAuthService) Verify(_ context.Context, token string) (dto.UserResponse, error) {
	m.lastToken = token
	return m.user, m.err
}

func (m *mockAuthService) ResendVerification(context.Context, dto.ResendVerificationRequest) error {
	return m.err
}

func (m *mockAuthService) Me(context.Context, uint) (dto.UserResponse, error) {
	return m.user, m.err
}

func newAuthApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))
	return app
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	app := newAuthApp(&mockAuthService{err: service.ErrAccountExists})

	payload, err := json.Marshal(dto.RegisterRequest{Username: "asha", Email: "asha@example.com", Password: "sup3r-secret"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAuthHandlerLoginReturnsTokenPair(t *testing.T) {
	svc := &mockAuthService{
		user:   dto.UserResponse{ID: 4, Email: "asha@example.com"},
		tokens: dto.TokenPairResponse{AccessToken: "access", RefreshToken: "refresh"},
	}
	app := newAuthApp(svc)

	payload, err := json.Marshal(dto.LoginRequest{Email: "asha@example.com", Password: "sup3r-secret"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Tokens dto.TokenPairResponse `json:"tokens"`
			User   dto.UserResponse      `json:"user"`
		} `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "access", body.Data.Tokens.AccessToken)
	require.Equal(t, uint(4), body.Data.User.ID)
}

func TestAuthHandlerLoginRejectsBadCredentials(t *testing.T) {
	app := newAuthApp(&mockAuthService{err: service.ErrInvalidCredentials})

	payload, err := json.Marshal(dto.LoginRequest{Email: "asha@example.com", Password: "nope"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerVerifyRequiresToken(t *testing.T) {
	svc := &mockAuthService{}
	app := newAuthApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Empty(t, svc.lastToken)
}

func TestAuthHandlerVerifyPassesToken(t *testing.T) {
	svc := &mockAuthService{user: dto.UserResponse{ID: 2, IsVerified: true}}
	app := newAuthApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify?token=abc123", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "abc123", svc.lastToken)
}

func TestAuthHandlerInvalidTokenRejected(t *testing.T) {
	app := newAuthApp(&mockAuthService{err: service.ErrVerificationTokenInvalid})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify?token=stale", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
