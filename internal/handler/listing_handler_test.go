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

type mockJobService struct {
	job dto.JobResponse
	err error
}

func (m *mockJobService) List(context.Context, dto.ListRequest) ([]dto.JobResponse, dto.PaginationMeta, error) {
	return []dto.JobResponse{m.job}, dto.PaginationMeta{}, m.err
}

func (m *mockJobService) ListPublished(context.Context, dto.ListRequest) ([]dto.JobResponse, dto.PaginationMeta, error) {
	return []dto.JobResponse{m.job}, dto.PaginationMeta{}, m.err
}

func (m *mockJobService) Get(context.Context, uint) (dto.JobResponse, error) {
	return m.job, m.err
}

func (m *mockJobService) Create(context.Context, dto.JobCreateRequest, service.ActivityActor) (dto.JobResponse, error) {
	return m.job, m.err
}

func (m *mockJobService) Update(context.Context, uint, dto.JobUpdateRequest, service.ActivityActor) (dto.JobResponse, error) {
	return m.job, m.err
}

func (m *mockJobService) Delete(context.Context, uint, service.ActivityActor) error {
	return m.err
}

func (m *mockJobService) SetPublished(context.Context, uint, bool, service.ActivityActor) (dto.JobResponse, error) {
	return m.job, m.err
}

func TestAdminJobHandlerCreateMalformedDeadlineReturns400(t *testing.T) {
	svc := &mockJobService{err: service.ErrInvalidDate}

	app := fiber.New()
	handler.NewAdminJobHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/admin/jobs"))

	payload, err := json.Marshal(dto.JobCreateRequest{
		Title:       "Junior Developer",
		Description: "Apply with resume.",
		LastDate:    "30/10/2026",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/jobs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, service.ErrInvalidDate.Error(), body.Message)
}

func TestAdminJobHandlerDeleteNotFoundReturns404(t *testing.T) {
	svc := &mockJobService{err: service.ErrJobNotFound}

	app := fiber.New()
	handler.NewAdminJobHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/admin/jobs"))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/jobs/42", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
