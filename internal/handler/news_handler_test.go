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

type mockNewsService struct {
	listResponse dto.NewsListResponse
	article      dto.NewsResponse
	err          error

	lastCreate dto.NewsCreateRequest
	lastActor  service.ActivityActor
	lastSlug   string
}

func (m *mockNewsService) List(context.Context, dto.ListRequest) (dto.NewsListResponse, error) {
	return m.listResponse, m.err
}

func (m *mockNewsService) ListPublished(context.Context, dto.ListRequest) (dto.NewsListResponse, error) {
	return m.listResponse, m.err
}

func (m *mockNewsService) Get(context.Context, uint) (dto.NewsResponse, error) {
	return m.article, m.err
}

func (m *mockNewsService) GetPublishedBySlug(_ context.Context, slug string) (dto.NewsResponse, error) {
	m.lastSlug = slug
	return m.article, m.err
}

func (m *mockNewsService) Create(_ context.Context, payload dto.NewsCreateRequest, actor service.ActivityActor) (dto.NewsResponse, error) {
	m.lastCreate = payload
	m.lastActor = actor
	return m.article, m.err
}

func (m *mockNewsService) Update(context.Context, uint, dto.NewsUpdateRequest, service.ActivityActor) (dto.NewsResponse, error) {
	return m.article, m.err
}

func (m *mockNewsService) Delete(context.Context, uint, service.ActivityActor) error {
	return m.err
}

func (m *mockNewsService) SetPublished(context.Context, uint, bool, service.ActivityActor) (dto.NewsResponse, error) {
	return m.article, m.err
}

func TestNewsHandlerPublicList(t *testing.T) {
	svc := &mockNewsService{listResponse: dto.NewsListResponse{
		Items:      []dto.NewsResponse{{ID: 1, Title: "Hello", Slug: "hello"}},
		Pagination: dto.PaginationMeta{Page: 1, PageSize: 20, TotalItems: 1, TotalPages: 1},
	}}

	app := fiber.New()
	handler.NewNewsHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/news"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/news?page=1", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool               `json:"success"`
		Data    []dto.NewsResponse `json:"data"`
		Meta    struct {
			Pagination dto.PaginationMeta `json:"pagination"`
		} `json:"meta"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Len(t, body.Data, 1)
	require.Equal(t, 1, body.Meta.Pagination.Page)
}

func TestNewsHandlerSlugNotFound(t *testing.T) {
	svc := &mockNewsService{err: service.ErrNewsNotFound}

	app := fiber.New()
	handler.NewNewsHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/news"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/news/missing-slug", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "missing-slug", svc.lastSlug)
}

func TestAdminNewsHandlerCreateCarriesActor(t *testing.T) {
	svc := &mockNewsService{article: dto.NewsResponse{ID: 9, Title: "Created", Slug: "created"}}

	app := fiber.New()
	group := app.Group("/api/v1/admin/news", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(12))
		c.Locals("user_role", "staff")
		return c.Next()
	})
	handler.NewAdminNewsHandler(svc, zerolog.New(io.Discard)).Register(group)

	payload, err := json.Marshal(dto.NewsCreateRequest{Title: "Created", Content: "body"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/news", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Equal(t, uint(12), svc.lastActor.ID)
	require.Equal(t, "staff", svc.lastActor.Role)
	require.NotEmpty(t, svc.lastActor.IPAddress)
	require.Equal(t, "Created", svc.lastCreate.Title)
}

func TestAdminNewsHandlerPublishRequiresFlag(t *testing.T) {
	svc := &mockNewsService{}

	app := fiber.New()
	handler.NewAdminNewsHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/admin/news"))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/news/3/publish", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
