package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/keralatechreach/portal-api/internal/config"
	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/handler"
	"github.com/keralatechreach/portal-api/internal/service"
)

type stubNewsService struct {
	list dto.NewsListResponse
}

func (s stubNewsService) List(context.Context, dto.ListRequest) (dto.NewsListResponse, error) {
	return s.list, nil
}

func (s stubNewsService) Get(context.Context, uint) (dto.NewsResponse, error) {
	return dto.NewsResponse{}, service.ErrNewsNotFound
}

func (s stubNewsService) Create(context.Context, dto.NewsCreateRequest, service.ActivityActor) (dto.NewsResponse, error) {
	return dto.NewsResponse{}, nil
}

func (s stubNewsService) Update(context.Context, uint, dto.NewsUpdateRequest, service.ActivityActor) (dto.NewsResponse, error) {
	return dto.NewsResponse{}, nil
}

func (s stubNewsService) Delete(context.Context, uint, service.ActivityActor) error {
	return nil
}

func (s stubNewsService) SetPublished(context.Context, uint, bool, service.ActivityActor) (dto.NewsResponse, error) {
	return dto.NewsResponse{}, nil
}

func (s stubNewsService) ListPublished(context.Context, dto.ListRequest) (dto.NewsListResponse, error) {
	return s.list, nil
}

func (s stubNewsService) GetPublishedBySlug(context.Context, string) (dto.NewsResponse, error) {
	return dto.NewsResponse{}, service.ErrNewsNotFound
}

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()

	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	schema, err := jsonschema.NewCompiler().Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func validateResponse(t *testing.T, schema *jsonschema.Schema, resp *http.Response) {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}

func TestPublicNewsListContract(t *testing.T) {
	schema := compileSchema(t, "public_news_list.schema.json")

	authorID := uint(5)
	stub := stubNewsService{
		list: dto.NewsListResponse{
			Items: []dto.NewsResponse{
				{
					ID:             1,
					Title:          "Startup Mission Opens New Hub in Kozhikode",
					Slug:           "startup-mission-opens-new-hub-in-kozhikode",
					Content:        "The hub offers free desks for student founders.",
					Excerpt:        "Free desks for student founders.",
					ImageURL:       "https://cdn.example.com/news/hub.jpg",
					IsPublished:    true,
					ReadingMinutes: 3,
					ViewsCount:     42,
					CreatedBy:      &authorID,
					CreatedAt:      time.Now().UTC(),
					UpdatedAt:      time.Now().UTC(),
				},
			},
			Pagination: dto.PaginationMeta{Page: 1, PageSize: 20, TotalItems: 1, TotalPages: 1},
			CacheHit:   true,
		},
	}

	app := fiber.New()
	handler.NewNewsHandler(stub, zerolog.Nop()).Register(app.Group("/api/v1/news"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/news", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateResponse(t, schema, resp)
}

func TestHealthContract(t *testing.T) {
	schema := compileSchema(t, "health.schema.json")

	cfg := config.Config{AppName: "portal-api", AppEnv: "test"}

	app := fiber.New()
	app.Get("/api/v1/health", handler.HealthCheck(cfg))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateResponse(t, schema, resp)
}
