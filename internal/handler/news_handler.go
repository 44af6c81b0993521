package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/service"
	"github.com/keralatechreach/portal-api/internal/utils"
)

// NewsHandler serves the public news feed.
type NewsHandler struct {
	service service.NewsService
	logger  zerolog.Logger
}

// NewNewsHandler constructs a public news handler.
func NewNewsHandler(service service.NewsService, logger zerolog.Logger) *NewsHandler {
	return &NewsHandler{
		service: service,
		logger:  logger.With().Str("component", "news_handler").Logger(),
	}
}

// Register wires the public news routes.
func (h *NewsHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:slug", h.getBySlug)
}

func (h *NewsHandler) list(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	req := dto.ListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}

	result, err := h.service.ListPublished(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list news")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list news")
	}

	return utils.SendList(c, "news retrieved", result.Items, fiber.Map{
		"pagination": result.Pagination,
		"cache_hit":  result.CacheHit,
	})
}

func (h *NewsHandler) getBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "slug is required")
	}

	article, err := h.service.GetPublishedBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load news article")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load news article")
	}

	return utils.SendSuccess(c, "news article retrieved", article)
}

// AdminNewsHandler manages news articles from the dashboard.
type AdminNewsHandler struct {
	service service.NewsService
	logger  zerolog.Logger
}

// NewAdminNewsHandler constructs an admin news handler.
func NewAdminNewsHandler(service service.NewsService, logger zerolog.Logger) *AdminNewsHandler {
	return &AdminNewsHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_news_handler").Logger(),
	}
}

// Register wires the admin news routes.
func (h *AdminNewsHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.setPublished)
}

func (h *AdminNewsHandler) list(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	req := dto.ListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}

	result, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list news")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list news")
	}

	return utils.SendList(c, "news retrieved", result.Items, fiber.Map{
		"pagination": result.Pagination,
	})
}

func (h *AdminNewsHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid news id")
	}

	article, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load news article")
	}

	return utils.SendSuccess(c, "news article retrieved", article)
}

func (h *AdminNewsHandler) create(c *fiber.Ctx) error {
	var payload dto.NewsCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	article, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create news article")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "news article created", article)
}

func (h *AdminNewsHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid news id")
	}

	var payload dto.NewsUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	article, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update news article")
	}

	return utils.SendSuccess(c, "news article updated", article)
}

func (h *AdminNewsHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid news id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete news article")
	}

	return utils.SendSuccess(c, "news article deleted", nil)
}

func (h *AdminNewsHandler) setPublished(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid news id")
	}

	var payload dto.PublishRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsPublished == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	article, err := h.service.SetPublished(c.Context(), id, *payload.IsPublished, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to change publication state")
	}

	return utils.SendSuccess(c, "publication state updated", article)
}

func (h *AdminNewsHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNewsNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
