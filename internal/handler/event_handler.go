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

// EventHandler serves the public event listings.
type EventHandler struct {
	service service.EventService
	logger  zerolog.Logger
}

// NewEventHandler constructs a public event handler.
func NewEventHandler(service service.EventService, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger.With().Str("component", "event_handler").Logger(),
	}
}

// Register wires the public event routes.
func (h *EventHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func eventListRequest(c *fiber.Ctx) dto.EventListRequest {
	page, pageSize := pageParams(c)
	districtID, _ := parseQueryUint(c, "district_id")
	categoryID, _ := parseQueryUint(c, "category_id")

	return dto.EventListRequest{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		DistrictID: districtID,
		CategoryID: categoryID,
	}
}

func (h *EventHandler) list(c *fiber.Ctx) error {
	result, err := h.service.ListPublished(c.Context(), eventListRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list events")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list events")
	}

	return utils.SendList(c, "events retrieved", result.Items, fiber.Map{
		"pagination": result.Pagination,
		"cache_hit":  result.CacheHit,
	})
}

func (h *EventHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event id")
	}

	event, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load event")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load event")
	}

	if !event.IsPublished {
		return utils.SendError(c, fiber.StatusNotFound, service.ErrEventNotFound.Error())
	}

	return utils.SendSuccess(c, "event retrieved", event)
}

// AdminEventHandler manages events from the dashboard.
type AdminEventHandler struct {
	service service.EventService
	logger  zerolog.Logger
}

// NewAdminEventHandler constructs an admin event handler.
func NewAdminEventHandler(service service.EventService, logger zerolog.Logger) *AdminEventHandler {
	return &AdminEventHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_event_handler").Logger(),
	}
}

// Register wires the admin event routes.
func (h *AdminEventHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.setPublished)
}

func (h *AdminEventHandler) list(c *fiber.Ctx) error {
	result, err := h.service.List(c.Context(), eventListRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list events")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list events")
	}

	return utils.SendList(c, "events retrieved", result.Items, fiber.Map{
		"pagination": result.Pagination,
	})
}

func (h *AdminEventHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event id")
	}

	event, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load event")
	}

	return utils.SendSuccess(c, "event retrieved", event)
}

func (h *AdminEventHandler) create(c *fiber.Ctx) error {
	var payload dto.EventCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	event, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create event")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "event created", event)
}

func (h *AdminEventHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event id")
	}

	var payload dto.EventUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	event, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update event")
	}

	return utils.SendSuccess(c, "event updated", event)
}

func (h *AdminEventHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete event")
	}

	return utils.SendSuccess(c, "event deleted", nil)
}

func (h *AdminEventHandler) setPublished(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event id")
	}

	var payload dto.PublishRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsPublished == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	event, err := h.service.SetPublished(c.Context(), id, *payload.IsPublished, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to change publication state")
	}

	return utils.SendSuccess(c, "publication state updated", event)
}

func (h *AdminEventHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err), errors.Is(err, service.ErrEventEndsBeforeStart), errors.Is(err, service.ErrInvalidDate):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEventNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTaxonomyNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

// TaxonomyHandler serves the public district and category lists the event
// filters depend on.
type TaxonomyHandler struct {
	service service.TaxonomyService
	logger  zerolog.Logger
}

// NewTaxonomyHandler constructs a public taxonomy handler.
func NewTaxonomyHandler(service service.TaxonomyService, logger zerolog.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		service: service,
		logger:  logger.With().Str("component", "taxonomy_handler").Logger(),
	}
}

// Register wires the public taxonomy routes.
func (h *TaxonomyHandler) Register(router fiber.Router) {
	router.Get("/districts", h.listDistricts)
	router.Get("/event-categories", h.listCategories)
}

func (h *TaxonomyHandler) listDistricts(c *fiber.Ctx) error {
	districts, err := h.service.ListDistricts(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list districts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list districts")
	}

	return utils.SendSuccess(c, "districts retrieved", districts)
}

func (h *TaxonomyHandler) listCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list event categories")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list event categories")
	}

	return utils.SendSuccess(c, "event categories retrieved", categories)
}

// AdminTaxonomyHandler manages districts and event categories.
type AdminTaxonomyHandler struct {
	service service.TaxonomyService
	logger  zerolog.Logger
}

// NewAdminTaxonomyHandler constructs an admin taxonomy handler.
func NewAdminTaxonomyHandler(service service.TaxonomyService, logger zerolog.Logger) *AdminTaxonomyHandler {
	return &AdminTaxonomyHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_taxonomy_handler").Logger(),
	}
}

// Register wires the admin taxonomy routes.
func (h *AdminTaxonomyHandler) Register(router fiber.Router) {
	router.Get("/districts", h.listDistricts)
	router.Post("/districts", h.createDistrict)
	router.Put("/districts/:id", h.updateDistrict)
	router.Delete("/districts/:id", h.deleteDistrict)

	router.Get("/event-categories", h.listCategories)
	router.Post("/event-categories", h.createCategory)
	router.Put("/event-categories/:id", h.updateCategory)
	router.Delete("/event-categories/:id", h.deleteCategory)
}

func (h *AdminTaxonomyHandler) listDistricts(c *fiber.Ctx) error {
	districts, err := h.service.ListDistricts(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list districts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list districts")
	}

	return utils.SendSuccess(c, "districts retrieved", districts)
}

func (h *AdminTaxonomyHandler) createDistrict(c *fiber.Ctx) error {
	var payload dto.DistrictRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	district, err := h.service.CreateDistrict(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create district")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "district created", district)
}

func (h *AdminTaxonomyHandler) updateDistrict(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid district id")
	}

	var payload dto.DistrictRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	district, err := h.service.UpdateDistrict(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update district")
	}

	return utils.SendSuccess(c, "district updated", district)
}

func (h *AdminTaxonomyHandler) deleteDistrict(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid district id")
	}

	if err := h.service.DeleteDistrict(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete district")
	}

	return utils.SendSuccess(c, "district deleted", nil)
}

func (h *AdminTaxonomyHandler) listCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list event categories")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list event categories")
	}

	return utils.SendSuccess(c, "event categories retrieved", categories)
}

func (h *AdminTaxonomyHandler) createCategory(c *fiber.Ctx) error {
	var payload dto.EventCategoryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	category, err := h.service.CreateCategory(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create event category")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "event category created", category)
}

func (h *AdminTaxonomyHandler) updateCategory(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid category id")
	}

	var payload dto.EventCategoryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	category, err := h.service.UpdateCategory(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update event category")
	}

	return utils.SendSuccess(c, "event category updated", category)
}

func (h *AdminTaxonomyHandler) deleteCategory(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid category id")
	}

	if err := h.service.DeleteCategory(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete event category")
	}

	return utils.SendSuccess(c, "event category deleted", nil)
}

func (h *AdminTaxonomyHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTaxonomyNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
