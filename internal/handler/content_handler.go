package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/service"
	"github.com/keralatechreach/portal-api/internal/utils"
)

// GalleryHandler serves the public photo gallery.
type GalleryHandler struct {
	service service.GalleryService
	logger  zerolog.Logger
}

// NewGalleryHandler constructs a public gallery handler.
func NewGalleryHandler(service service.GalleryService, logger zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		service: service,
		logger:  logger.With().Str("component", "gallery_handler").Logger(),
	}
}

// Register wires the public gallery routes.
func (h *GalleryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *GalleryHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.ListPublished(c.Context(), listRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list gallery items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list gallery items")
	}

	return utils.SendList(c, "gallery items retrieved", items, fiber.Map{"pagination": pagination})
}

// AdminGalleryHandler manages gallery items.
type AdminGalleryHandler struct {
	service service.GalleryService
	logger  zerolog.Logger
}

// NewAdminGalleryHandler constructs an admin gallery handler.
func NewAdminGalleryHandler(service service.GalleryService, logger zerolog.Logger) *AdminGalleryHandler {
	return &AdminGalleryHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_gallery_handler").Logger(),
	}
}

// Register wires the admin gallery routes.
func (h *AdminGalleryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.setPublished)
}

func (h *AdminGalleryHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.List(c.Context(), listRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list gallery items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list gallery items")
	}

	return utils.SendList(c, "gallery items retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *AdminGalleryHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid gallery item id")
	}

	item, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load gallery item")
	}

	return utils.SendSuccess(c, "gallery item retrieved", item)
}

func (h *AdminGalleryHandler) create(c *fiber.Ctx) error {
	var payload dto.GalleryItemCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create gallery item")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "gallery item created", item)
}

func (h *AdminGalleryHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid gallery item id")
	}

	var payload dto.GalleryItemUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update gallery item")
	}

	return utils.SendSuccess(c, "gallery item updated", item)
}

func (h *AdminGalleryHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid gallery item id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete gallery item")
	}

	return utils.SendSuccess(c, "gallery item deleted", nil)
}

func (h *AdminGalleryHandler) setPublished(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid gallery item id")
	}

	var payload dto.PublishRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsPublished == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.SetPublished(c.Context(), id, *payload.IsPublished, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to change publication state")
	}

	return utils.SendSuccess(c, "publication state updated", item)
}

func (h *AdminGalleryHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGalleryItemNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

// InitiativeHandler serves published initiatives.
type InitiativeHandler struct {
	service service.InitiativeService
	logger  zerolog.Logger
}

// NewInitiativeHandler constructs a public initiative handler.
func NewInitiativeHandler(service service.InitiativeService, logger zerolog.Logger) *InitiativeHandler {
	return &InitiativeHandler{
		service: service,
		logger:  logger.With().Str("component", "initiative_handler").Logger(),
	}
}

// Register wires the public initiative routes.
func (h *InitiativeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *InitiativeHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.ListPublished(c.Context(), listRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list initiatives")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list initiatives")
	}

	return utils.SendList(c, "initiatives retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *InitiativeHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid initiative id")
	}

	initiative, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInitiativeNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load initiative")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load initiative")
	}

	if !initiative.IsPublished {
		return utils.SendError(c, fiber.StatusNotFound, service.ErrInitiativeNotFound.Error())
	}

	return utils.SendSuccess(c, "initiative retrieved", initiative)
}

// AdminInitiativeHandler manages initiatives.
type AdminInitiativeHandler struct {
	service service.InitiativeService
	logger  zerolog.Logger
}

// NewAdminInitiativeHandler constructs an admin initiative handler.
func NewAdminInitiativeHandler(service service.InitiativeService, logger zerolog.Logger) *AdminInitiativeHandler {
	return &AdminInitiativeHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_initiative_handler").Logger(),
	}
}

// Register wires the admin initiative routes.
func (h *AdminInitiativeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.setPublished)
}

func (h *AdminInitiativeHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.List(c.Context(), listRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list initiatives")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list initiatives")
	}

	return utils.SendList(c, "initiatives retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *AdminInitiativeHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid initiative id")
	}

	initiative, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load initiative")
	}

	return utils.SendSuccess(c, "initiative retrieved", initiative)
}

func (h *AdminInitiativeHandler) create(c *fiber.Ctx) error {
	var payload dto.InitiativeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	initiative, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create initiative")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "initiative created", initiative)
}

func (h *AdminInitiativeHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid initiative id")
	}

	var payload dto.InitiativeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	initiative, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update initiative")
	}

	return utils.SendSuccess(c, "initiative updated", initiative)
}

func (h *AdminInitiativeHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid initiative id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete initiative")
	}

	return utils.SendSuccess(c, "initiative deleted", nil)
}

func (h *AdminInitiativeHandler) setPublished(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid initiative id")
	}

	var payload dto.PublishRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsPublished == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	initiative, err := h.service.SetPublished(c.Context(), id, *payload.IsPublished, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to change publication state")
	}

	return utils.SendSuccess(c, "publication state updated", initiative)
}

func (h *AdminInitiativeHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInitiativeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
