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

// ContactHandler accepts public contact form submissions.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler constructs a public contact handler.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires the public contact routes.
func (h *ContactHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	var payload dto.ContactCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	message, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to submit contact message")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit message")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message received", message)
}

// AdminContactHandler exposes the dashboard inbox.
type AdminContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewAdminContactHandler constructs an admin contact handler.
func NewAdminContactHandler(service service.ContactService, logger zerolog.Logger) *AdminContactHandler {
	return &AdminContactHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_contact_handler").Logger(),
	}
}

// Register wires the admin contact routes.
func (h *AdminContactHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id/read", h.markRead)
	router.Delete("/:id", h.delete)
}

func (h *AdminContactHandler) list(c *fiber.Ctx) error {
	unreadOnly := strings.EqualFold(c.Query("unread"), "true")

	items, pagination, err := h.service.List(c.Context(), listRequest(c), unreadOnly)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list contact messages")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list contact messages")
	}

	return utils.SendList(c, "contact messages retrieved", items, fiber.Map{
		"pagination": pagination,
		"filters":    fiber.Map{"unread": unreadOnly},
	})
}

func (h *AdminContactHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid message id")
	}

	message, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load contact message")
	}

	return utils.SendSuccess(c, "contact message retrieved", message)
}

func (h *AdminContactHandler) markRead(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid message id")
	}

	var payload dto.ContactMarkReadRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsRead == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	message, err := h.service.MarkRead(c.Context(), id, *payload.IsRead, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update contact message")
	}

	return utils.SendSuccess(c, "contact message updated", message)
}

func (h *AdminContactHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid message id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete contact message")
	}

	return utils.SendSuccess(c, "contact message deleted", nil)
}

func (h *AdminContactHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrContactNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
