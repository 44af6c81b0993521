package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/service"
	"github.com/keralatechreach/portal-api/internal/utils"
)

// ActivityHandler exposes the audit ledger to the dashboard.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs an activity handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the admin activity routes.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	actorID, _ := parseQueryUint(c, "actor_id")

	req := dto.ActivityListRequest{
		Page:       page,
		PageSize:   pageSize,
		ActorID:    actorID,
		Action:     strings.TrimSpace(c.Query("action")),
		EntityType: strings.TrimSpace(c.Query("entity_type")),
	}

	result, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity entries")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity entries")
	}

	return utils.SendList(c, "activity entries retrieved", result.Items, fiber.Map{
		"pagination": result.Pagination,
		"filters": fiber.Map{
			"actor_id":    req.ActorID,
			"action":      req.Action,
			"entity_type": req.EntityType,
		},
	})
}
