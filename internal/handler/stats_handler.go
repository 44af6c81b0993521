package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/keralatechreach/portal-api/internal/service"
	"github.com/keralatechreach/portal-api/internal/utils"
)

// AdminStatsHandler exposes the dashboard summary to staff.
type AdminStatsHandler struct {
	service service.AdminStatsService
	logger  zerolog.Logger
}

// NewAdminStatsHandler constructs the handler.
func NewAdminStatsHandler(service service.AdminStatsService, logger zerolog.Logger) *AdminStatsHandler {
	return &AdminStatsHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_stats_handler").Logger(),
	}
}

// Register attaches the stats route to the router group.
func (h *AdminStatsHandler) Register(router fiber.Router) {
	router.Get("", h.get)
}

func (h *AdminStatsHandler) get(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to aggregate dashboard stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load stats")
	}

	return utils.SendSuccess(c, "dashboard stats", summary)
}
