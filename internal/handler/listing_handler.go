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

func listRequest(c *fiber.Ctx) dto.ListRequest {
	page, pageSize := pageParams(c)
	return dto.ListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
}

func examListRequest(c *fiber.Ctx) dto.ExamListRequest {
	page, pageSize := pageParams(c)
	degreeID, _ := parseQueryUint(c, "degree_id")
	universityID, _ := parseQueryUint(c, "university_id")
	year, _ := parseQueryInt(c, "admission_year")

	return dto.ExamListRequest{
		Page:          page,
		PageSize:      pageSize,
		Search:        strings.TrimSpace(c.Query("search")),
		DegreeID:      degreeID,
		UniversityID:  universityID,
		Semester:      strings.TrimSpace(c.Query("semester")),
		AdmissionYear: year,
	}
}

// JobHandler serves the public job board.
type JobHandler struct {
	service service.JobService
	logger  zerolog.Logger
}

// NewJobHandler constructs a public job handler.
func NewJobHandler(service service.JobService, logger zerolog.Logger) *JobHandler {
	return &JobHandler{
		service: service,
		logger:  logger.With().Str("component", "job_handler").Logger(),
	}
}

// Register wires the public job routes.
func (h *JobHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *JobHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.ListPublished(c.Context(), listRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list jobs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list jobs")
	}

	return utils.SendList(c, "jobs retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *JobHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid job id")
	}

	job, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load job")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load job")
	}

	if !job.IsPublished {
		return utils.SendError(c, fiber.StatusNotFound, service.ErrJobNotFound.Error())
	}

	return utils.SendSuccess(c, "job retrieved", job)
}

// AdminJobHandler manages job postings from the dashboard.
type AdminJobHandler struct {
	service service.JobService
	logger  zerolog.Logger
}

// NewAdminJobHandler constructs an admin job handler.
func NewAdminJobHandler(service service.JobService, logger zerolog.Logger) *AdminJobHandler {
	return &AdminJobHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_job_handler").Logger(),
	}
}

// Register wires the admin job routes.
func (h *AdminJobHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.setPublished)
}

func (h *AdminJobHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.List(c.Context(), listRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list jobs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list jobs")
	}

	return utils.SendList(c, "jobs retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *AdminJobHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid job id")
	}

	job, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load job")
	}

	return utils.SendSuccess(c, "job retrieved", job)
}

func (h *AdminJobHandler) create(c *fiber.Ctx) error {
	var payload dto.JobCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	job, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create job")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "job created", job)
}

func (h *AdminJobHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid job id")
	}

	var payload dto.JobUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	job, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update job")
	}

	return utils.SendSuccess(c, "job updated", job)
}

func (h *AdminJobHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid job id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete job")
	}

	return utils.SendSuccess(c, "job deleted", nil)
}

func (h *AdminJobHandler) setPublished(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid job id")
	}

	var payload dto.PublishRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsPublished == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	job, err := h.service.SetPublished(c.Context(), id, *payload.IsPublished, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to change publication state")
	}

	return utils.SendSuccess(c, "publication state updated", job)
}

func (h *AdminJobHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err), errors.Is(err, service.ErrInvalidDate):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrJobNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

// ExamHandler serves the public exam timetable.
type ExamHandler struct {
	service service.ExamService
	logger  zerolog.Logger
}

// NewExamHandler constructs a public exam handler.
func NewExamHandler(service service.ExamService, logger zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		service: service,
		logger:  logger.With().Str("component", "exam_handler").Logger(),
	}
}

// Register wires the public exam routes.
func (h *ExamHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *ExamHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.ListPublished(c.Context(), examListRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list exams")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list exams")
	}

	return utils.SendList(c, "exams retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *ExamHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	exam, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load exam")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load exam")
	}

	if !exam.IsPublished {
		return utils.SendError(c, fiber.StatusNotFound, service.ErrExamNotFound.Error())
	}

	return utils.SendSuccess(c, "exam retrieved", exam)
}

// AdminExamHandler manages exams from the dashboard.
type AdminExamHandler struct {
	service service.ExamService
	logger  zerolog.Logger
}

// NewAdminExamHandler constructs an admin exam handler.
func NewAdminExamHandler(service service.ExamService, logger zerolog.Logger) *AdminExamHandler {
	return &AdminExamHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_exam_handler").Logger(),
	}
}

// Register wires the admin exam routes.
func (h *AdminExamHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.setPublished)
}

func (h *AdminExamHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.List(c.Context(), examListRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list exams")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list exams")
	}

	return utils.SendList(c, "exams retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *AdminExamHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	exam, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load exam")
	}

	return utils.SendSuccess(c, "exam retrieved", exam)
}

func (h *AdminExamHandler) create(c *fiber.Ctx) error {
	var payload dto.ExamCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	exam, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create exam")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam created", exam)
}

func (h *AdminExamHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	var payload dto.ExamUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	exam, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update exam")
	}

	return utils.SendSuccess(c, "exam updated", exam)
}

func (h *AdminExamHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete exam")
	}

	return utils.SendSuccess(c, "exam deleted", nil)
}

func (h *AdminExamHandler) setPublished(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	var payload dto.PublishRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsPublished == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	exam, err := h.service.SetPublished(c.Context(), id, *payload.IsPublished, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to change publication state")
	}

	return utils.SendSuccess(c, "publication state updated", exam)
}

func (h *AdminExamHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err), errors.Is(err, service.ErrInvalidDate):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDegreeNotFound), errors.Is(err, service.ErrUniversityNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

// EntranceNotificationHandler serves public entrance notifications.
type EntranceNotificationHandler struct {
	service service.EntranceNotificationService
	logger  zerolog.Logger
}

// NewEntranceNotificationHandler constructs a public entrance notification handler.
func NewEntranceNotificationHandler(service service.EntranceNotificationService, logger zerolog.Logger) *EntranceNotificationHandler {
	return &EntranceNotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "entrance_notification_handler").Logger(),
	}
}

// Register wires the public entrance notification routes.
func (h *EntranceNotificationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *EntranceNotificationHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.ListPublished(c.Context(), listRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list entrance notifications")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list entrance notifications")
	}

	return utils.SendList(c, "entrance notifications retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *EntranceNotificationHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	notification, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEntranceNotificationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load entrance notification")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load entrance notification")
	}

	if !notification.IsPublished {
		return utils.SendError(c, fiber.StatusNotFound, service.ErrEntranceNotificationNotFound.Error())
	}

	return utils.SendSuccess(c, "entrance notification retrieved", notification)
}

// AdminEntranceNotificationHandler manages entrance notifications.
type AdminEntranceNotificationHandler struct {
	service service.EntranceNotificationService
	logger  zerolog.Logger
}

// NewAdminEntranceNotificationHandler constructs an admin entrance notification handler.
func NewAdminEntranceNotificationHandler(service service.EntranceNotificationService, logger zerolog.Logger) *AdminEntranceNotificationHandler {
	return &AdminEntranceNotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_entrance_notification_handler").Logger(),
	}
}

// Register wires the admin entrance notification routes.
func (h *AdminEntranceNotificationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.setPublished)
}

func (h *AdminEntranceNotificationHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.List(c.Context(), listRequest(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list entrance notifications")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list entrance notifications")
	}

	return utils.SendList(c, "entrance notifications retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *AdminEntranceNotificationHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	notification, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load entrance notification")
	}

	return utils.SendSuccess(c, "entrance notification retrieved", notification)
}

func (h *AdminEntranceNotificationHandler) create(c *fiber.Ctx) error {
	var payload dto.EntranceNotificationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	notification, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create entrance notification")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "entrance notification created", notification)
}

func (h *AdminEntranceNotificationHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	var payload dto.EntranceNotificationUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	notification, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update entrance notification")
	}

	return utils.SendSuccess(c, "entrance notification updated", notification)
}

func (h *AdminEntranceNotificationHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete entrance notification")
	}

	return utils.SendSuccess(c, "entrance notification deleted", nil)
}

func (h *AdminEntranceNotificationHandler) setPublished(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	var payload dto.PublishRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsPublished == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	notification, err := h.service.SetPublished(c.Context(), id, *payload.IsPublished, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to change publication state")
	}

	return utils.SendSuccess(c, "publication state updated", notification)
}

func (h *AdminEntranceNotificationHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err), errors.Is(err, service.ErrInvalidDate):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEntranceNotificationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
