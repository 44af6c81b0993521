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

func academicFilter(c *fiber.Ctx) dto.AcademicFilter {
	page, pageSize := pageParams(c)
	degreeID, _ := parseQueryUint(c, "degree_id")
	universityID, _ := parseQueryUint(c, "university_id")
	semester, _ := parseQueryInt(c, "semester")
	year, _ := parseQueryInt(c, "year")

	return dto.AcademicFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       strings.TrimSpace(c.Query("search")),
		DegreeID:     degreeID,
		UniversityID: universityID,
		Semester:     semester,
		Year:         year,
	}
}

// AcademicHandler serves the public academic catalog: universities, degrees,
// question papers and study notes.
type AcademicHandler struct {
	taxonomy service.AcademicTaxonomyService
	papers   service.QuestionPaperService
	notes    service.NoteService
	uploads  service.UploadService
	logger   zerolog.Logger
}

// NewAcademicHandler constructs a public academic handler. The upload service
// may be nil when no file storage backend is configured.
func NewAcademicHandler(taxonomy service.AcademicTaxonomyService, papers service.QuestionPaperService, notes service.NoteService, uploads service.UploadService, logger zerolog.Logger) *AcademicHandler {
	return &AcademicHandler{
		taxonomy: taxonomy,
		papers:   papers,
		notes:    notes,
		uploads:  uploads,
		logger:   logger.With().Str("component", "academic_handler").Logger(),
	}
}

// Register wires the public academic routes.
func (h *AcademicHandler) Register(router fiber.Router) {
	router.Get("/universities", h.listUniversities)
	router.Get("/degrees", h.listDegrees)
	router.Get("/question-papers", h.listQuestionPapers)
	router.Get("/question-papers/:id", h.getQuestionPaper)
	router.Get("/notes", h.listNotes)
	router.Get("/notes/:id", h.getNote)
}

// RegisterUpload wires the public note submission route separately so the
// router can attach a rate limit to it.
func (h *AcademicHandler) RegisterUpload(router fiber.Router) {
	router.Post("/notes/upload", h.uploadNote)
}

func (h *AcademicHandler) listUniversities(c *fiber.Ctx) error {
	universities, err := h.taxonomy.ListUniversities(c.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list universities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list universities")
	}

	return utils.SendSuccess(c, "universities retrieved", universities)
}

func (h *AcademicHandler) listDegrees(c *fiber.Ctx) error {
	universityID, _ := parseQueryUint(c, "university_id")

	degrees, err := h.taxonomy.ListDegrees(c.Context(), universityID, strings.TrimSpace(c.Query("search")))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list degrees")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list degrees")
	}

	return utils.SendSuccess(c, "degrees retrieved", degrees)
}

func (h *AcademicHandler) listQuestionPapers(c *fiber.Ctx) error {
	items, pagination, err := h.papers.ListPublished(c.Context(), academicFilter(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list question papers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list question papers")
	}

	return utils.SendList(c, "question papers retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *AcademicHandler) getQuestionPaper(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid question paper id")
	}

	paper, err := h.papers.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuestionPaperNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load question paper")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load question paper")
	}

	if !paper.IsPublished {
		return utils.SendError(c, fiber.StatusNotFound, service.ErrQuestionPaperNotFound.Error())
	}

	return utils.SendSuccess(c, "question paper retrieved", paper)
}

func (h *AcademicHandler) listNotes(c *fiber.Ctx) error {
	items, pagination, err := h.notes.ListPublished(c.Context(), academicFilter(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list notes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list notes")
	}

	return utils.SendList(c, "notes retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *AcademicHandler) getNote(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid note id")
	}

	note, err := h.notes.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load note")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load note")
	}

	if !note.IsPublished {
		return utils.SendError(c, fiber.StatusNotFound, service.ErrNoteNotFound.Error())
	}

	return utils.SendSuccess(c, "note retrieved", note)
}

// uploadNote accepts visitor note submissions. The note lands unpublished and
// stays invisible until a staff member reviews it.
func (h *AcademicHandler) uploadNote(c *fiber.Ctx) error {
	var payload dto.NoteCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if file, err := c.FormFile("file"); err == nil && file != nil {
		if h.uploads == nil {
			return utils.SendError(c, fiber.StatusServiceUnavailable, "file uploads are not available")
		}
		result, err := h.uploads.Upload(c.Context(), file, nil)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUploadTooLarge):
				return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
			case errors.Is(err, service.ErrUploadTypeNotAllowed), errors.Is(err, service.ErrUploadScanFailed):
				return utils.SendError(c, fiber.StatusBadRequest, err.Error())
			default:
				requestLogger(h.logger, c).Error().Err(err).Msg("note file upload failed")
				return utils.SendError(c, fiber.StatusInternalServerError, "file upload failed")
			}
		}
		payload.FileURL = result.URL
	}

	note, err := h.notes.CreatePublic(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDegreeNotFound), errors.Is(err, service.ErrUniversityNotFound):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to submit note")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit note")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "note submitted for review", note)
}

// AdminAcademicTaxonomyHandler manages universities and degrees.
type AdminAcademicTaxonomyHandler struct {
	service service.AcademicTaxonomyService
	logger  zerolog.Logger
}

// NewAdminAcademicTaxonomyHandler constructs an admin academic taxonomy handler.
func NewAdminAcademicTaxonomyHandler(service service.AcademicTaxonomyService, logger zerolog.Logger) *AdminAcademicTaxonomyHandler {
	return &AdminAcademicTaxonomyHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_academic_taxonomy_handler").Logger(),
	}
}

// Register wires the admin academic taxonomy routes.
func (h *AdminAcademicTaxonomyHandler) Register(router fiber.Router) {
	router.Get("/universities", h.listUniversities)
	router.Post("/universities", h.createUniversity)
	router.Put("/universities/:id", h.updateUniversity)
	router.Delete("/universities/:id", h.deleteUniversity)

	router.Get("/degrees", h.listDegrees)
	router.Post("/degrees", h.createDegree)
	router.Put("/degrees/:id", h.updateDegree)
	router.Delete("/degrees/:id", h.deleteDegree)
}

func (h *AdminAcademicTaxonomyHandler) listUniversities(c *fiber.Ctx) error {
	universities, err := h.service.ListUniversities(c.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list universities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list universities")
	}

	return utils.SendSuccess(c, "universities retrieved", universities)
}

func (h *AdminAcademicTaxonomyHandler) createUniversity(c *fiber.Ctx) error {
	var payload dto.UniversityRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	university, err := h.service.CreateUniversity(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create university")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "university created", university)
}

func (h *AdminAcademicTaxonomyHandler) updateUniversity(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid university id")
	}

	var payload dto.UniversityRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	university, err := h.service.UpdateUniversity(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update university")
	}

	return utils.SendSuccess(c, "university updated", university)
}

func (h *AdminAcademicTaxonomyHandler) deleteUniversity(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid university id")
	}

	if err := h.service.DeleteUniversity(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete university")
	}

	return utils.SendSuccess(c, "university deleted", nil)
}

func (h *AdminAcademicTaxonomyHandler) listDegrees(c *fiber.Ctx) error {
	universityID, _ := parseQueryUint(c, "university_id")

	degrees, err := h.service.ListDegrees(c.Context(), universityID, strings.TrimSpace(c.Query("search")))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list degrees")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list degrees")
	}

	return utils.SendSuccess(c, "degrees retrieved", degrees)
}

func (h *AdminAcademicTaxonomyHandler) createDegree(c *fiber.Ctx) error {
	var payload dto.DegreeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	degree, err := h.service.CreateDegree(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create degree")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "degree created", degree)
}

func (h *AdminAcademicTaxonomyHandler) updateDegree(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid degree id")
	}

	var payload dto.DegreeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	degree, err := h.service.UpdateDegree(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update degree")
	}

	return utils.SendSuccess(c, "degree updated", degree)
}

func (h *AdminAcademicTaxonomyHandler) deleteDegree(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid degree id")
	}

	if err := h.service.DeleteDegree(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete degree")
	}

	return utils.SendSuccess(c, "degree deleted", nil)
}

func (h *AdminAcademicTaxonomyHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUniversityNotFound), errors.Is(err, service.ErrDegreeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

// AdminQuestionPaperHandler manages question papers.
type AdminQuestionPaperHandler struct {
	service service.QuestionPaperService
	logger  zerolog.Logger
}

// NewAdminQuestionPaperHandler constructs an admin question paper handler.
func NewAdminQuestionPaperHandler(service service.QuestionPaperService, logger zerolog.Logger) *AdminQuestionPaperHandler {
	return &AdminQuestionPaperHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_question_paper_handler").Logger(),
	}
}

// Register wires the admin question paper routes.
func (h *AdminQuestionPaperHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.setPublished)
}

func (h *AdminQuestionPaperHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.List(c.Context(), academicFilter(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list question papers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list question papers")
	}

	return utils.SendList(c, "question papers retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *AdminQuestionPaperHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid question paper id")
	}

	paper, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load question paper")
	}

	return utils.SendSuccess(c, "question paper retrieved", paper)
}

func (h *AdminQuestionPaperHandler) create(c *fiber.Ctx) error {
	var payload dto.QuestionPaperCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	paper, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create question paper")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "question paper created", paper)
}

func (h *AdminQuestionPaperHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid question paper id")
	}

	var payload dto.QuestionPaperUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	paper, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update question paper")
	}

	return utils.SendSuccess(c, "question paper updated", paper)
}

func (h *AdminQuestionPaperHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid question paper id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete question paper")
	}

	return utils.SendSuccess(c, "question paper deleted", nil)
}

func (h *AdminQuestionPaperHandler) setPublished(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid question paper id")
	}

	var payload dto.PublishRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsPublished == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	paper, err := h.service.SetPublished(c.Context(), id, *payload.IsPublished, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to change publication state")
	}

	return utils.SendSuccess(c, "publication state updated", paper)
}

func (h *AdminQuestionPaperHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrQuestionPaperNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDegreeNotFound), errors.Is(err, service.ErrUniversityNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

// AdminNoteHandler manages study notes, including the review queue of
// unpublished public submissions.
type AdminNoteHandler struct {
	service service.NoteService
	logger  zerolog.Logger
}

// NewAdminNoteHandler constructs an admin note handler.
func NewAdminNoteHandler(service service.NoteService, logger zerolog.Logger) *AdminNoteHandler {
	return &AdminNoteHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_note_handler").Logger(),
	}
}

// Register wires the admin note routes.
func (h *AdminNoteHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.setPublished)
}

func (h *AdminNoteHandler) list(c *fiber.Ctx) error {
	items, pagination, err := h.service.List(c.Context(), academicFilter(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list notes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list notes")
	}

	return utils.SendList(c, "notes retrieved", items, fiber.Map{"pagination": pagination})
}

func (h *AdminNoteHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid note id")
	}

	note, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "failed to load note")
	}

	return utils.SendSuccess(c, "note retrieved", note)
}

func (h *AdminNoteHandler) create(c *fiber.Ctx) error {
	var payload dto.NoteCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	note, err := h.service.Create(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to create note")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "note created", note)
}

func (h *AdminNoteHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid note id")
	}

	var payload dto.NoteUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	note, err := h.service.Update(c.Context(), id, payload, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to update note")
	}

	return utils.SendSuccess(c, "note updated", note)
}

func (h *AdminNoteHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid note id")
	}

	if err := h.service.Delete(c.Context(), id, activityActorFromContext(c)); err != nil {
		return h.mapError(c, err, "failed to delete note")
	}

	return utils.SendSuccess(c, "note deleted", nil)
}

func (h *AdminNoteHandler) setPublished(c *fiber.Ctx) error {
	id, err := parseParamID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid note id")
	}

	var payload dto.PublishRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsPublished == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	note, err := h.service.SetPublished(c.Context(), id, *payload.IsPublished, activityActorFromContext(c))
	if err != nil {
		return h.mapError(c, err, "failed to change publication state")
	}

	return utils.SendSuccess(c, "publication state updated", note)
}

func (h *AdminNoteHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDegreeNotFound), errors.Is(err, service.ErrUniversityNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
