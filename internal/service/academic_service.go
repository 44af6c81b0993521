package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
)

var (
	// ErrUniversityNotFound indicates the university does not exist.
	ErrUniversityNotFound = errors.New("university not found")
	// ErrDegreeNotFound indicates the degree does not exist.
	ErrDegreeNotFound = errors.New("degree not found")
	// ErrQuestionPaperNotFound indicates the question paper does not exist.
	ErrQuestionPaperNotFound = errors.New("question paper not found")
	// ErrNoteNotFound indicates the note does not exist.
	ErrNoteNotFound = errors.New("note not found")
)

// AcademicTaxonomyService manages universities and degrees.
type AcademicTaxonomyService interface {
	ListUniversities(ctx context.Context, search string) ([]dto.UniversityResponse, error)
	CreateUniversity(ctx context.Context, payload dto.UniversityRequest, actor ActivityActor) (dto.UniversityResponse, error)
	UpdateUniversity(ctx context.Context, id uint, payload dto.UniversityRequest, actor ActivityActor) (dto.UniversityResponse, error)
	DeleteUniversity(ctx context.Context, id uint, actor ActivityActor) error

	ListDegrees(ctx context.Context, universityID uint, search string) ([]dto.DegreeResponse, error)
	CreateDegree(ctx context.Context, payload dto.DegreeRequest, actor ActivityActor) (dto.DegreeResponse, error)
	UpdateDegree(ctx context.Context, id uint, payload dto.DegreeRequest, actor ActivityActor) (dto.DegreeResponse, error)
	DeleteDegree(ctx context.Context, id uint, actor ActivityActor) error
}

type academicTaxonomyService struct {
	repo      repository.AcademicTaxonomyRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewAcademicTaxonomyService constructs the academic taxonomy service.
func NewAcademicTaxonomyService(repo repository.AcademicTaxonomyRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AcademicTaxonomyService {
	return &academicTaxonomyService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "academic_taxonomy_service").Logger(),
	}
}

func (s *academicTaxonomyService) ListUniversities(ctx context.Context, search string) ([]dto.UniversityResponse, error) {
	universities, err := s.repo.ListUniversities(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	responses := make([]dto.UniversityResponse, 0, len(universities))
	for _, university := range universities {
		responses = append(responses, dto.UniversityResponse{
			ID:        university.ID,
			Name:      university.Name,
			CreatedAt: university.CreatedAt,
		})
	}
	return responses, nil
}

func (s *academicTaxonomyService) CreateUniversity(ctx context.Context, payload dto.UniversityRequest, actor ActivityActor) (dto.UniversityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UniversityResponse{}, err
	}

	model := models.University{Name: strings.TrimSpace(payload.Name)}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.CreateUniversity(ctx, &model); err != nil {
		return dto.UniversityResponse{}, err
	}

	s.record(ctx, actor, "university.created", "university", model.ID, model.Name)

	return dto.UniversityResponse{ID: model.ID, Name: model.Name, CreatedAt: model.CreatedAt}, nil
}

func (s *academicTaxonomyService) UpdateUniversity(ctx context.Context, id uint, payload dto.UniversityRequest, actor ActivityActor) (dto.UniversityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UniversityResponse{}, err
	}

	university, err := s.repo.UpdateUniversity(ctx, id, map[string]interface{}{
		"name": strings.TrimSpace(payload.Name),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UniversityResponse{}, ErrUniversityNotFound
		}
		return dto.UniversityResponse{}, err
	}

	s.record(ctx, actor, "university.updated", "university", id, university.Name)

	return dto.UniversityResponse{ID: university.ID, Name: university.Name, CreatedAt: university.CreatedAt}, nil
}

func (s *academicTaxonomyService) DeleteUniversity(ctx context.Context, id uint, actor ActivityActor) error {
	university, err := s.repo.GetUniversity(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUniversityNotFound
		}
		return err
	}

	if err := s.repo.DeleteUniversity(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUniversityNotFound
		}
		return err
	}

	s.record(ctx, actor, "university.deleted", "university", id, university.Name)

	return nil
}

func (s *academicTaxonomyService) ListDegrees(ctx context.Context, universityID uint, search string) ([]dto.DegreeResponse, error) {
	degrees, err := s.repo.ListDegrees(ctx, universityID, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	responses := make([]dto.DegreeResponse, 0, len(degrees))
	for _, degree := range degrees {
		responses = append(responses, dto.NewDegreeResponse(degree))
	}
	return responses, nil
}

func (s *academicTaxonomyService) CreateDegree(ctx context.Context, payload dto.DegreeRequest, actor ActivityActor) (dto.DegreeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DegreeResponse{}, err
	}

	if _, err := s.repo.GetUniversity(ctx, payload.UniversityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DegreeResponse{}, ErrUniversityNotFound
		}
		return dto.DegreeResponse{}, err
	}

	model := models.Degree{
		Name:         strings.TrimSpace(payload.Name),
		UniversityID: payload.UniversityID,
	}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.CreateDegree(ctx, &model); err != nil {
		return dto.DegreeResponse{}, err
	}

	s.record(ctx, actor, "degree.created", "degree", model.ID, model.Name)

	created, err := s.repo.GetDegree(ctx, model.ID)
	if err != nil {
		return dto.NewDegreeResponse(model), nil
	}
	return dto.NewDegreeResponse(created), nil
}

func (s *academicTaxonomyService) UpdateDegree(ctx context.Context, id uint, payload dto.DegreeRequest, actor ActivityActor) (dto.DegreeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DegreeResponse{}, err
	}

	degree, err := s.repo.UpdateDegree(ctx, id, map[string]interface{}{
		"name":          strings.TrimSpace(payload.Name),
		"university_id": payload.UniversityID,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DegreeResponse{}, ErrDegreeNotFound
		}
		return dto.DegreeResponse{}, err
	}

	s.record(ctx, actor, "degree.updated", "degree", id, degree.Name)

	return dto.NewDegreeResponse(degree), nil
}

func (s *academicTaxonomyService) DeleteDegree(ctx context.Context, id uint, actor ActivityActor) error {
	degree, err := s.repo.GetDegree(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDegreeNotFound
		}
		return err
	}

	if err := s.repo.DeleteDegree(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDegreeNotFound
		}
		return err
	}

	s.record(ctx, actor, "degree.deleted", "degree", id, degree.Name)

	return nil
}

func (s *academicTaxonomyService) record(ctx context.Context, actor ActivityActor, action, entityType string, entityID uint, name string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: entityType,
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if name != "" {
		entry.Metadata = map[string]interface{}{"name": name}
	}
	_, _ = s.activity.Record(ctx, entry)
}

// QuestionPaperService handles question paper archive flows.
type QuestionPaperService interface {
	List(ctx context.Context, req dto.AcademicFilter) ([]dto.QuestionPaperResponse, dto.PaginationMeta, error)
	ListPublished(ctx context.Context, req dto.AcademicFilter) ([]dto.QuestionPaperResponse, dto.PaginationMeta, error)
	Get(ctx context.Context, id uint) (dto.QuestionPaperResponse, error)
	Create(ctx context.Context, payload dto.QuestionPaperCreateRequest, actor ActivityActor) (dto.QuestionPaperResponse, error)
	Update(ctx context.Context, id uint, payload dto.QuestionPaperUpdateRequest, actor ActivityActor) (dto.QuestionPaperResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.QuestionPaperResponse, error)
}

type questionPaperService struct {
	repo      repository.QuestionPaperRepository
	taxonomy  repository.AcademicTaxonomyRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewQuestionPaperService constructs the question paper service.
func NewQuestionPaperService(repo repository.QuestionPaperRepository, taxonomy repository.AcademicTaxonomyRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) QuestionPaperService {
	return &questionPaperService{
		repo:      repo,
		taxonomy:  taxonomy,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "question_paper_service").Logger(),
	}
}

// checkDegreeRef and checkUniversityRef guard records that reference the
// academic taxonomy. Persisting against a missing degree or university would
// leave a dangling row, so writes verify the reference first.
func checkDegreeRef(ctx context.Context, taxonomy repository.AcademicTaxonomyRepository, id uint) error {
	if _, err := taxonomy.GetDegree(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDegreeNotFound
		}
		return err
	}
	return nil
}

func checkUniversityRef(ctx context.Context, taxonomy repository.AcademicTaxonomyRepository, id uint) error {
	if _, err := taxonomy.GetUniversity(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUniversityNotFound
		}
		return err
	}
	return nil
}

func checkAcademicRefs(ctx context.Context, taxonomy repository.AcademicTaxonomyRepository, degreeID, universityID uint) error {
	if err := checkDegreeRef(ctx, taxonomy, degreeID); err != nil {
		return err
	}
	return checkUniversityRef(ctx, taxonomy, universityID)
}

func academicRepoFilter(req dto.AcademicFilter, publishedOnly bool) repository.AcademicFilter {
	return repository.AcademicFilter{
		Page:          normalizePage(req.Page),
		PageSize:      clampPageSize(req.PageSize),
		Search:        strings.TrimSpace(req.Search),
		DegreeID:      req.DegreeID,
		UniversityID:  req.UniversityID,
		Semester:      req.Semester,
		Year:          req.Year,
		PublishedOnly: publishedOnly,
	}
}

func (s *questionPaperService) List(ctx context.Context, req dto.AcademicFilter) ([]dto.QuestionPaperResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, false)
}

func (s *questionPaperService) ListPublished(ctx context.Context, req dto.AcademicFilter) ([]dto.QuestionPaperResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, true)
}

func (s *questionPaperService) list(ctx context.Context, req dto.AcademicFilter, publishedOnly bool) ([]dto.QuestionPaperResponse, dto.PaginationMeta, error) {
	filter := academicRepoFilter(req, publishedOnly)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.QuestionPaperResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewQuestionPaperResponse(item))
	}

	return responses, dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *questionPaperService) Get(ctx context.Context, id uint) (dto.QuestionPaperResponse, error) {
	paper, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuestionPaperResponse{}, ErrQuestionPaperNotFound
		}
		return dto.QuestionPaperResponse{}, err
	}
	return dto.NewQuestionPaperResponse(paper), nil
}

func (s *questionPaperService) Create(ctx context.Context, payload dto.QuestionPaperCreateRequest, actor ActivityActor) (dto.QuestionPaperResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuestionPaperResponse{}, err
	}

	if err := checkAcademicRefs(ctx, s.taxonomy, payload.DegreeID, payload.UniversityID); err != nil {
		return dto.QuestionPaperResponse{}, err
	}

	model := models.QuestionPaper{
		DegreeID:     payload.DegreeID,
		UniversityID: payload.UniversityID,
		Semester:     payload.Semester,
		Subject:      strings.TrimSpace(payload.Subject),
		Year:         payload.Year,
		FileURL:      strings.TrimSpace(payload.FileURL),
		IsPublished:  payload.IsPublished,
	}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.QuestionPaperResponse{}, err
	}

	s.record(ctx, actor, "question_paper.created", model.ID, model.Subject)

	created, err := s.repo.GetByID(ctx, model.ID)
	if err != nil {
		return dto.NewQuestionPaperResponse(model), nil
	}
	return dto.NewQuestionPaperResponse(created), nil
}

func (s *questionPaperService) Update(ctx context.Context, id uint, payload dto.QuestionPaperUpdateRequest, actor ActivityActor) (dto.QuestionPaperResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuestionPaperResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.DegreeID != nil {
		if err := checkDegreeRef(ctx, s.taxonomy, *payload.DegreeID); err != nil {
			return dto.QuestionPaperResponse{}, err
		}
		updates["degree_id"] = *payload.DegreeID
	}
	if payload.UniversityID != nil {
		if err := checkUniversityRef(ctx, s.taxonomy, *payload.UniversityID); err != nil {
			return dto.QuestionPaperResponse{}, err
		}
		updates["university_id"] = *payload.UniversityID
	}
	if payload.Semester != nil {
		updates["semester"] = *payload.Semester
	}
	if payload.Subject != nil {
		updates["subject"] = strings.TrimSpace(*payload.Subject)
	}
	if payload.Year != nil {
		updates["year"] = *payload.Year
	}
	if payload.FileURL != nil {
		updates["file_url"] = strings.TrimSpace(*payload.FileURL)
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	paper, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuestionPaperResponse{}, ErrQuestionPaperNotFound
		}
		return dto.QuestionPaperResponse{}, err
	}

	s.record(ctx, actor, "question_paper.updated", id, paper.Subject)

	return dto.NewQuestionPaperResponse(paper), nil
}

func (s *questionPaperService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	paper, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionPaperNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionPaperNotFound
		}
		return err
	}

	s.record(ctx, actor, "question_paper.deleted", id, paper.Subject)

	return nil
}

func (s *questionPaperService) SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.QuestionPaperResponse, error) {
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuestionPaperResponse{}, ErrQuestionPaperNotFound
		}
		return dto.QuestionPaperResponse{}, err
	}

	paper, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.QuestionPaperResponse{}, err
	}

	action := "question_paper.published"
	if !published {
		action = "question_paper.unpublished"
	}
	s.record(ctx, actor, action, id, paper.Subject)

	return dto.NewQuestionPaperResponse(paper), nil
}

func (s *questionPaperService) record(ctx context.Context, actor ActivityActor, action string, entityID uint, subject string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "question_paper",
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if subject != "" {
		entry.Metadata = map[string]interface{}{"subject": subject}
	}
	_, _ = s.activity.Record(ctx, entry)
}

// NoteService handles study note flows. Notes created through the public
// upload endpoint arrive unpublished, carry no creator and are not recorded
// in the activity ledger.
type NoteService interface {
	List(ctx context.Context, req dto.AcademicFilter) ([]dto.NoteResponse, dto.PaginationMeta, error)
	ListPublished(ctx context.Context, req dto.AcademicFilter) ([]dto.NoteResponse, dto.PaginationMeta, error)
	Get(ctx context.Context, id uint) (dto.NoteResponse, error)
	Create(ctx context.Context, payload dto.NoteCreateRequest, actor ActivityActor) (dto.NoteResponse, error)
	CreatePublic(ctx context.Context, payload dto.NoteCreateRequest) (dto.NoteResponse, error)
	Update(ctx context.Context, id uint, payload dto.NoteUpdateRequest, actor ActivityActor) (dto.NoteResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.NoteResponse, error)
}

type noteService struct {
	repo      repository.NoteRepository
	taxonomy  repository.AcademicTaxonomyRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewNoteService constructs the note service.
func NewNoteService(repo repository.NoteRepository, taxonomy repository.AcademicTaxonomyRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) NoteService {
	return &noteService{
		repo:      repo,
		taxonomy:  taxonomy,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "note_service").Logger(),
	}
}

func (s *noteService) List(ctx context.Context, req dto.AcademicFilter) ([]dto.NoteResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, false)
}

func (s *noteService) ListPublished(ctx context.Context, req dto.AcademicFilter) ([]dto.NoteResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, true)
}

func (s *noteService) list(ctx context.Context, req dto.AcademicFilter, publishedOnly bool) ([]dto.NoteResponse, dto.PaginationMeta, error) {
	filter := academicRepoFilter(req, publishedOnly)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.NoteResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewNoteResponse(item))
	}

	return responses, dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *noteService) Get(ctx context.Context, id uint) (dto.NoteResponse, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NoteResponse{}, ErrNoteNotFound
		}
		return dto.NoteResponse{}, err
	}
	return dto.NewNoteResponse(note), nil
}

func (s *noteService) Create(ctx context.Context, payload dto.NoteCreateRequest, actor ActivityActor) (dto.NoteResponse, error) {
	response, err := s.create(ctx, payload, &actor)
	if err != nil {
		return dto.NoteResponse{}, err
	}

	s.record(ctx, actor, "note.created", response.ID, response.Title)

	return response, nil
}

// CreatePublic accepts a community submission. The note always starts
// unpublished regardless of the submitted flag.
func (s *noteService) CreatePublic(ctx context.Context, payload dto.NoteCreateRequest) (dto.NoteResponse, error) {
	payload.IsPublished = false
	return s.create(ctx, payload, nil)
}

func (s *noteService) create(ctx context.Context, payload dto.NoteCreateRequest, actor *ActivityActor) (dto.NoteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NoteResponse{}, err
	}

	if err := checkAcademicRefs(ctx, s.taxonomy, payload.DegreeID, payload.UniversityID); err != nil {
		return dto.NoteResponse{}, err
	}

	model := models.Note{
		Title:        strings.TrimSpace(payload.Title),
		Subject:      strings.TrimSpace(payload.Subject),
		DegreeID:     payload.DegreeID,
		UniversityID: payload.UniversityID,
		Semester:     payload.Semester,
		Year:         payload.Year,
		FileURL:      strings.TrimSpace(payload.FileURL),
		IsPublished:  payload.IsPublished,
	}
	if actor != nil && actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.NoteResponse{}, err
	}

	created, err := s.repo.GetByID(ctx, model.ID)
	if err != nil {
		return dto.NewNoteResponse(model), nil
	}
	return dto.NewNoteResponse(created), nil
}

func (s *noteService) Update(ctx context.Context, id uint, payload dto.NoteUpdateRequest, actor ActivityActor) (dto.NoteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NoteResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.Title != nil {
		updates["title"] = strings.TrimSpace(*payload.Title)
	}
	if payload.Subject != nil {
		updates["subject"] = strings.TrimSpace(*payload.Subject)
	}
	if payload.DegreeID != nil {
		if err := checkDegreeRef(ctx, s.taxonomy, *payload.DegreeID); err != nil {
			return dto.NoteResponse{}, err
		}
		updates["degree_id"] = *payload.DegreeID
	}
	if payload.UniversityID != nil {
		if err := checkUniversityRef(ctx, s.taxonomy, *payload.UniversityID); err != nil {
			return dto.NoteResponse{}, err
		}
		updates["university_id"] = *payload.UniversityID
	}
	if payload.Semester != nil {
		updates["semester"] = *payload.Semester
	}
	if payload.Year != nil {
		updates["year"] = *payload.Year
	}
	if payload.FileURL != nil {
		updates["file_url"] = strings.TrimSpace(*payload.FileURL)
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	note, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NoteResponse{}, ErrNoteNotFound
		}
		return dto.NoteResponse{}, err
	}

	s.record(ctx, actor, "note.updated", id, note.Title)

	return dto.NewNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	s.record(ctx, actor, "note.deleted", id, note.Title)

	return nil
}

func (s *noteService) SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.NoteResponse, error) {
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NoteResponse{}, ErrNoteNotFound
		}
		return dto.NoteResponse{}, err
	}

	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.NoteResponse{}, err
	}

	action := "note.published"
	if !published {
		action = "note.unpublished"
	}
	s.record(ctx, actor, action, id, note.Title)

	return dto.NewNoteResponse(note), nil
}

func (s *noteService) record(ctx context.Context, actor ActivityActor, action string, entityID uint, title string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "note",
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if title != "" {
		entry.Metadata = map[string]interface{}{"title": title}
	}
	_, _ = s.activity.Record(ctx, entry)
}
