package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/observability"
	"github.com/keralatechreach/portal-api/internal/repository"
)

var (
	// ErrJobNotFound indicates the job posting does not exist.
	ErrJobNotFound = errors.New("job posting not found")
	// ErrExamNotFound indicates the exam does not exist.
	ErrExamNotFound = errors.New("exam not found")
	// ErrEntranceNotificationNotFound indicates the notification does not exist.
	ErrEntranceNotificationNotFound = errors.New("entrance notification not found")
	// ErrInvalidDate rejects timestamps that are neither a plain date nor RFC3339.
	ErrInvalidDate = errors.New("invalid date format")
)

const jobListCacheTTL = 5 * time.Minute

// parseDeadline accepts plain dates and full RFC3339 timestamps.
func parseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// JobService handles job posting flows.
type JobService interface {
	List(ctx context.Context, req dto.ListRequest) ([]dto.JobResponse, dto.PaginationMeta, error)
	ListPublished(ctx context.Context, req dto.ListRequest) ([]dto.JobResponse, dto.PaginationMeta, error)
	Get(ctx context.Context, id uint) (dto.JobResponse, error)
	Create(ctx context.Context, payload dto.JobCreateRequest, actor ActivityActor) (dto.JobResponse, error)
	Update(ctx context.Context, id uint, payload dto.JobUpdateRequest, actor ActivityActor) (dto.JobResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.JobResponse, error)
}

type jobService struct {
	repo      repository.JobRepository
	cache     *redis.Client
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewJobService constructs the job service.
func NewJobService(repo repository.JobRepository, cache *redis.Client, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) JobService {
	return &jobService{
		repo:      repo,
		cache:     cache,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "job_service").Logger(),
	}
}

func (s *jobService) List(ctx context.Context, req dto.ListRequest) ([]dto.JobResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, false)
}

func (s *jobService) ListPublished(ctx context.Context, req dto.ListRequest) ([]dto.JobResponse, dto.PaginationMeta, error) {
	page := normalizePage(req.Page)
	pageSize := clampPageSize(req.PageSize)
	search := strings.TrimSpace(req.Search)

	cacheKey := ""
	if s.cache != nil && search == "" {
		cacheKey = fmt.Sprintf("jobs:published:v1:%d:%d", page, pageSize)
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var envelope jobListCacheEnvelope
			if err := json.Unmarshal([]byte(cached), &envelope); err == nil {
				observability.PublicContentRequests().WithLabelValues("jobs", "hit").Inc()
				return envelope.Items, envelope.Pagination, nil
			}
		}
	}

	items, pagination, err := s.list(ctx, req, true)
	if err != nil {
		observability.PublicContentRequests().WithLabelValues("jobs", "error").Inc()
		return nil, dto.PaginationMeta{}, err
	}

	if cacheKey != "" {
		if payload, err := json.Marshal(jobListCacheEnvelope{Items: items, Pagination: pagination}); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, jobListCacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache published jobs")
			}
		}
	}

	observability.PublicContentRequests().WithLabelValues("jobs", "miss").Inc()

	return items, pagination, nil
}

type jobListCacheEnvelope struct {
	Items      []dto.JobResponse  `json:"items"`
	Pagination dto.PaginationMeta `json:"pagination"`
}

func (s *jobService) list(ctx context.Context, req dto.ListRequest, publishedOnly bool) ([]dto.JobResponse, dto.PaginationMeta, error) {
	filter := repository.ListingFilter{
		Page:          normalizePage(req.Page),
		PageSize:      clampPageSize(req.PageSize),
		Search:        strings.TrimSpace(req.Search),
		PublishedOnly: publishedOnly,
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.JobResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewJobResponse(item))
	}

	return responses, dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *jobService) Get(ctx context.Context, id uint) (dto.JobResponse, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.JobResponse{}, ErrJobNotFound
		}
		return dto.JobResponse{}, err
	}
	return dto.NewJobResponse(job), nil
}

func (s *jobService) Create(ctx context.Context, payload dto.JobCreateRequest, actor ActivityActor) (dto.JobResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.JobResponse{}, err
	}

	lastDate, err := parseDeadline(payload.LastDate)
	if err != nil {
		return dto.JobResponse{}, err
	}

	model := models.Job{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		LastDate:    lastDate,
		IsPublished: payload.IsPublished,
	}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.JobResponse{}, err
	}

	s.invalidatePublicCache(ctx)
	s.record(ctx, actor, "job.created", model.ID, model.Title)

	return dto.NewJobResponse(model), nil
}

func (s *jobService) Update(ctx context.Context, id uint, payload dto.JobUpdateRequest, actor ActivityActor) (dto.JobResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.JobResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.Title != nil {
		updates["title"] = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		updates["description"] = strings.TrimSpace(*payload.Description)
	}
	if payload.LastDate != nil {
		lastDate, err := parseDeadline(*payload.LastDate)
		if err != nil {
			return dto.JobResponse{}, err
		}
		updates["last_date"] = lastDate
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	job, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.JobResponse{}, ErrJobNotFound
		}
		return dto.JobResponse{}, err
	}

	s.invalidatePublicCache(ctx)
	s.record(ctx, actor, "job.updated", id, job.Title)

	return dto.NewJobResponse(job), nil
}

func (s *jobService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	s.invalidatePublicCache(ctx)
	s.record(ctx, actor, "job.deleted", id, job.Title)

	return nil
}

func (s *jobService) SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.JobResponse, error) {
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.JobResponse{}, ErrJobNotFound
		}
		return dto.JobResponse{}, err
	}

	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.JobResponse{}, err
	}

	s.invalidatePublicCache(ctx)

	action := "job.published"
	if !published {
		action = "job.unpublished"
	}
	s.record(ctx, actor, action, id, job.Title)

	return dto.NewJobResponse(job), nil
}

func (s *jobService) invalidatePublicCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.FlushDB(ctx).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to flush public content cache")
	}
}

func (s *jobService) record(ctx context.Context, actor ActivityActor, action string, entityID uint, title string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "job",
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if title != "" {
		entry.Metadata = map[string]interface{}{"title": title}
	}
	_, _ = s.activity.Record(ctx, entry)
}

// ExamService handles university exam flows.
type ExamService interface {
	List(ctx context.Context, req dto.ExamListRequest) ([]dto.ExamResponse, dto.PaginationMeta, error)
	ListPublished(ctx context.Context, req dto.ExamListRequest) ([]dto.ExamResponse, dto.PaginationMeta, error)
	Get(ctx context.Context, id uint) (dto.ExamResponse, error)
	Create(ctx context.Context, payload dto.ExamCreateRequest, actor ActivityActor) (dto.ExamResponse, error)
	Update(ctx context.Context, id uint, payload dto.ExamUpdateRequest, actor ActivityActor) (dto.ExamResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.ExamResponse, error)
}

type examService struct {
	repo      repository.ExamRepository
	taxonomy  repository.AcademicTaxonomyRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewExamService constructs the exam service.
func NewExamService(repo repository.ExamRepository, taxonomy repository.AcademicTaxonomyRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ExamService {
	return &examService{
		repo:      repo,
		taxonomy:  taxonomy,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "exam_service").Logger(),
	}
}

func (s *examService) List(ctx context.Context, req dto.ExamListRequest) ([]dto.ExamResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, false)
}

func (s *examService) ListPublished(ctx context.Context, req dto.ExamListRequest) ([]dto.ExamResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, true)
}

func (s *examService) list(ctx context.Context, req dto.ExamListRequest, publishedOnly bool) ([]dto.ExamResponse, dto.PaginationMeta, error) {
	filter := repository.ExamFilter{
		ListingFilter: repository.ListingFilter{
			Page:          normalizePage(req.Page),
			PageSize:      clampPageSize(req.PageSize),
			Search:        strings.TrimSpace(req.Search),
			PublishedOnly: publishedOnly,
		},
		DegreeID:      req.DegreeID,
		UniversityID:  req.UniversityID,
		Semester:      strings.TrimSpace(req.Semester),
		AdmissionYear: req.AdmissionYear,
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.ExamResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewExamResponse(item))
	}

	return responses, dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *examService) Get(ctx context.Context, id uint) (dto.ExamResponse, error) {
	exam, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}
	return dto.NewExamResponse(exam), nil
}

func (s *examService) Create(ctx context.Context, payload dto.ExamCreateRequest, actor ActivityActor) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	examDate, err := parseDeadline(payload.ExamDate)
	if err != nil {
		return dto.ExamResponse{}, err
	}

	if err := checkAcademicRefs(ctx, s.taxonomy, payload.DegreeID, payload.UniversityID); err != nil {
		return dto.ExamResponse{}, err
	}

	model := models.Exam{
		ExamName:      strings.TrimSpace(payload.ExamName),
		ExamDate:      examDate,
		ExamURL:       strings.TrimSpace(payload.ExamURL),
		DegreeID:      payload.DegreeID,
		UniversityID:  payload.UniversityID,
		Semester:      strings.TrimSpace(payload.Semester),
		AdmissionYear: payload.AdmissionYear,
		IsPublished:   payload.IsPublished,
	}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.ExamResponse{}, err
	}

	s.record(ctx, actor, "exam.created", model.ID, model.ExamName)

	created, err := s.repo.GetByID(ctx, model.ID)
	if err != nil {
		return dto.NewExamResponse(model), nil
	}
	return dto.NewExamResponse(created), nil
}

func (s *examService) Update(ctx context.Context, id uint, payload dto.ExamUpdateRequest, actor ActivityActor) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.ExamName != nil {
		updates["exam_name"] = strings.TrimSpace(*payload.ExamName)
	}
	if payload.ExamDate != nil {
		examDate, err := parseDeadline(*payload.ExamDate)
		if err != nil {
			return dto.ExamResponse{}, err
		}
		updates["exam_date"] = examDate
	}
	if payload.ExamURL != nil {
		updates["exam_url"] = strings.TrimSpace(*payload.ExamURL)
	}
	if payload.DegreeID != nil {
		if err := checkDegreeRef(ctx, s.taxonomy, *payload.DegreeID); err != nil {
			return dto.ExamResponse{}, err
		}
		updates["degree_id"] = *payload.DegreeID
	}
	if payload.UniversityID != nil {
		if err := checkUniversityRef(ctx, s.taxonomy, *payload.UniversityID); err != nil {
			return dto.ExamResponse{}, err
		}
		updates["university_id"] = *payload.UniversityID
	}
	if payload.Semester != nil {
		updates["semester"] = strings.TrimSpace(*payload.Semester)
	}
	if payload.AdmissionYear != nil {
		updates["admission_year"] = *payload.AdmissionYear
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	exam, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}

	s.record(ctx, actor, "exam.updated", id, exam.ExamName)

	return dto.NewExamResponse(exam), nil
}

func (s *examService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	exam, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		return err
	}

	s.record(ctx, actor, "exam.deleted", id, exam.ExamName)

	return nil
}

func (s *examService) SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.ExamResponse, error) {
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}

	exam, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ExamResponse{}, err
	}

	action := "exam.published"
	if !published {
		action = "exam.unpublished"
	}
	s.record(ctx, actor, action, id, exam.ExamName)

	return dto.NewExamResponse(exam), nil
}

func (s *examService) record(ctx context.Context, actor ActivityActor, action string, entityID uint, name string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "exam",
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if name != "" {
		entry.Metadata = map[string]interface{}{"name": name}
	}
	_, _ = s.activity.Record(ctx, entry)
}

// EntranceNotificationService handles entrance exam notification flows.
type EntranceNotificationService interface {
	List(ctx context.Context, req dto.ListRequest) ([]dto.EntranceNotificationResponse, dto.PaginationMeta, error)
	ListPublished(ctx context.Context, req dto.ListRequest) ([]dto.EntranceNotificationResponse, dto.PaginationMeta, error)
	Get(ctx context.Context, id uint) (dto.EntranceNotificationResponse, error)
	Create(ctx context.Context, payload dto.EntranceNotificationCreateRequest, actor ActivityActor) (dto.EntranceNotificationResponse, error)
	Update(ctx context.Context, id uint, payload dto.EntranceNotificationUpdateRequest, actor ActivityActor) (dto.EntranceNotificationResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.EntranceNotificationResponse, error)
}

type entranceNotificationService struct {
	repo      repository.EntranceNotificationRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewEntranceNotificationService constructs the entrance notification service.
func NewEntranceNotificationService(repo repository.EntranceNotificationRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) EntranceNotificationService {
	return &entranceNotificationService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "entrance_notification_service").Logger(),
	}
}

func (s *entranceNotificationService) List(ctx context.Context, req dto.ListRequest) ([]dto.EntranceNotificationResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, false)
}

func (s *entranceNotificationService) ListPublished(ctx context.Context, req dto.ListRequest) ([]dto.EntranceNotificationResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, true)
}

func (s *entranceNotificationService) list(ctx context.Context, req dto.ListRequest, publishedOnly bool) ([]dto.EntranceNotificationResponse, dto.PaginationMeta, error) {
	filter := repository.ListingFilter{
		Page:          normalizePage(req.Page),
		PageSize:      clampPageSize(req.PageSize),
		Search:        strings.TrimSpace(req.Search),
		PublishedOnly: publishedOnly,
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.EntranceNotificationResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewEntranceNotificationResponse(item))
	}

	return responses, dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *entranceNotificationService) Get(ctx context.Context, id uint) (dto.EntranceNotificationResponse, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EntranceNotificationResponse{}, ErrEntranceNotificationNotFound
		}
		return dto.EntranceNotificationResponse{}, err
	}
	return dto.NewEntranceNotificationResponse(notification), nil
}

func (s *entranceNotificationService) Create(ctx context.Context, payload dto.EntranceNotificationCreateRequest, actor ActivityActor) (dto.EntranceNotificationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EntranceNotificationResponse{}, err
	}

	deadline, err := parseDeadline(payload.Deadline)
	if err != nil {
		return dto.EntranceNotificationResponse{}, err
	}

	model := models.EntranceNotification{
		Title:         strings.TrimSpace(payload.Title),
		Description:   strings.TrimSpace(payload.Description),
		Deadline:      deadline,
		Link:          strings.TrimSpace(payload.Link),
		PublishedDate: time.Now().UTC(),
		IsPublished:   payload.IsPublished,
	}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.EntranceNotificationResponse{}, err
	}

	s.record(ctx, actor, "entrance_notification.created", model.ID, model.Title)

	return dto.NewEntranceNotificationResponse(model), nil
}

func (s *entranceNotificationService) Update(ctx context.Context, id uint, payload dto.EntranceNotificationUpdateRequest, actor ActivityActor) (dto.EntranceNotificationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EntranceNotificationResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.Title != nil {
		updates["title"] = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		updates["description"] = strings.TrimSpace(*payload.Description)
	}
	if payload.Deadline != nil {
		deadline, err := parseDeadline(*payload.Deadline)
		if err != nil {
			return dto.EntranceNotificationResponse{}, err
		}
		updates["deadline"] = deadline
	}
	if payload.Link != nil {
		updates["link"] = strings.TrimSpace(*payload.Link)
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	notification, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EntranceNotificationResponse{}, ErrEntranceNotificationNotFound
		}
		return dto.EntranceNotificationResponse{}, err
	}

	s.record(ctx, actor, "entrance_notification.updated", id, notification.Title)

	return dto.NewEntranceNotificationResponse(notification), nil
}

func (s *entranceNotificationService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntranceNotificationNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntranceNotificationNotFound
		}
		return err
	}

	s.record(ctx, actor, "entrance_notification.deleted", id, notification.Title)

	return nil
}

func (s *entranceNotificationService) SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.EntranceNotificationResponse, error) {
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EntranceNotificationResponse{}, ErrEntranceNotificationNotFound
		}
		return dto.EntranceNotificationResponse{}, err
	}

	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.EntranceNotificationResponse{}, err
	}

	action := "entrance_notification.published"
	if !published {
		action = "entrance_notification.unpublished"
	}
	s.record(ctx, actor, action, id, notification.Title)

	return dto.NewEntranceNotificationResponse(notification), nil
}

func (s *entranceNotificationService) record(ctx context.Context, actor ActivityActor, action string, entityID uint, title string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "entrance_notification",
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if title != "" {
		entry.Metadata = map[string]interface{}{"title": title}
	}
	_, _ = s.activity.Record(ctx, entry)
}
