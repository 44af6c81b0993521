package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
)

var (
	// ErrEventNotFound indicates the requested event does not exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventEndsBeforeStart rejects schedules whose end precedes the start.
	// An end equal to the start is a valid zero-duration event.
	ErrEventEndsBeforeStart = errors.New("event end must not precede event start")
)

// EventService handles dashboard and public event flows.
type EventService interface {
	List(ctx context.Context, req dto.EventListRequest) (dto.EventListResponse, error)
	ListPublished(ctx context.Context, req dto.EventListRequest) (dto.EventListResponse, error)
	Get(ctx context.Context, id uint) (dto.EventResponse, error)
	Create(ctx context.Context, payload dto.EventCreateRequest, actor ActivityActor) (dto.EventResponse, error)
	Update(ctx context.Context, id uint, payload dto.EventUpdateRequest, actor ActivityActor) (dto.EventResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.EventResponse, error)
}

type eventService struct {
	repo      repository.EventRepository
	cache     *redis.Client
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewEventService constructs the event service.
func NewEventService(repo repository.EventRepository, cache *redis.Client, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) EventService {
	return &eventService{
		repo:      repo,
		cache:     cache,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "event_service").Logger(),
	}
}

func (s *eventService) List(ctx context.Context, req dto.EventListRequest) (dto.EventListResponse, error) {
	return s.list(ctx, req, false)
}

func (s *eventService) ListPublished(ctx context.Context, req dto.EventListRequest) (dto.EventListResponse, error) {
	return s.list(ctx, req, true)
}

func (s *eventService) list(ctx context.Context, req dto.EventListRequest, publishedOnly bool) (dto.EventListResponse, error) {
	filter := repository.EventFilter{
		Page:          normalizePage(req.Page),
		PageSize:      clampPageSize(req.PageSize),
		Search:        strings.TrimSpace(req.Search),
		DistrictID:    req.DistrictID,
		CategoryID:    req.CategoryID,
		PublishedOnly: publishedOnly,
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.EventListResponse{}, err
	}

	responses := make([]dto.EventResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewEventResponse(item))
	}

	pagination := dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}

	return dto.EventListResponse{Items: responses, Pagination: pagination}, nil
}

func (s *eventService) Get(ctx context.Context, id uint) (dto.EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventResponse{}, ErrEventNotFound
		}
		return dto.EventResponse{}, err
	}
	return dto.NewEventResponse(event), nil
}

func (s *eventService) Create(ctx context.Context, payload dto.EventCreateRequest, actor ActivityActor) (dto.EventResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EventResponse{}, err
	}

	start, err := parseEventTime(payload.EventStart)
	if err != nil {
		return dto.EventResponse{}, err
	}

	var end *time.Time
	if strings.TrimSpace(payload.EventEnd) != "" {
		parsed, parseErr := parseEventTime(payload.EventEnd)
		if parseErr != nil {
			return dto.EventResponse{}, parseErr
		}
		end = &parsed
	}

	if err := validateEventWindow(start, end); err != nil {
		return dto.EventResponse{}, err
	}

	model := models.Event{
		Name:        strings.TrimSpace(payload.Name),
		EventStart:  start,
		EventEnd:    end,
		Place:       strings.TrimSpace(payload.Place),
		Link:        strings.TrimSpace(payload.Link),
		Description: strings.TrimSpace(payload.Description),
		MapLink:     strings.TrimSpace(payload.MapLink),
		DistrictID:  payload.DistrictID,
		CategoryID:  payload.CategoryID,
		IsPublished: payload.IsPublished,
	}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.EventResponse{}, err
	}

	s.invalidateCache(ctx)
	s.record(ctx, actor, "event.created", model.ID, model.Name)

	created, err := s.repo.GetByID(ctx, model.ID)
	if err != nil {
		return dto.NewEventResponse(model), nil
	}
	return dto.NewEventResponse(created), nil
}

func (s *eventService) Update(ctx context.Context, id uint, payload dto.EventUpdateRequest, actor ActivityActor) (dto.EventResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EventResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventResponse{}, ErrEventNotFound
		}
		return dto.EventResponse{}, err
	}

	updates := map[string]interface{}{}
	start := current.EventStart
	end := current.EventEnd

	if payload.EventStart != nil {
		parsed, parseErr := parseEventTime(*payload.EventStart)
		if parseErr != nil {
			return dto.EventResponse{}, parseErr
		}
		start = parsed
		updates["event_start"] = parsed
	}
	if payload.EventEnd != nil {
		if strings.TrimSpace(*payload.EventEnd) == "" {
			end = nil
			updates["event_end"] = nil
		} else {
			parsed, parseErr := parseEventTime(*payload.EventEnd)
			if parseErr != nil {
				return dto.EventResponse{}, parseErr
			}
			end = &parsed
			updates["event_end"] = parsed
		}
	}

	if err := validateEventWindow(start, end); err != nil {
		return dto.EventResponse{}, err
	}

	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.Place != nil {
		updates["place"] = strings.TrimSpace(*payload.Place)
	}
	if payload.Link != nil {
		updates["link"] = strings.TrimSpace(*payload.Link)
	}
	if payload.Description != nil {
		updates["description"] = strings.TrimSpace(*payload.Description)
	}
	if payload.MapLink != nil {
		updates["map_link"] = strings.TrimSpace(*payload.MapLink)
	}
	if payload.DistrictID != nil {
		updates["district_id"] = *payload.DistrictID
	}
	if payload.CategoryID != nil {
		updates["category_id"] = *payload.CategoryID
	}

	if len(updates) == 0 {
		return dto.NewEventResponse(current), nil
	}

	event, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventResponse{}, ErrEventNotFound
		}
		return dto.EventResponse{}, err
	}

	s.invalidateCache(ctx)
	s.record(ctx, actor, "event.updated", event.ID, event.Name)

	return dto.NewEventResponse(event), nil
}

func (s *eventService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	s.invalidateCache(ctx)
	s.record(ctx, actor, "event.deleted", id, event.Name)

	return nil
}

func (s *eventService) SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.EventResponse, error) {
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventResponse{}, ErrEventNotFound
		}
		return dto.EventResponse{}, err
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.EventResponse{}, err
	}

	s.invalidateCache(ctx)

	action := "event.published"
	if !published {
		action = "event.unpublished"
	}
	s.record(ctx, actor, action, id, event.Name)

	return dto.NewEventResponse(event), nil
}

func (s *eventService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.FlushDB(ctx).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to flush public content cache")
	}
}

func (s *eventService) record(ctx context.Context, actor ActivityActor, action string, entityID uint, name string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "event",
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if name != "" {
		entry.Metadata = map[string]interface{}{"name": name}
	}
	_, _ = s.activity.Record(ctx, entry)
}

func parseEventTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func validateEventWindow(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return ErrEventEndsBeforeStart
	}
	return nil
}

// TaxonomyService manages districts and event categories.
type TaxonomyService interface {
	ListDistricts(ctx context.Context) ([]dto.DistrictResponse, error)
	CreateDistrict(ctx context.Context, payload dto.DistrictRequest, actor ActivityActor) (dto.DistrictResponse, error)
	UpdateDistrict(ctx context.Context, id uint, payload dto.DistrictRequest, actor ActivityActor) (dto.DistrictResponse, error)
	DeleteDistrict(ctx context.Context, id uint, actor ActivityActor) error

	ListCategories(ctx context.Context) ([]dto.EventCategoryResponse, error)
	CreateCategory(ctx context.Context, payload dto.EventCategoryRequest, actor ActivityActor) (dto.EventCategoryResponse, error)
	UpdateCategory(ctx context.Context, id uint, payload dto.EventCategoryRequest, actor ActivityActor) (dto.EventCategoryResponse, error)
	DeleteCategory(ctx context.Context, id uint, actor ActivityActor) error
}

// ErrTaxonomyNotFound indicates a missing district or category.
var ErrTaxonomyNotFound = errors.New("taxonomy record not found")

type taxonomyService struct {
	repo      repository.TaxonomyRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewTaxonomyService constructs the taxonomy service.
func NewTaxonomyService(repo repository.TaxonomyRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) TaxonomyService {
	return &taxonomyService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "taxonomy_service").Logger(),
	}
}

func (s *taxonomyService) ListDistricts(ctx context.Context) ([]dto.DistrictResponse, error) {
	districts, err := s.repo.ListDistricts(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.DistrictResponse, 0, len(districts))
	for _, district := range districts {
		responses = append(responses, dto.NewDistrictResponse(district))
	}
	return responses, nil
}

func (s *taxonomyService) CreateDistrict(ctx context.Context, payload dto.DistrictRequest, actor ActivityActor) (dto.DistrictResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DistrictResponse{}, err
	}

	model := models.District{Name: strings.TrimSpace(payload.Name), IsActive: true}
	if payload.IsActive != nil {
		model.IsActive = *payload.IsActive
	}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.CreateDistrict(ctx, &model); err != nil {
		return dto.DistrictResponse{}, err
	}

	s.record(ctx, actor, "district.created", "district", model.ID, model.Name)

	return dto.NewDistrictResponse(model), nil
}

func (s *taxonomyService) UpdateDistrict(ctx context.Context, id uint, payload dto.DistrictRequest, actor ActivityActor) (dto.DistrictResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DistrictResponse{}, err
	}

	updates := map[string]interface{}{"name": strings.TrimSpace(payload.Name)}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	district, err := s.repo.UpdateDistrict(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DistrictResponse{}, ErrTaxonomyNotFound
		}
		return dto.DistrictResponse{}, err
	}

	s.record(ctx, actor, "district.updated", "district", id, district.Name)

	return dto.NewDistrictResponse(district), nil
}

func (s *taxonomyService) DeleteDistrict(ctx context.Context, id uint, actor ActivityActor) error {
	district, err := s.repo.GetDistrict(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaxonomyNotFound
		}
		return err
	}

	if err := s.repo.DeleteDistrict(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaxonomyNotFound
		}
		return err
	}

	s.record(ctx, actor, "district.deleted", "district", id, district.Name)

	return nil
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]dto.EventCategoryResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.EventCategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.NewEventCategoryResponse(category))
	}
	return responses, nil
}

func (s *taxonomyService) CreateCategory(ctx context.Context, payload dto.EventCategoryRequest, actor ActivityActor) (dto.EventCategoryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EventCategoryResponse{}, err
	}

	model := models.EventCategory{Category: strings.TrimSpace(payload.Category)}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.CreateCategory(ctx, &model); err != nil {
		return dto.EventCategoryResponse{}, err
	}

	s.record(ctx, actor, "event_category.created", "event_category", model.ID, model.Category)

	return dto.NewEventCategoryResponse(model), nil
}

func (s *taxonomyService) UpdateCategory(ctx context.Context, id uint, payload dto.EventCategoryRequest, actor ActivityActor) (dto.EventCategoryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EventCategoryResponse{}, err
	}

	category, err := s.repo.UpdateCategory(ctx, id, map[string]interface{}{
		"category": strings.TrimSpace(payload.Category),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventCategoryResponse{}, ErrTaxonomyNotFound
		}
		return dto.EventCategoryResponse{}, err
	}

	s.record(ctx, actor, "event_category.updated", "event_category", id, category.Category)

	return dto.NewEventCategoryResponse(category), nil
}

func (s *taxonomyService) DeleteCategory(ctx context.Context, id uint, actor ActivityActor) error {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaxonomyNotFound
		}
		return err
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaxonomyNotFound
		}
		return err
	}

	s.record(ctx, actor, "event_category.deleted", "event_category", id, category.Category)

	return nil
}

func (s *taxonomyService) record(ctx context.Context, actor ActivityActor, action, entityType string, entityID uint, name string) {
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
