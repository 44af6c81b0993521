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
	// ErrGalleryItemNotFound indicates the gallery item does not exist.
	ErrGalleryItemNotFound = errors.New("gallery item not found")
	// ErrInitiativeNotFound indicates the initiative does not exist.
	ErrInitiativeNotFound = errors.New("initiative not found")
)

// GalleryService handles gallery flows.
type GalleryService interface {
	List(ctx context.Context, req dto.ListRequest) ([]dto.GalleryItemResponse, dto.PaginationMeta, error)
	ListPublished(ctx context.Context, req dto.ListRequest) ([]dto.GalleryItemResponse, dto.PaginationMeta, error)
	Get(ctx context.Context, id uint) (dto.GalleryItemResponse, error)
	Create(ctx context.Context, payload dto.GalleryItemCreateRequest, actor ActivityActor) (dto.GalleryItemResponse, error)
	Update(ctx context.Context, id uint, payload dto.GalleryItemUpdateRequest, actor ActivityActor) (dto.GalleryItemResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.GalleryItemResponse, error)
}

type galleryService struct {
	repo      repository.GalleryRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewGalleryService constructs the gallery service.
func NewGalleryService(repo repository.GalleryRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) GalleryService {
	return &galleryService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "gallery_service").Logger(),
	}
}

func (s *galleryService) List(ctx context.Context, req dto.ListRequest) ([]dto.GalleryItemResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, false)
}

func (s *galleryService) ListPublished(ctx context.Context, req dto.ListRequest) ([]dto.GalleryItemResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, true)
}

func (s *galleryService) list(ctx context.Context, req dto.ListRequest, publishedOnly bool) ([]dto.GalleryItemResponse, dto.PaginationMeta, error) {
	filter := repository.ContentFilter{
		Page:          normalizePage(req.Page),
		PageSize:      clampPageSize(req.PageSize),
		Search:        strings.TrimSpace(req.Search),
		PublishedOnly: publishedOnly,
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.GalleryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewGalleryItemResponse(item))
	}

	return responses, dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *galleryService) Get(ctx context.Context, id uint) (dto.GalleryItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GalleryItemResponse{}, ErrGalleryItemNotFound
		}
		return dto.GalleryItemResponse{}, err
	}
	return dto.NewGalleryItemResponse(item), nil
}

func (s *galleryService) Create(ctx context.Context, payload dto.GalleryItemCreateRequest, actor ActivityActor) (dto.GalleryItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	model := models.GalleryItem{
		Title:       strings.TrimSpace(payload.Title),
		Caption:     strings.TrimSpace(payload.Caption),
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		IsPublished: payload.IsPublished,
	}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	s.record(ctx, actor, "gallery_item.created", model.ID, model.Title)

	return dto.NewGalleryItemResponse(model), nil
}

func (s *galleryService) Update(ctx context.Context, id uint, payload dto.GalleryItemUpdateRequest, actor ActivityActor) (dto.GalleryItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.Title != nil {
		updates["title"] = strings.TrimSpace(*payload.Title)
	}
	if payload.Caption != nil {
		updates["caption"] = strings.TrimSpace(*payload.Caption)
	}
	if payload.ImageURL != nil {
		updates["image_url"] = strings.TrimSpace(*payload.ImageURL)
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	item, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GalleryItemResponse{}, ErrGalleryItemNotFound
		}
		return dto.GalleryItemResponse{}, err
	}

	s.record(ctx, actor, "gallery_item.updated", id, item.Title)

	return dto.NewGalleryItemResponse(item), nil
}

func (s *galleryService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGalleryItemNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGalleryItemNotFound
		}
		return err
	}

	s.record(ctx, actor, "gallery_item.deleted", id, item.Title)

	return nil
}

func (s *galleryService) SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.GalleryItemResponse, error) {
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GalleryItemResponse{}, ErrGalleryItemNotFound
		}
		return dto.GalleryItemResponse{}, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.GalleryItemResponse{}, err
	}

	action := "gallery_item.published"
	if !published {
		action = "gallery_item.unpublished"
	}
	s.record(ctx, actor, action, id, item.Title)

	return dto.NewGalleryItemResponse(item), nil
}

func (s *galleryService) record(ctx context.Context, actor ActivityActor, action string, entityID uint, title string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "gallery_item",
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if title != "" {
		entry.Metadata = map[string]interface{}{"title": title}
	}
	_, _ = s.activity.Record(ctx, entry)
}

// InitiativeService handles initiative flows.
type InitiativeService interface {
	List(ctx context.Context, req dto.ListRequest) ([]dto.InitiativeResponse, dto.PaginationMeta, error)
	ListPublished(ctx context.Context, req dto.ListRequest) ([]dto.InitiativeResponse, dto.PaginationMeta, error)
	Get(ctx context.Context, id uint) (dto.InitiativeResponse, error)
	Create(ctx context.Context, payload dto.InitiativeCreateRequest, actor ActivityActor) (dto.InitiativeResponse, error)
	Update(ctx context.Context, id uint, payload dto.InitiativeUpdateRequest, actor ActivityActor) (dto.InitiativeResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.InitiativeResponse, error)
}

type initiativeService struct {
	repo      repository.InitiativeRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewInitiativeService constructs the initiative service.
func NewInitiativeService(repo repository.InitiativeRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) InitiativeService {
	return &initiativeService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "initiative_service").Logger(),
	}
}

func (s *initiativeService) List(ctx context.Context, req dto.ListRequest) ([]dto.InitiativeResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, false)
}

func (s *initiativeService) ListPublished(ctx context.Context, req dto.ListRequest) ([]dto.InitiativeResponse, dto.PaginationMeta, error) {
	return s.list(ctx, req, true)
}

func (s *initiativeService) list(ctx context.Context, req dto.ListRequest, publishedOnly bool) ([]dto.InitiativeResponse, dto.PaginationMeta, error) {
	filter := repository.ContentFilter{
		Page:          normalizePage(req.Page),
		PageSize:      clampPageSize(req.PageSize),
		Search:        strings.TrimSpace(req.Search),
		PublishedOnly: publishedOnly,
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.InitiativeResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewInitiativeResponse(item))
	}

	return responses, dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *initiativeService) Get(ctx context.Context, id uint) (dto.InitiativeResponse, error) {
	initiative, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InitiativeResponse{}, ErrInitiativeNotFound
		}
		return dto.InitiativeResponse{}, err
	}
	return dto.NewInitiativeResponse(initiative), nil
}

func (s *initiativeService) Create(ctx context.Context, payload dto.InitiativeCreateRequest, actor ActivityActor) (dto.InitiativeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InitiativeResponse{}, err
	}

	model := models.Initiative{
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		Link:        strings.TrimSpace(payload.Link),
		PhotoURL:    strings.TrimSpace(payload.PhotoURL),
		IsPublished: payload.IsPublished,
	}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.InitiativeResponse{}, err
	}

	s.record(ctx, actor, "initiative.created", model.ID, model.Name)

	return dto.NewInitiativeResponse(model), nil
}

func (s *initiativeService) Update(ctx context.Context, id uint, payload dto.InitiativeUpdateRequest, actor ActivityActor) (dto.InitiativeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InitiativeResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.Description != nil {
		updates["description"] = strings.TrimSpace(*payload.Description)
	}
	if payload.Link != nil {
		updates["link"] = strings.TrimSpace(*payload.Link)
	}
	if payload.PhotoURL != nil {
		updates["photo_url"] = strings.TrimSpace(*payload.PhotoURL)
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	initiative, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InitiativeResponse{}, ErrInitiativeNotFound
		}
		return dto.InitiativeResponse{}, err
	}

	s.record(ctx, actor, "initiative.updated", id, initiative.Name)

	return dto.NewInitiativeResponse(initiative), nil
}

func (s *initiativeService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	initiative, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInitiativeNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInitiativeNotFound
		}
		return err
	}

	s.record(ctx, actor, "initiative.deleted", id, initiative.Name)

	return nil
}

func (s *initiativeService) SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.InitiativeResponse, error) {
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InitiativeResponse{}, ErrInitiativeNotFound
		}
		return dto.InitiativeResponse{}, err
	}

	initiative, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.InitiativeResponse{}, err
	}

	action := "initiative.published"
	if !published {
		action = "initiative.unpublished"
	}
	s.record(ctx, actor, action, id, initiative.Name)

	return dto.NewInitiativeResponse(initiative), nil
}

func (s *initiativeService) record(ctx context.Context, actor ActivityActor, action string, entityID uint, name string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "initiative",
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if name != "" {
		entry.Metadata = map[string]interface{}{"name": name}
	}
	_, _ = s.activity.Record(ctx, entry)
}
