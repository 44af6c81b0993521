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

// ErrUserNotFound indicates the account does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserService exposes dashboard user management.
type UserService interface {
	List(ctx context.Context, req dto.ListRequest) (dto.UserListResponse, error)
	Get(ctx context.Context, id uint) (dto.UserResponse, error)
	UpdateFlags(ctx context.Context, id uint, payload dto.UserFlagsUpdateRequest, actor ActivityActor) (dto.UserResponse, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewUserService constructs the user service.
func NewUserService(repo repository.UserRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) UserService {
	return &userService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context, req dto.ListRequest) (dto.UserListResponse, error) {
	filter := repository.UserFilter{
		Page:     normalizePage(req.Page),
		PageSize: clampPageSize(req.PageSize),
		Search:   strings.TrimSpace(req.Search),
	}

	accounts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.UserListResponse{}, err
	}

	responses := make([]dto.UserResponse, 0, len(accounts))
	for _, account := range accounts {
		profile := models.UserProfile{}
		if account.Profile != nil {
			profile = *account.Profile
		}
		responses = append(responses, dto.NewUserResponse(account, profile))
	}

	pagination := dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}

	return dto.UserListResponse{Items: responses, Pagination: pagination}, nil
}

func (s *userService) Get(ctx context.Context, id uint) (dto.UserResponse, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	profile := models.UserProfile{}
	if account.Profile != nil {
		profile = *account.Profile
	}
	return dto.NewUserResponse(account, profile), nil
}

func (s *userService) UpdateFlags(ctx context.Context, id uint, payload dto.UserFlagsUpdateRequest, actor ActivityActor) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.IsStaff != nil {
		updates["is_staff"] = *payload.IsStaff
	}
	if payload.IsApproved != nil {
		updates["is_approved"] = *payload.IsApproved
	}
	if payload.IsBlocked != nil {
		updates["is_blocked"] = *payload.IsBlocked
	}
	if payload.IsDeleted != nil {
		updates["is_deleted"] = *payload.IsDeleted
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	if _, err := s.repo.UpdateProfileFlags(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if s.activity != nil {
		entityID := id
		_, _ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "user.flags_updated",
			EntityType: "user",
			EntityID:   &entityID,
			IPAddress:  actor.IPAddress,
			Metadata:   flagsMetadata(updates),
		})
	}

	return s.Get(ctx, id)
}

func flagsMetadata(updates map[string]interface{}) map[string]interface{} {
	metadata := make(map[string]interface{}, len(updates))
	for key, value := range updates {
		metadata[key] = value
	}
	return metadata
}
