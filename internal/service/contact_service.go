package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
	"github.com/keralatechreach/portal-api/pkg/mailer"
)

// ErrContactNotFound indicates the contact message does not exist.
var ErrContactNotFound = errors.New("contact message not found")

// ContactService handles the public contact form and the dashboard inbox.
type ContactService interface {
	Submit(ctx context.Context, payload dto.ContactCreateRequest) (dto.ContactResponse, error)
	List(ctx context.Context, req dto.ListRequest, unreadOnly bool) ([]dto.ContactResponse, dto.PaginationMeta, error)
	Get(ctx context.Context, id uint) (dto.ContactResponse, error)
	MarkRead(ctx context.Context, id uint, read bool, actor ActivityActor) (dto.ContactResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type contactService struct {
	repo        repository.ContactRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	mail        mailer.Mailer
	notifyEmail string
	logger      zerolog.Logger
}

// NewContactService constructs the contact service. notifyEmail receives a
// copy of every submission; leave it empty to disable notifications.
func NewContactService(repo repository.ContactRepository, validate *validator.Validate, activity ActivityRecorder, mail mailer.Mailer, notifyEmail string, logger zerolog.Logger) ContactService {
	return &contactService{
		repo:        repo,
		validator:   validate,
		activity:    activity,
		mail:        mail,
		notifyEmail: notifyEmail,
		logger:      logger.With().Str("component", "contact_service").Logger(),
	}
}

// Submit stores a public enquiry. Anonymous submissions are not written to
// the activity ledger.
func (s *contactService) Submit(ctx context.Context, payload dto.ContactCreateRequest) (dto.ContactResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ContactResponse{}, err
	}

	model := models.ContactMessage{
		Name:    strings.TrimSpace(payload.Name),
		Email:   strings.ToLower(strings.TrimSpace(payload.Email)),
		Subject: strings.TrimSpace(payload.Subject),
		Message: strings.TrimSpace(payload.Message),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return dto.ContactResponse{}, err
	}

	s.notify(ctx, model)

	return dto.NewContactResponse(model), nil
}

func (s *contactService) notify(ctx context.Context, message models.ContactMessage) {
	if s.mail == nil || s.notifyEmail == "" {
		return
	}
	subject := fmt.Sprintf("New enquiry: %s", message.Subject)
	body := fmt.Sprintf("<p><strong>%s</strong> (%s) wrote:</p><p>%s</p>",
		html.EscapeString(message.Name),
		html.EscapeString(message.Email),
		html.EscapeString(message.Message))
	if err := s.mail.Send(ctx, s.notifyEmail, subject, body); err != nil {
		s.logger.Warn().Err(err).Uint("contact_id", message.ID).Msg("failed to send contact notification")
	}
}

func (s *contactService) List(ctx context.Context, req dto.ListRequest, unreadOnly bool) ([]dto.ContactResponse, dto.PaginationMeta, error) {
	filter := repository.ContactFilter{
		Page:       normalizePage(req.Page),
		PageSize:   clampPageSize(req.PageSize),
		Search:     strings.TrimSpace(req.Search),
		UnreadOnly: unreadOnly,
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.ContactResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewContactResponse(item))
	}

	return responses, dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *contactService) Get(ctx context.Context, id uint) (dto.ContactResponse, error) {
	message, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContactResponse{}, ErrContactNotFound
		}
		return dto.ContactResponse{}, err
	}
	return dto.NewContactResponse(message), nil
}

func (s *contactService) MarkRead(ctx context.Context, id uint, read bool, actor ActivityActor) (dto.ContactResponse, error) {
	if err := s.repo.MarkRead(ctx, id, read); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContactResponse{}, ErrContactNotFound
		}
		return dto.ContactResponse{}, err
	}

	message, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ContactResponse{}, err
	}

	action := "contact_message.read"
	if !read {
		action = "contact_message.unread"
	}
	s.record(ctx, actor, action, id, message.Subject)

	return dto.NewContactResponse(message), nil
}

func (s *contactService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	message, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}

	s.record(ctx, actor, "contact_message.deleted", id, message.Subject)

	return nil
}

func (s *contactService) record(ctx context.Context, actor ActivityActor, action string, entityID uint, subject string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "contact_message",
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if subject != "" {
		entry.Metadata = map[string]interface{}{"subject": subject}
	}
	_, _ = s.activity.Record(ctx, entry)
}
