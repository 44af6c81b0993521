package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/repository"
)

// AdminStatsService aggregates the counters behind the staff dashboard.
type AdminStatsService interface {
	GetSummary(ctx context.Context) (dto.AdminStatsResponse, error)
}

type adminStatsService struct {
	repo     repository.AdminStatsRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAdminStatsService constructs the stats service.
func NewAdminStatsService(repo repository.AdminStatsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AdminStatsService {
	return &adminStatsService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "admin_stats_service").Logger(),
		now:      time.Now,
	}
}

const upcomingEventLimit = 5

func (s *adminStatsService) GetSummary(ctx context.Context) (dto.AdminStatsResponse, error) {
	const cacheKey = "stats:summary"
	tracer := otel.Tracer("github.com/keralatechreach/portal-api/internal/service/admin_stats")
	ctx, span := tracer.Start(ctx, "stats.aggregate")
	span.SetAttributes(attribute.String("stats.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.AdminStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("stats.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read stats cache")
			span.RecordError(err)
		}
	}

	now := s.now()
	lastWeek := now.AddDate(0, 0, -7)

	tallies, err := s.repo.ContentTallies(ctx, lastWeek)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "content_tallies_failed")
		return dto.AdminStatsResponse{}, err
	}

	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_users_failed")
		return dto.AdminStatsResponse{}, err
	}

	totalMessages, unreadMessages, err := s.repo.ContactCounts(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "contact_counts_failed")
		return dto.AdminStatsResponse{}, err
	}

	upcoming, err := s.repo.UpcomingEvents(ctx, now, upcomingEventLimit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upcoming_events_failed")
		return dto.AdminStatsResponse{}, err
	}

	content := make(map[string]dto.ContentTallyResponse, len(tallies))
	for name, tally := range tallies {
		content[name] = dto.ContentTallyResponse{
			Total:       tally.Total,
			Published:   tally.Published,
			Drafts:      tally.Total - tally.Published,
			NewLastWeek: tally.NewLastWeek,
		}
	}

	events := make([]dto.EventResponse, 0, len(upcoming))
	for _, event := range upcoming {
		events = append(events, dto.NewEventResponse(event))
	}

	summary := dto.AdminStatsResponse{
		Users:          users,
		Content:        content,
		Messages:       dto.ContactTallyResponse{Total: totalMessages, Unread: unreadMessages},
		UpcomingEvents: events,
		GeneratedAt:    now,
	}
	span.SetAttributes(attribute.Int64("stats.users", users))

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store stats cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}
