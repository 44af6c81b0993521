package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/observability"
	"github.com/keralatechreach/portal-api/internal/repository"
)

// ErrNewsNotFound indicates the requested article does not exist.
var ErrNewsNotFound = errors.New("news article not found")

const wordsPerMinute = 200

// NewsService handles both the dashboard and the public article flows.
type NewsService interface {
	List(ctx context.Context, req dto.ListRequest) (dto.NewsListResponse, error)
	Get(ctx context.Context, id uint) (dto.NewsResponse, error)
	Create(ctx context.Context, payload dto.NewsCreateRequest, actor ActivityActor) (dto.NewsResponse, error)
	Update(ctx context.Context, id uint, payload dto.NewsUpdateRequest, actor ActivityActor) (dto.NewsResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.NewsResponse, error)

	ListPublished(ctx context.Context, req dto.ListRequest) (dto.NewsListResponse, error)
	GetPublishedBySlug(ctx context.Context, slug string) (dto.NewsResponse, error)
}

type newsService struct {
	repo      repository.NewsRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	activity  ActivityRecorder
	policy    *bluemonday.Policy
	logger    zerolog.Logger
}

// NewNewsService constructs the news service.
func NewNewsService(repo repository.NewsRepository, cache *redis.Client, cacheTTL time.Duration, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) NewsService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("href", "title", "target").OnElements("a")
	return &newsService{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: validate,
		activity:  activity,
		policy:    policy,
		logger:    logger.With().Str("component", "news_service").Logger(),
	}
}

func (s *newsService) List(ctx context.Context, req dto.ListRequest) (dto.NewsListResponse, error) {
	filter := repository.NewsFilter{
		Page:     normalizePage(req.Page),
		PageSize: clampPageSize(req.PageSize),
		Search:   strings.TrimSpace(req.Search),
	}
	return s.list(ctx, filter)
}

func (s *newsService) ListPublished(ctx context.Context, req dto.ListRequest) (dto.NewsListResponse, error) {
	filter := repository.NewsFilter{
		Page:          normalizePage(req.Page),
		PageSize:      clampPageSize(req.PageSize),
		Search:        strings.TrimSpace(req.Search),
		PublishedOnly: true,
	}

	cacheKey := ""
	if s.cache != nil && filter.Search == "" {
		cacheKey = fmt.Sprintf("news:published:v1:%d:%d", filter.Page, filter.PageSize)
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.NewsListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.PublicContentRequests().WithLabelValues("news", "hit").Inc()
				return response, nil
			}
		}
	}

	response, err := s.list(ctx, filter)
	if err != nil {
		observability.PublicContentRequests().WithLabelValues("news", "error").Inc()
		return dto.NewsListResponse{}, err
	}

	for i := range response.Items {
		response.Items[i].Content = s.policy.Sanitize(response.Items[i].Content)
	}

	if cacheKey != "" {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache published news")
			}
		}
	}

	observability.PublicContentRequests().WithLabelValues("news", "miss").Inc()

	return response, nil
}

func (s *newsService) list(ctx context.Context, filter repository.NewsFilter) (dto.NewsListResponse, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.NewsListResponse{}, err
	}

	responses := make([]dto.NewsResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewNewsResponse(item))
	}

	pagination := dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}

	return dto.NewsListResponse{Items: responses, Pagination: pagination}, nil
}

func (s *newsService) Get(ctx context.Context, id uint) (dto.NewsResponse, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NewsResponse{}, ErrNewsNotFound
		}
		return dto.NewsResponse{}, err
	}
	return dto.NewNewsResponse(article), nil
}

func (s *newsService) GetPublishedBySlug(ctx context.Context, slug string) (dto.NewsResponse, error) {
	article, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NewsResponse{}, ErrNewsNotFound
		}
		return dto.NewsResponse{}, err
	}
	if !article.IsPublished {
		return dto.NewsResponse{}, ErrNewsNotFound
	}

	if err := s.repo.IncrementViews(ctx, article.ID); err != nil {
		s.logger.Warn().Err(err).Uint("news_id", article.ID).Msg("failed to increment view counter")
	} else {
		article.ViewsCount++
	}

	response := dto.NewNewsResponse(article)
	response.Content = s.policy.Sanitize(response.Content)
	return response, nil
}

func (s *newsService) Create(ctx context.Context, payload dto.NewsCreateRequest, actor ActivityActor) (dto.NewsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NewsResponse{}, err
	}

	model := models.News{
		Title:          strings.TrimSpace(payload.Title),
		Content:        payload.Content,
		Excerpt:        strings.TrimSpace(payload.Excerpt),
		ImageURL:       strings.TrimSpace(payload.ImageURL),
		IsPublished:    payload.IsPublished,
		ReadingMinutes: estimateReadingMinutes(payload.Content),
	}
	if actor.ID > 0 {
		id := actor.ID
		model.CreatedBy = &id
	}

	base := strings.TrimSpace(payload.Slug)
	if base == "" {
		base = slugify(payload.Title)
	} else {
		base = slugify(base)
	}

	err := createWithUniqueSlug(ctx, base, func(slug string) { model.Slug = slug }, func(ctx context.Context) error {
		return s.repo.Create(ctx, &model)
	})
	if err != nil {
		return dto.NewsResponse{}, err
	}

	s.invalidatePublicCache(ctx)
	s.record(ctx, actor, "news.created", model.ID, model.Title)

	return dto.NewNewsResponse(model), nil
}

func (s *newsService) Update(ctx context.Context, id uint, payload dto.NewsUpdateRequest, actor ActivityActor) (dto.NewsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NewsResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.Title != nil {
		updates["title"] = strings.TrimSpace(*payload.Title)
	}
	if payload.Content != nil {
		updates["content"] = *payload.Content
		updates["reading_minutes"] = estimateReadingMinutes(*payload.Content)
	}
	if payload.Excerpt != nil {
		updates["excerpt"] = strings.TrimSpace(*payload.Excerpt)
	}
	if payload.ImageURL != nil {
		updates["image_url"] = strings.TrimSpace(*payload.ImageURL)
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	article, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NewsResponse{}, ErrNewsNotFound
		}
		return dto.NewsResponse{}, err
	}

	s.invalidatePublicCache(ctx)
	s.record(ctx, actor, "news.updated", article.ID, article.Title)

	return dto.NewNewsResponse(article), nil
}

func (s *newsService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	s.invalidatePublicCache(ctx)
	s.record(ctx, actor, "news.deleted", id, article.Title)

	return nil
}

func (s *newsService) SetPublished(ctx context.Context, id uint, published bool, actor ActivityActor) (dto.NewsResponse, error) {
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NewsResponse{}, ErrNewsNotFound
		}
		return dto.NewsResponse{}, err
	}

	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.NewsResponse{}, err
	}

	s.invalidatePublicCache(ctx)

	action := "news.published"
	if !published {
		action = "news.unpublished"
	}
	s.record(ctx, actor, action, id, article.Title)

	return dto.NewNewsResponse(article), nil
}

func (s *newsService) invalidatePublicCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// The cache database only holds derived public listings, so a flush on
	// mutation is safe and keeps invalidation simple.
	if err := s.cache.FlushDB(ctx).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to flush public content cache")
	}
}

func (s *newsService) record(ctx context.Context, actor ActivityActor, action string, entityID uint, title string) {
	if s.activity == nil {
		return
	}
	id := entityID
	entry := ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "news",
		EntityID:   &id,
		IPAddress:  actor.IPAddress,
	}
	if title != "" {
		entry.Metadata = map[string]interface{}{"title": title}
	}
	_, _ = s.activity.Record(ctx, entry)
}

func estimateReadingMinutes(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return maxInt(words/wordsPerMinute, 1)
}
