package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
)

func newNewsService(t *testing.T, cache *redis.Client) (NewsService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t, &models.News{}, &models.ActivityLog{})
	repo := repository.NewNewsRepository(db)
	activity := NewActivityService(repository.NewActivityLogRepository(db), nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())

	return NewNewsService(repo, cache, time.Minute, validate, activity, zerolog.Nop()), db
}

func TestNewsServiceCreateDerivesSlugFromTitle(t *testing.T) {
	svc, _ := newNewsService(t, nil)

	article, err := svc.Create(context.Background(), dto.NewsCreateRequest{
		Title:   "Monsoon Tech Meetup in Kochi!",
		Content: "The meetup returns this monsoon season.",
	}, ActivityActor{ID: 1, Role: "staff"})
	require.NoError(t, err)
	require.Equal(t, "monsoon-tech-meetup-in-kochi", article.Slug)
	require.False(t, article.IsPublished)
	require.GreaterOrEqual(t, article.ReadingMinutes, 1)
}

func TestNewsServiceSlugCollisionGetsNumericSuffix(t *testing.T) {
	svc, _ := newNewsService(t, nil)
	actor := ActivityActor{ID: 1, Role: "staff"}

	first, err := svc.Create(context.Background(), dto.NewsCreateRequest{Title: "My Title", Content: "one"}, actor)
	require.NoError(t, err)
	require.Equal(t, "my-title", first.Slug)

	second, err := svc.Create(context.Background(), dto.NewsCreateRequest{Title: "My Title", Content: "two"}, actor)
	require.NoError(t, err)
	require.Equal(t, "my-title-1", second.Slug)

	third, err := svc.Create(context.Background(), dto.NewsCreateRequest{Title: "My Title", Content: "three"}, actor)
	require.NoError(t, err)
	require.Equal(t, "my-title-2", third.Slug)
}

func TestNewsServiceEveryMutationWritesOneLedgerEntry(t *testing.T) {
	svc, db := newNewsService(t, nil)
	actor := ActivityActor{ID: 7, Role: "staff"}
	ctx := context.Background()

	countEntries := func() int64 {
		var count int64
		require.NoError(t, db.Model(&models.ActivityLog{}).Count(&count).Error)
		return count
	}

	article, err := svc.Create(ctx, dto.NewsCreateRequest{Title: "Audited", Content: "body"}, actor)
	require.NoError(t, err)
	require.Equal(t, int64(1), countEntries())

	newTitle := "Audited v2"
	_, err = svc.Update(ctx, article.ID, dto.NewsUpdateRequest{Title: &newTitle}, actor)
	require.NoError(t, err)
	require.Equal(t, int64(2), countEntries())

	_, err = svc.SetPublished(ctx, article.ID, true, actor)
	require.NoError(t, err)
	require.Equal(t, int64(3), countEntries())

	require.NoError(t, svc.Delete(ctx, article.ID, actor))
	require.Equal(t, int64(4), countEntries())

	var last models.ActivityLog
	require.NoError(t, db.Order("id DESC").First(&last).Error)
	require.Equal(t, "news.deleted", last.Action)
	require.Equal(t, uint(7), last.ActorID)
}

func TestNewsServiceGetAfterDeleteReturnsNotFound(t *testing.T) {
	svc, _ := newNewsService(t, nil)
	actor := ActivityActor{ID: 1, Role: "staff"}
	ctx := context.Background()

	article, err := svc.Create(ctx, dto.NewsCreateRequest{Title: "Short lived", Content: "body"}, actor)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, article.ID, actor))

	_, err = svc.Get(ctx, article.ID)
	require.ErrorIs(t, err, ErrNewsNotFound)

	err = svc.Delete(ctx, article.ID, actor)
	require.ErrorIs(t, err, ErrNewsNotFound)
}

func TestNewsServicePublishedBySlugHidesDrafts(t *testing.T) {
	svc, _ := newNewsService(t, nil)
	actor := ActivityActor{ID: 1, Role: "staff"}
	ctx := context.Background()

	article, err := svc.Create(ctx, dto.NewsCreateRequest{Title: "Draft Only", Content: "body"}, actor)
	require.NoError(t, err)

	_, err = svc.GetPublishedBySlug(ctx, article.Slug)
	require.ErrorIs(t, err, ErrNewsNotFound)

	_, err = svc.SetPublished(ctx, article.ID, true, actor)
	require.NoError(t, err)

	found, err := svc.GetPublishedBySlug(ctx, article.Slug)
	require.NoError(t, err)
	require.Equal(t, article.ID, found.ID)
}

func TestNewsServicePublishedListCachesAndInvalidates(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	svc, _ := newNewsService(t, cache)
	actor := ActivityActor{ID: 1, Role: "staff"}
	ctx := context.Background()

	article, err := svc.Create(ctx, dto.NewsCreateRequest{Title: "Cached", Content: "body", IsPublished: true}, actor)
	require.NoError(t, err)

	first, err := svc.ListPublished(ctx, dto.ListRequest{})
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	require.False(t, first.CacheHit)

	second, err := svc.ListPublished(ctx, dto.ListRequest{})
	require.NoError(t, err)
	require.True(t, second.CacheHit)

	// Unpublishing flushes the cache, so the next read misses and the
	// article disappears from the public feed.
	_, err = svc.SetPublished(ctx, article.ID, false, actor)
	require.NoError(t, err)

	third, err := svc.ListPublished(ctx, dto.ListRequest{})
	require.NoError(t, err)
	require.False(t, third.CacheHit)
	require.Empty(t, third.Items)
}
