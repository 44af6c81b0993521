package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
)

func newStatsService(t *testing.T, cache *redis.Client) (AdminStatsService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t,
		&models.News{}, &models.Event{}, &models.Job{}, &models.Exam{},
		&models.EntranceNotification{}, &models.QuestionPaper{}, &models.Note{},
		&models.GalleryItem{}, &models.Initiative{}, &models.ContactMessage{},
		&models.UserAccount{},
	)

	return NewAdminStatsService(repository.NewAdminStatsRepository(db), cache, time.Minute, zerolog.Nop()), db
}

func TestAdminStatsSummaryCountsContent(t *testing.T) {
	svc, db := newStatsService(t, nil)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.News{Title: "One", Slug: "one", Content: "body", IsPublished: true}).Error)
	require.NoError(t, db.Create(&models.News{Title: "Two", Slug: "two", Content: "body"}).Error)
	require.NoError(t, db.Create(&models.ContactMessage{Name: "A", Email: "a@example.com", Subject: "Hi", Message: "hello"}).Error)
	require.NoError(t, db.Create(&models.ContactMessage{Name: "B", Email: "b@example.com", Subject: "Hi", Message: "hello", IsRead: true}).Error)
	require.NoError(t, db.Create(&models.UserAccount{Username: "staff", Email: "staff@example.com", PasswordHash: "x"}).Error)

	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)

	news := summary.Content["news"]
	require.EqualValues(t, 2, news.Total)
	require.EqualValues(t, 1, news.Published)
	require.EqualValues(t, 1, news.Drafts)
	require.EqualValues(t, 2, news.NewLastWeek)

	require.EqualValues(t, 2, summary.Messages.Total)
	require.EqualValues(t, 1, summary.Messages.Unread)
	require.EqualValues(t, 1, summary.Users)
	require.False(t, summary.CacheHit)
}

func TestAdminStatsSummaryListsUpcomingEventsOnly(t *testing.T) {
	svc, db := newStatsService(t, nil)
	now := time.Now()

	require.NoError(t, db.Create(&models.Event{Name: "Past", Place: "Kochi", EventStart: now.Add(-48 * time.Hour)}).Error)
	require.NoError(t, db.Create(&models.Event{Name: "Soon", Place: "Kochi", EventStart: now.Add(24 * time.Hour)}).Error)
	require.NoError(t, db.Create(&models.Event{Name: "Later", Place: "Kochi", EventStart: now.Add(72 * time.Hour)}).Error)

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.UpcomingEvents, 2)
	require.Equal(t, "Soon", summary.UpcomingEvents[0].Name)
	require.Equal(t, "Later", summary.UpcomingEvents[1].Name)
}

func TestAdminStatsSummaryServedFromCache(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	svc, db := newStatsService(t, cache)
	ctx := context.Background()

	first, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	// A write after the first aggregation is invisible until the TTL lapses.
	require.NoError(t, db.Create(&models.News{Title: "One", Slug: "one", Content: "body"}).Error)

	second, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.EqualValues(t, 0, second.Content["news"].Total)
}
