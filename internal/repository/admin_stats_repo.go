package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
)

// ContentTally aggregates the counters the dashboard shows per content type.
type ContentTally struct {
	Total       int64
	Published   int64
	NewLastWeek int64
}

// AdminStatsRepository supplies the aggregates behind the staff dashboard.
type AdminStatsRepository interface {
	ContentTallies(ctx context.Context, since time.Time) (map[string]ContentTally, error)
	CountUsers(ctx context.Context) (int64, error)
	ContactCounts(ctx context.Context) (total int64, unread int64, err error)
	UpcomingEvents(ctx context.Context, from time.Time, limit int) ([]models.Event, error)
}

type adminStatsRepository struct {
	db *gorm.DB
}

// NewAdminStatsRepository constructs the stats repository.
func NewAdminStatsRepository(db *gorm.DB) AdminStatsRepository {
	return &adminStatsRepository{db: db}
}

// talliedModels maps the dashboard label to the model counted under it. Every
// publishable entity on the portal appears here.
var talliedModels = []struct {
	name  string
	model interface{}
}{
	{"news", &models.News{}},
	{"events", &models.Event{}},
	{"jobs", &models.Job{}},
	{"exams", &models.Exam{}},
	{"entrance_notifications", &models.EntranceNotification{}},
	{"question_papers", &models.QuestionPaper{}},
	{"notes", &models.Note{}},
	{"gallery", &models.GalleryItem{}},
	{"initiatives", &models.Initiative{}},
}

func (r *adminStatsRepository) ContentTallies(ctx context.Context, since time.Time) (map[string]ContentTally, error) {
	tallies := make(map[string]ContentTally, len(talliedModels))
	for _, entry := range talliedModels {
		var tally ContentTally
		if err := r.db.WithContext(ctx).Model(entry.model).Count(&tally.Total).Error; err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Model(entry.model).Where("is_published = ?", true).Count(&tally.Published).Error; err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Model(entry.model).Where("created_at >= ?", since).Count(&tally.NewLastWeek).Error; err != nil {
			return nil, err
		}
		tallies[entry.name] = tally
	}
	return tallies, nil
}

func (r *adminStatsRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserAccount{}).Count(&count).Error
	return count, err
}

func (r *adminStatsRepository) ContactCounts(ctx context.Context) (int64, int64, error) {
	var total, unread int64
	if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&unread).Error; err != nil {
		return 0, 0, err
	}
	return total, unread, nil
}

func (r *adminStatsRepository) UpcomingEvents(ctx context.Context, from time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("event_start >= ?", from).
		Order("event_start ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
