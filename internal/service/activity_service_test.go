package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
)

func newActivityService(t *testing.T) ActivityService {
	t.Helper()

	db := newTestDB(t, &models.ActivityLog{})
	return NewActivityService(repository.NewActivityLogRepository(db), nil, zerolog.Nop())
}

func TestActivityServiceRecordMasksSensitiveMetadata(t *testing.T) {
	svc := newActivityService(t)
	entityID := uint(3)

	entry, err := svc.Record(context.Background(), ActivityEntry{
		ActorID:    1,
		ActorRole:  "staff",
		Action:     "User.Registered",
		EntityType: "user",
		EntityID:   &entityID,
		Metadata: map[string]interface{}{
			"email":         "asha@example.com",
			"reset_token":   "abc123",
			"password_hint": "pet name",
			"district":      "Ernakulam",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "user.registered", entry.Action)
	require.Equal(t, "***", entry.Metadata["email"])
	require.Equal(t, "***", entry.Metadata["reset_token"])
	require.Equal(t, "***", entry.Metadata["password_hint"])
	require.Equal(t, "Ernakulam", entry.Metadata["district"])
}

func TestActivityServiceRecordRequiresActionAndEntityType(t *testing.T) {
	svc := newActivityService(t)

	_, err := svc.Record(context.Background(), ActivityEntry{EntityType: "news"})
	require.Error(t, err)

	_, err = svc.Record(context.Background(), ActivityEntry{Action: "news.created"})
	require.Error(t, err)
}

func TestActivityServiceListFilters(t *testing.T) {
	svc := newActivityService(t)
	ctx := context.Background()

	for _, action := range []string{"news.created", "news.updated", "event.created"} {
		_, err := svc.Record(ctx, ActivityEntry{
			ActorID:    2,
			ActorRole:  "staff",
			Action:     action,
			EntityType: strings.SplitN(action, ".", 2)[0],
		})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, dto.ActivityListRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)

	news, err := svc.List(ctx, dto.ActivityListRequest{EntityType: "news"})
	require.NoError(t, err)
	require.Len(t, news.Items, 2)

	created, err := svc.List(ctx, dto.ActivityListRequest{Action: "event.created"})
	require.NoError(t, err)
	require.Len(t, created.Items, 1)
}
