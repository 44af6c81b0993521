package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
)

func newEventService(t *testing.T) EventService {
	t.Helper()

	db := newTestDB(t, &models.District{}, &models.EventCategory{}, &models.Event{}, &models.ActivityLog{})
	repo := repository.NewEventRepository(db)
	activity := NewActivityService(repository.NewActivityLogRepository(db), nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())

	return NewEventService(repo, nil, validate, activity, zerolog.Nop())
}

func TestEventServiceRejectsEndBeforeStart(t *testing.T) {
	svc := newEventService(t)
	start := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), dto.EventCreateRequest{
		Name:       "Career Expo",
		Place:      "Kozhikode",
		EventStart: start.Format(time.RFC3339),
		EventEnd:   start.Add(-time.Hour).Format(time.RFC3339),
	}, ActivityActor{ID: 1, Role: "staff"})
	require.ErrorIs(t, err, ErrEventEndsBeforeStart)
}

func TestEventServiceRejectsMalformedTimestamp(t *testing.T) {
	svc := newEventService(t)

	_, err := svc.Create(context.Background(), dto.EventCreateRequest{
		Name:       "Career Expo",
		Place:      "Kozhikode",
		EventStart: "12-10-2026 09:00",
	}, ActivityActor{ID: 1, Role: "staff"})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestEventServiceAcceptsZeroDurationWindow(t *testing.T) {
	svc := newEventService(t)
	start := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)

	event, err := svc.Create(context.Background(), dto.EventCreateRequest{
		Name:       "Flag Off",
		Place:      "Thrissur",
		EventStart: start.Format(time.RFC3339),
		EventEnd:   start.Format(time.RFC3339),
	}, ActivityActor{ID: 1, Role: "staff"})
	require.NoError(t, err)
	require.NotNil(t, event.EventEnd)
	require.True(t, event.EventEnd.Equal(event.EventStart))
}

func TestEventServiceUpdateValidatesMergedWindow(t *testing.T) {
	svc := newEventService(t)
	actor := ActivityActor{ID: 1, Role: "staff"}
	ctx := context.Background()

	start := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	event, err := svc.Create(ctx, dto.EventCreateRequest{
		Name:       "Hackathon",
		Place:      "Thiruvananthapuram",
		EventStart: start.Format(time.RFC3339),
		EventEnd:   end.Format(time.RFC3339),
	}, actor)
	require.NoError(t, err)

	// Moving the start past the stored end must fail even though the
	// payload itself carries no end time.
	lateStart := end.Add(time.Hour).Format(time.RFC3339)
	_, err = svc.Update(ctx, event.ID, dto.EventUpdateRequest{EventStart: &lateStart}, actor)
	require.ErrorIs(t, err, ErrEventEndsBeforeStart)

	// Clearing the end removes the constraint entirely.
	empty := ""
	updated, err := svc.Update(ctx, event.ID, dto.EventUpdateRequest{EventStart: &lateStart, EventEnd: &empty}, actor)
	require.NoError(t, err)
	require.Nil(t, updated.EventEnd)
}

func TestEventServicePublishedListingExcludesDrafts(t *testing.T) {
	svc := newEventService(t)
	actor := ActivityActor{ID: 1, Role: "staff"}
	ctx := context.Background()
	start := time.Now().UTC().Add(24 * time.Hour)

	_, err := svc.Create(ctx, dto.EventCreateRequest{
		Name:       "Draft Event",
		Place:      "Kannur",
		EventStart: start.Format(time.RFC3339),
	}, actor)
	require.NoError(t, err)

	published, err := svc.Create(ctx, dto.EventCreateRequest{
		Name:        "Live Event",
		Place:       "Kollam",
		EventStart:  start.Format(time.RFC3339),
		IsPublished: true,
	}, actor)
	require.NoError(t, err)

	list, err := svc.ListPublished(ctx, dto.EventListRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, published.ID, list.Items[0].ID)

	all, err := svc.List(ctx, dto.EventListRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
}
