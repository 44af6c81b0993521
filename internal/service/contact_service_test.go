package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/dto"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
)

func newContactService(t *testing.T, mail *captureMailer, notifyEmail string) (ContactService, *activityProbe) {
	t.Helper()

	db := newTestDB(t, &models.ContactMessage{}, &models.ActivityLog{})
	repo := repository.NewContactRepository(db)
	probe := &activityProbe{db: db, t: t}
	activity := NewActivityService(repository.NewActivityLogRepository(db), nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())

	if mail == nil {
		mail = &captureMailer{}
	}

	return NewContactService(repo, validate, activity, mail, notifyEmail, zerolog.Nop()), probe
}

type activityProbe struct {
	db *gorm.DB
	t  *testing.T
}

func (p *activityProbe) count() int64 {
	var count int64
	require.NoError(p.t, p.db.Model(&models.ActivityLog{}).Count(&count).Error)
	return count
}

func TestContactServiceSubmitIsNotLedgerLogged(t *testing.T) {
	mail := &captureMailer{}
	svc, probe := newContactService(t, mail, "inbox@keralatechreach.in")
	ctx := context.Background()

	message, err := svc.Submit(ctx, dto.ContactCreateRequest{
		Name:    "Visitor",
		Email:   "Visitor@Example.Com",
		Subject: "Portal feedback",
		Message: "Great resource, thanks.",
	})
	require.NoError(t, err)
	require.Equal(t, "visitor@example.com", message.Email)
	require.False(t, message.IsRead)

	// Anonymous submissions never enter the audit ledger.
	require.Equal(t, int64(0), probe.count())

	require.Equal(t, []string{"inbox@keralatechreach.in"}, mail.recipients)
}

func TestContactServiceMarkReadAndDeleteAreLedgerLogged(t *testing.T) {
	svc, probe := newContactService(t, nil, "")
	ctx := context.Background()
	actor := ActivityActor{ID: 5, Role: "staff"}

	message, err := svc.Submit(ctx, dto.ContactCreateRequest{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Question",
		Message: "When is the next event?",
	})
	require.NoError(t, err)

	read, err := svc.MarkRead(ctx, message.ID, true, actor)
	require.NoError(t, err)
	require.True(t, read.IsRead)
	require.Equal(t, int64(1), probe.count())

	require.NoError(t, svc.Delete(ctx, message.ID, actor))
	require.Equal(t, int64(2), probe.count())

	_, err = svc.Get(ctx, message.ID)
	require.ErrorIs(t, err, ErrContactNotFound)
}

func TestContactServiceUnreadFilter(t *testing.T) {
	svc, _ := newContactService(t, nil, "")
	ctx := context.Background()
	actor := ActivityActor{ID: 5, Role: "staff"}

	first, err := svc.Submit(ctx, dto.ContactCreateRequest{Name: "A", Email: "a@example.com", Subject: "s", Message: "m"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, dto.ContactCreateRequest{Name: "B", Email: "b@example.com", Subject: "s", Message: "m"})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, first.ID, true, actor)
	require.NoError(t, err)

	unread, _, err := svc.List(ctx, dto.ListRequest{}, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	all, _, err := svc.List(ctx, dto.ListRequest{}, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
