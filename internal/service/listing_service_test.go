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

func newJobService(t *testing.T) (JobService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t, &models.Job{}, &models.ActivityLog{})
	activity := NewActivityService(repository.NewActivityLogRepository(db), nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())

	return NewJobService(repository.NewJobRepository(db), nil, validate, activity, zerolog.Nop()), db
}

func newExamFixtures(t *testing.T) (ExamService, AcademicTaxonomyService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t, &models.University{}, &models.Degree{}, &models.Exam{}, &models.ActivityLog{})
	activity := NewActivityService(repository.NewActivityLogRepository(db), nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())
	taxonomyRepo := repository.NewAcademicTaxonomyRepository(db)

	exams := NewExamService(repository.NewExamRepository(db), taxonomyRepo, validate, activity, zerolog.Nop())
	taxonomy := NewAcademicTaxonomyService(taxonomyRepo, validate, activity, zerolog.Nop())

	return exams, taxonomy, db
}

func TestJobServiceCreateAcceptsPlainDateDeadline(t *testing.T) {
	jobs, _ := newJobService(t)

	job, err := jobs.Create(context.Background(), dto.JobCreateRequest{
		Title:       "Junior Developer",
		Description: "Apply with resume.",
		LastDate:    "2026-10-30",
	}, ActivityActor{ID: 1, Role: "staff"})
	require.NoError(t, err)
	require.Equal(t, 2026, job.LastDate.Year())
}

func TestJobServiceCreateRejectsMalformedDeadline(t *testing.T) {
	jobs, db := newJobService(t)

	_, err := jobs.Create(context.Background(), dto.JobCreateRequest{
		Title:       "Junior Developer",
		Description: "Apply with resume.",
		LastDate:    "30/10/2026",
	}, ActivityActor{ID: 1, Role: "staff"})
	require.ErrorIs(t, err, ErrInvalidDate)

	var count int64
	require.NoError(t, db.Model(&models.Job{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestExamServiceCreateRejectsMalformedDate(t *testing.T) {
	exams, taxonomy, _ := newExamFixtures(t)
	university, degree := seedDegree(t, taxonomy)

	_, err := exams.Create(context.Background(), dto.ExamCreateRequest{
		ExamName:     "Semester 3 Regular",
		ExamDate:     "12-10-2026 09:00",
		DegreeID:     degree.ID,
		UniversityID: university.ID,
	}, ActivityActor{ID: 1, Role: "staff"})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExamServiceCreateRejectsMissingTaxonomy(t *testing.T) {
	exams, taxonomy, db := newExamFixtures(t)
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	_, err := exams.Create(ctx, dto.ExamCreateRequest{
		ExamName:     "Semester 3 Regular",
		ExamDate:     "2026-10-12",
		DegreeID:     999,
		UniversityID: 999,
	}, actor)
	require.ErrorIs(t, err, ErrDegreeNotFound)

	university, degree := seedDegree(t, taxonomy)
	_, err = exams.Create(ctx, dto.ExamCreateRequest{
		ExamName:     "Semester 3 Regular",
		ExamDate:     "2026-10-12",
		DegreeID:     degree.ID,
		UniversityID: university.ID + 50,
	}, actor)
	require.ErrorIs(t, err, ErrUniversityNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Exam{}).Count(&count).Error)
	require.Zero(t, count, "rejected exams must not be persisted")
}

func TestExamServiceUpdateRejectsMissingUniversity(t *testing.T) {
	exams, taxonomy, _ := newExamFixtures(t)
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}
	university, degree := seedDegree(t, taxonomy)

	exam, err := exams.Create(ctx, dto.ExamCreateRequest{
		ExamName:     "Semester 3 Regular",
		ExamDate:     "2026-10-12",
		DegreeID:     degree.ID,
		UniversityID: university.ID,
	}, actor)
	require.NoError(t, err)

	missing := university.ID + 50
	_, err = exams.Update(ctx, exam.ID, dto.ExamUpdateRequest{UniversityID: &missing}, actor)
	require.ErrorIs(t, err, ErrUniversityNotFound)
}
