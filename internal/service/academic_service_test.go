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

func newAcademicFixtures(t *testing.T) (AcademicTaxonomyService, NoteService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t, &models.University{}, &models.Degree{}, &models.Note{}, &models.QuestionPaper{}, &models.ActivityLog{})
	activity := NewActivityService(repository.NewActivityLogRepository(db), nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())

	taxonomyRepo := repository.NewAcademicTaxonomyRepository(db)
	taxonomy := NewAcademicTaxonomyService(taxonomyRepo, validate, activity, zerolog.Nop())
	notes := NewNoteService(repository.NewNoteRepository(db), taxonomyRepo, validate, activity, zerolog.Nop())

	return taxonomy, notes, db
}

func seedDegree(t *testing.T, taxonomy AcademicTaxonomyService) (dto.UniversityResponse, dto.DegreeResponse) {
	t.Helper()
	actor := ActivityActor{ID: 1, Role: "staff"}

	university, err := taxonomy.CreateUniversity(context.Background(), dto.UniversityRequest{Name: "University of Calicut"}, actor)
	require.NoError(t, err)

	degree, err := taxonomy.CreateDegree(context.Background(), dto.DegreeRequest{Name: "BSc Computer Science", UniversityID: university.ID}, actor)
	require.NoError(t, err)

	return university, degree
}

func TestAcademicTaxonomyDegreeRequiresExistingUniversity(t *testing.T) {
	taxonomy, _, _ := newAcademicFixtures(t)

	_, err := taxonomy.CreateDegree(context.Background(), dto.DegreeRequest{Name: "Orphan Degree", UniversityID: 99}, ActivityActor{ID: 1, Role: "staff"})
	require.ErrorIs(t, err, ErrUniversityNotFound)
}

func TestNoteServicePublicSubmissionStartsUnpublished(t *testing.T) {
	taxonomy, notes, db := newAcademicFixtures(t)
	university, degree := seedDegree(t, taxonomy)
	ctx := context.Background()

	var before int64
	require.NoError(t, db.Model(&models.ActivityLog{}).Count(&before).Error)

	note, err := notes.CreatePublic(ctx, dto.NoteCreateRequest{
		Title:        "Semester 3 DBMS Notes",
		Subject:      "DBMS",
		DegreeID:     degree.ID,
		UniversityID: university.ID,
		Semester:     3,
		Year:         2026,
		IsPublished:  true,
	})
	require.NoError(t, err)
	require.False(t, note.IsPublished, "public submissions must start unpublished")
	require.Nil(t, note.CreatedBy)

	// Anonymous submissions stay out of the audit ledger.
	var after int64
	require.NoError(t, db.Model(&models.ActivityLog{}).Count(&after).Error)
	require.Equal(t, before, after)

	public, _, err := notes.ListPublished(ctx, dto.AcademicFilter{})
	require.NoError(t, err)
	require.Empty(t, public)
}

func TestNoteServiceStaffReviewPublishes(t *testing.T) {
	taxonomy, notes, _ := newAcademicFixtures(t)
	university, degree := seedDegree(t, taxonomy)
	ctx := context.Background()
	actor := ActivityActor{ID: 2, Role: "staff"}

	note, err := notes.CreatePublic(ctx, dto.NoteCreateRequest{
		Title:        "Signals and Systems",
		Subject:      "ECE",
		DegreeID:     degree.ID,
		UniversityID: university.ID,
		Semester:     4,
		Year:         2025,
	})
	require.NoError(t, err)

	published, err := notes.SetPublished(ctx, note.ID, true, actor)
	require.NoError(t, err)
	require.True(t, published.IsPublished)

	public, _, err := notes.ListPublished(ctx, dto.AcademicFilter{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, note.ID, public[0].ID)
}

func TestQuestionPaperCreateRejectsMissingTaxonomy(t *testing.T) {
	taxonomy, _, db := newAcademicFixtures(t)
	activity := NewActivityService(repository.NewActivityLogRepository(db), nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())
	papers := NewQuestionPaperService(repository.NewQuestionPaperRepository(db), repository.NewAcademicTaxonomyRepository(db), validate, activity, zerolog.Nop())
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	_, err := papers.Create(ctx, dto.QuestionPaperCreateRequest{
		DegreeID: 999, UniversityID: 999, Semester: 3, Subject: "DBMS", Year: 2024,
	}, actor)
	require.ErrorIs(t, err, ErrDegreeNotFound)

	// A real degree paired with a dangling university must still fail.
	university, degree := seedDegree(t, taxonomy)
	_, err = papers.Create(ctx, dto.QuestionPaperCreateRequest{
		DegreeID: degree.ID, UniversityID: university.ID + 50, Semester: 3, Subject: "DBMS", Year: 2024,
	}, actor)
	require.ErrorIs(t, err, ErrUniversityNotFound)

	var count int64
	require.NoError(t, db.Model(&models.QuestionPaper{}).Count(&count).Error)
	require.Zero(t, count, "rejected papers must not be persisted")
}

func TestQuestionPaperUpdateRejectsMissingDegree(t *testing.T) {
	taxonomy, _, db := newAcademicFixtures(t)
	activity := NewActivityService(repository.NewActivityLogRepository(db), nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())
	papers := NewQuestionPaperService(repository.NewQuestionPaperRepository(db), repository.NewAcademicTaxonomyRepository(db), validate, activity, zerolog.Nop())
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}
	university, degree := seedDegree(t, taxonomy)

	paper, err := papers.Create(ctx, dto.QuestionPaperCreateRequest{
		DegreeID: degree.ID, UniversityID: university.ID, Semester: 3, Subject: "DBMS", Year: 2024,
	}, actor)
	require.NoError(t, err)

	missing := degree.ID + 50
	_, err = papers.Update(ctx, paper.ID, dto.QuestionPaperUpdateRequest{DegreeID: &missing}, actor)
	require.ErrorIs(t, err, ErrDegreeNotFound)
}

func TestNotePublicSubmissionRejectsMissingTaxonomy(t *testing.T) {
	_, notes, db := newAcademicFixtures(t)

	_, err := notes.CreatePublic(context.Background(), dto.NoteCreateRequest{
		Title: "Orphan Notes", Subject: "Maths", DegreeID: 999, UniversityID: 999, Semester: 1, Year: 2026,
	})
	require.ErrorIs(t, err, ErrDegreeNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Note{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestNoteServiceFiltersBySemesterAndDegree(t *testing.T) {
	taxonomy, notes, _ := newAcademicFixtures(t)
	university, degree := seedDegree(t, taxonomy)
	ctx := context.Background()
	actor := ActivityActor{ID: 1, Role: "staff"}

	_, err := notes.Create(ctx, dto.NoteCreateRequest{
		Title: "Sem 1", Subject: "Maths", DegreeID: degree.ID, UniversityID: university.ID, Semester: 1, Year: 2026, IsPublished: true,
	}, actor)
	require.NoError(t, err)

	_, err = notes.Create(ctx, dto.NoteCreateRequest{
		Title: "Sem 2", Subject: "Maths", DegreeID: degree.ID, UniversityID: university.ID, Semester: 2, Year: 2026, IsPublished: true,
	}, actor)
	require.NoError(t, err)

	filtered, _, err := notes.ListPublished(ctx, dto.AcademicFilter{Semester: 2, DegreeID: degree.ID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "Sem 2", filtered[0].Title)
}
