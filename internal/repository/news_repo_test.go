package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keralatechreach/portal-api/internal/models"
)

func TestNewsRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupTestDB(t, &models.News{})
	repo := NewNewsRepository(db)
	ctx := context.Background()

	articles := []models.News{
		{Title: "Monsoon Update", Slug: "monsoon-update", Content: "rain", IsPublished: true},
		{Title: "Tech Summit", Slug: "tech-summit", Content: "conference", IsPublished: true},
		{Title: "Draft Piece", Slug: "draft-piece", Content: "pending", IsPublished: false},
	}
	for i := range articles {
		require.NoError(t, repo.Create(ctx, &articles[i]))
	}

	published, total, err := repo.List(ctx, NewsFilter{Page: 1, PageSize: 10, PublishedOnly: true})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, published, 2)

	searched, total, err := repo.List(ctx, NewsFilter{Page: 1, PageSize: 10, Search: "summit"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "tech-summit", searched[0].Slug)

	paged, total, err := repo.List(ctx, NewsFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, paged, 1)
}

func TestNewsRepositoryDuplicateSlugTranslates(t *testing.T) {
	db := setupTestDB(t, &models.News{})
	repo := NewNewsRepository(db)
	ctx := context.Background()

	first := models.News{Title: "One", Slug: "shared", Content: "a"}
	require.NoError(t, repo.Create(ctx, &first))

	second := models.News{Title: "Two", Slug: "shared", Content: "b"}
	require.ErrorIs(t, repo.Create(ctx, &second), gorm.ErrDuplicatedKey)
}

func TestNewsRepositoryUpdateMissingRowReturnsNotFound(t *testing.T) {
	db := setupTestDB(t, &models.News{})
	repo := NewNewsRepository(db)
	ctx := context.Background()

	_, err := repo.Update(ctx, 42, map[string]interface{}{"title": "nope"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.ErrorIs(t, repo.Delete(ctx, 42), gorm.ErrRecordNotFound)
	require.ErrorIs(t, repo.SetPublished(ctx, 42, true), gorm.ErrRecordNotFound)
}

func TestNewsRepositoryIncrementViews(t *testing.T) {
	db := setupTestDB(t, &models.News{})
	repo := NewNewsRepository(db)
	ctx := context.Background()

	article := models.News{Title: "Counted", Slug: "counted", Content: "body", IsPublished: true}
	require.NoError(t, repo.Create(ctx, &article))

	require.NoError(t, repo.IncrementViews(ctx, article.ID))
	require.NoError(t, repo.IncrementViews(ctx, article.ID))

	stored, err := repo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, uint(2), stored.ViewsCount)
}
