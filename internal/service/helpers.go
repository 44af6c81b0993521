package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
)

func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func clampPageSize(size int) int {
	if size <= 0 {
		return 20
	}
	if size > 100 {
		return 100
	}
	return size
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := int(math.Ceil(float64(total) / float64(pageSize)))
	return maxInt(pages, 1)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func slugify(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))

	slug := make([]rune, 0, len(base))
	for _, r := range base {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			slug = append(slug, r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			if len(slug) == 0 || slug[len(slug)-1] == '-' {
				continue
			}
			slug = append(slug, '-')
		}
	}
	trimmed := strings.Trim(string(slug), "-")
	if trimmed == "" {
		trimmed = "item"
	}
	return trimmed
}

const maxSlugAttempts = 100

// createWithUniqueSlug persists an entity whose slug carries a unique index,
// retrying with a numeric suffix when the database reports a duplicate key.
// "my-title" collides into "my-title-1", then "my-title-2", and so on. The
// database enforces uniqueness, so concurrent writers never share a slug.
func createWithUniqueSlug(ctx context.Context, base string, setSlug func(string), create func(context.Context) error) error {
	slug := base
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		setSlug(slug)
		err := create(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		slug = fmt.Sprintf("%s-%d", base, attempt)
	}
	return fmt.Errorf("could not allocate a unique slug for %q", base)
}
