package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"My Title":                       "my-title",
		"  Spaced   Out  ":               "spaced-out",
		"Already-slugged":                "already-slugged",
		"Punctuation, everywhere! (ok?)": "punctuation-everywhere-ok",
		"___":                            "item",
		"":                               "item",
	}

	for input, expected := range cases {
		require.Equal(t, expected, slugify(input), "input %q", input)
	}
}

func TestClampPageSize(t *testing.T) {
	require.Equal(t, 20, clampPageSize(0))
	require.Equal(t, 20, clampPageSize(-5))
	require.Equal(t, 50, clampPageSize(50))
	require.Equal(t, 100, clampPageSize(500))
}

func TestCalculateTotalPages(t *testing.T) {
	require.Equal(t, 1, calculateTotalPages(0, 20))
	require.Equal(t, 1, calculateTotalPages(20, 20))
	require.Equal(t, 2, calculateTotalPages(21, 20))
	require.Equal(t, 1, calculateTotalPages(5, 0))
}
