package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestNovelListCmd(t *testing.T) {
	store, cleanup := setupTestServices(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"Emma", "Persuasion", "Mansfield Park"} {
		slug := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
		require.NoError(t, store.SaveNovel(ctx, &domain.Novel{
			Slug:         slug,
			Title:        title,
			Author:       "Jane Austen",
			ChapterCount: 10 + i,
			UpdatedAt:    base.Add(time.Duration(i) * time.Hour),
		}))
	}

	t.Run("newest first", func(t *testing.T) {
		resetFlags()
		out, err := execute(t, "novel", "list")
		require.NoError(t, err)

		assert.Less(t, strings.Index(out, "Mansfield Park"), strings.Index(out, "Emma"))
		assert.Contains(t, out, "by Jane Austen")
		assert.Contains(t, out, "mansfield-park  (12 chapters)")
		assert.Contains(t, out, "Page 1 of 1 (3 novels)")
	})

	t.Run("paged", func(t *testing.T) {
		resetFlags()
		out, err := execute(t, "novel", "list", "--limit", "2", "--page", "2")
		require.NoError(t, err)

		assert.Contains(t, out, "Emma")
		assert.NotContains(t, out, "Persuasion")
		assert.Contains(t, out, "Page 2 of 2 (3 novels)")
	})

	t.Run("search", func(t *testing.T) {
		resetFlags()
		out, err := execute(t, "novels", "list", "-s", "PERSU")
		require.NoError(t, err)
		assert.Contains(t, out, "Persuasion")
		assert.NotContains(t, out, "Emma")
	})

	t.Run("no match", func(t *testing.T) {
		resetFlags()
		out, err := execute(t, "novel", "list", "--search", "dickens")
		require.NoError(t, err)
		assert.Contains(t, out, `No novels match "dickens".`)
	})
}

func TestNovelListCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "novel", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "The library is empty.")
}

func TestNovelShowCmd(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	slug := importPride(t)

	_, err := execute(t, "read", slug, "chapter-2", "--bookmark")
	require.NoError(t, err)
	resetFlags()

	out, err := execute(t, "novel", "show", slug)
	require.NoError(t, err)

	assert.Contains(t, out, "Pride and Prejudice")
	assert.Contains(t, out, "Author:      Jane Austen")
	assert.Contains(t, out, "Status:      completed")
	assert.Contains(t, out, "Chapters:    3")
	assert.Contains(t, out, "chapter-3")
	assert.Contains(t, out, "Bookmark:    chapter-2, page 1")
}

func TestNovelShowCmd_FlagsDuplicateNumbers(t *testing.T) {
	store, cleanup := setupTestServices(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.SaveNovel(ctx, &domain.Novel{Slug: "misparsed", Title: "Misparsed"}))
	require.NoError(t, store.SaveChapters(ctx, []domain.Chapter{
		{NovelSlug: "misparsed", Slug: "chapter-1", Title: "Chapter 1", Number: 1, Metadata: map[string]any{"duplicate_number": true}},
		{NovelSlug: "misparsed", Slug: "chapter-1-2", Title: "Chapter 1", Number: 1, Metadata: map[string]any{"duplicate_number": true}},
	}))

	out, err := execute(t, "novel", "show", "misparsed")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "(duplicate number)"))
}

func TestNovelShowCmd_NotFound(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "novel", "show", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNovelDeleteCmd(t *testing.T) {
	t.Run("with --yes", func(t *testing.T) {
		store, cleanup := setupTestServices(t)
		defer cleanup()
		slug := importPride(t)

		out, err := execute(t, "novel", "delete", slug, "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted pride-and-prejudice")

		exists, err := store.SlugExists(context.Background(), slug)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("confirmed", func(t *testing.T) {
		store, cleanup := setupTestServices(t)
		defer cleanup()
		slug := importPride(t)

		rootCmd.SetIn(strings.NewReader("y\n"))
		out, err := execute(t, "novel", "delete", slug)
		require.NoError(t, err)
		assert.Contains(t, out, "[y/N]")

		exists, err := store.SlugExists(context.Background(), slug)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("declined", func(t *testing.T) {
		store, cleanup := setupTestServices(t)
		defer cleanup()
		slug := importPride(t)

		rootCmd.SetIn(strings.NewReader("\n"))
		out, err := execute(t, "novel", "delete", slug)
		require.NoError(t, err)
		assert.Contains(t, out, "Cancelled.")

		exists, err := store.SlugExists(context.Background(), slug)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("missing novel", func(t *testing.T) {
		_, cleanup := setupTestServices(t)
		defer cleanup()

		_, err := execute(t, "novel", "delete", "missing", "-y")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete novel")
	})
}

func TestNovelAddChapterCmd(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	slug := importPride(t)

	rootCmd.SetIn(strings.NewReader("Elizabeth's spirits soon rising to playfulness again."))
	out, err := execute(t, "novel", "add-chapter", slug, "--title", "Afterword")
	require.NoError(t, err)
	assert.Contains(t, out, `Added chapter 4 "Afterword" as afterword`)
	resetFlags()

	path := writeBook(t, "extra.txt", "A second appendix.")
	out, err = execute(t, "novel", "add-chapter", slug, "--title", "Appendix", "--file", path, "--number", "10")
	require.NoError(t, err)
	assert.Contains(t, out, `Added chapter 10 "Appendix" as appendix`)
	resetFlags()

	out, err = execute(t, "novel", "show", slug)
	require.NoError(t, err)
	assert.Contains(t, out, "Chapters:    5")
	assert.Contains(t, out, fmt.Sprintf("%3d  %-40s %s", 10, "Appendix", "appendix"))
}

func TestNovelAddChapterCmd_RequiresTitle(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "novel", "add-chapter", "emma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"title" not set`)
}
