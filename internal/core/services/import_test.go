package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/postprocessors"
)

const prideURL = "https://www.gutenberg.org/files/1342/1342-0.txt"

const prideText = `The Project Gutenberg eBook of Pride and Prejudice, by Jane Austen

Title: Pride and Prejudice
Author: Jane Austen

*** START OF THE PROJECT GUTENBERG EBOOK PRIDE AND PREJUDICE ***

CHAPTER I.

It is a truth universally acknowledged, that a single man in possession
of a good fortune, must be in want of a wife.

CHAPTER II.

Mr. Bennet was among the earliest of those who waited on Mr. Bingley.

CHAPTER III.

Not all that Mrs. Bennet, however, with the assistance of her five
daughters, could ask on the subject was sufficient.

*** END OF THE PROJECT GUTENBERG EBOOK PRIDE AND PREJUDICE ***

This file should be named 1342-0.txt.
`

// mockFetcher serves documents from a map.
type mockFetcher struct {
	docs  map[string]string
	err   error
	calls []string
}

func (m *mockFetcher) Fetch(_ context.Context, source string) (*domain.RawDocument, error) {
	m.calls = append(m.calls, source)
	if m.err != nil {
		return nil, m.err
	}
	text, ok := m.docs[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFetchFailed, source)
	}
	return &domain.RawDocument{URI: source, MIMEType: "text/plain", Text: text}, nil
}

// takenSlugStore reports every slug as taken.
type takenSlugStore struct {
	*memory.NovelStore
	checks int
}

func (s *takenSlugStore) SlugExists(context.Context, string) (bool, error) {
	s.checks++
	return true, nil
}

func defaultPipeline(t *testing.T) *postprocessors.Pipeline {
	t.Helper()
	r := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(r)
	p, err := r.BuildPipeline(domain.DefaultPostProcessors(), nil)
	require.NoError(t, err)
	return p
}

func newImportService(t *testing.T, docs map[string]string, opts ...ImportOption) (*ImportService, *memory.NovelStore, *mockFetcher) {
	t.Helper()
	store := memory.NewNovelStore()
	fetcher := &mockFetcher{docs: docs}
	svc := NewImportService(fetcher, store, defaultPipeline(t), domain.DefaultAppSettings().Import, opts...)
	return svc, store, fetcher
}

func TestImportService_Import(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, store, _ := newImportService(t, map[string]string{prideURL: prideText},
		WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	result, err := svc.Import(ctx, domain.ImportRequest{Source: prideURL})
	require.NoError(t, err)

	assert.Equal(t, "pride-and-prejudice", result.Novel.Slug)
	assert.Equal(t, "Pride and Prejudice", result.Novel.Title)
	assert.Equal(t, "Jane Austen", result.Novel.Author)
	assert.Equal(t, domain.NovelStatusCompleted, result.Novel.Status)
	assert.Equal(t, prideURL, result.Novel.SourceURL)
	assert.True(t, result.Novel.Imported)
	assert.Equal(t, fixed, result.Novel.ImportedAt)
	assert.NotEmpty(t, result.Novel.ID)
	assert.Equal(t, 3, result.ChapterCount)
	assert.Equal(t, []string{"Chapter 1", "Chapter 2", "Chapter 3"}, result.ChapterTitles)
	assert.Empty(t, result.Collisions)

	novel, err := store.GetNovel(ctx, "pride-and-prejudice")
	require.NoError(t, err)
	assert.Equal(t, 3, novel.ChapterCount)

	chapters, err := store.GetChapters(ctx, "pride-and-prejudice")
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, "chapter-1", chapters[0].Slug)
	assert.Equal(t, 1, chapters[0].Number)
	assert.True(t, chapters[0].Imported)
	assert.True(t, strings.HasPrefix(chapters[0].Content, "It is a truth universally acknowledged"))
	assert.Equal(t, 13, chapters[1].Metadata["word_count"])
}

func TestImportService_TitleOverride(t *testing.T) {
	svc, _, _ := newImportService(t, map[string]string{prideURL: prideText})

	result, err := svc.Import(context.Background(), domain.ImportRequest{Source: prideURL, Title: "  My   Own Title "})
	require.NoError(t, err)

	assert.Equal(t, "My Own Title", result.Novel.Title)
	assert.Equal(t, "my-own-title", result.Novel.Slug)
}

func TestImportService_SlugVariants(t *testing.T) {
	svc, _, _ := newImportService(t, map[string]string{prideURL: prideText})
	ctx := context.Background()

	first, err := svc.Import(ctx, domain.ImportRequest{Source: prideURL})
	require.NoError(t, err)
	second, err := svc.Import(ctx, domain.ImportRequest{Source: prideURL})
	require.NoError(t, err)
	third, err := svc.Import(ctx, domain.ImportRequest{Source: prideURL})
	require.NoError(t, err)

	assert.Equal(t, "pride-and-prejudice", first.Novel.Slug)
	assert.Equal(t, "pride-and-prejudice-1", second.Novel.Slug)
	assert.Equal(t, "pride-and-prejudice-2", third.Novel.Slug)
}

func TestImportService_SlugTimestampFallback(t *testing.T) {
	fixed := time.UnixMilli(1700000000123)
	store := &takenSlugStore{NovelStore: memory.NewNovelStore()}
	svc := NewImportService(&mockFetcher{docs: map[string]string{prideURL: prideText}}, store, nil,
		domain.DefaultAppSettings().Import, WithClock(func() time.Time { return fixed }))

	result, err := svc.Import(context.Background(), domain.ImportRequest{Source: prideURL})
	require.NoError(t, err)

	assert.Equal(t, "pride-and-prejudice-1700000000123", result.Novel.Slug)
	assert.Equal(t, 101, store.checks)
}

func TestImportService_GenericTitleSlug(t *testing.T) {
	body := "Title: Untitled\n\n" + strings.Repeat("A line of prose that carries the story onwards.\n", 3)
	source := "https://www.gutenberg.org/files/98/98-0.txt"

	svc, _, _ := newImportService(t, map[string]string{source: body, "notes.txt": body},
		WithTokenSource(func() string { return "abc123" }))
	ctx := context.Background()

	result, err := svc.Import(ctx, domain.ImportRequest{Source: source})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", result.Novel.Title)
	assert.Equal(t, "imported-novel-98", result.Novel.Slug)

	result, err = svc.Import(ctx, domain.ImportRequest{Source: "notes.txt"})
	require.NoError(t, err)
	assert.Equal(t, "imported-novel-abc123", result.Novel.Slug)
}

func TestImportService_SourceChecks(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   error
	}{
		{"empty", "   ", domain.ErrInvalidInput},
		{"disallowed host", "https://example.com/book.txt", domain.ErrUnsupportedSource},
		{"lookalike host", "https://evilgutenberg.org/book.txt", domain.ErrUnsupportedSource},
		{"unsupported scheme", "ftp://gutenberg.org/book.txt", domain.ErrUnsupportedSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, fetcher := newImportService(t, nil)

			_, err := svc.Import(context.Background(), domain.ImportRequest{Source: tt.source})
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, fetcher.calls)
		})
	}
}

func TestImportService_FetchError(t *testing.T) {
	svc, store, fetcher := newImportService(t, nil)
	fetcher.err = fmt.Errorf("%w: status 404", domain.ErrFetchFailed)

	_, err := svc.Import(context.Background(), domain.ImportRequest{Source: prideURL})
	assert.ErrorIs(t, err, domain.ErrFetchFailed)

	page, _, _ := store.ListNovels(context.Background(), domain.ListOptions{})
	assert.Empty(t, page)
}

func TestImportService_ContentTooShort(t *testing.T) {
	svc, _, _ := newImportService(t, map[string]string{"short.txt": "Tiny.\n"})

	_, err := svc.Import(context.Background(), domain.ImportRequest{Source: "short.txt"})
	assert.ErrorIs(t, err, domain.ErrContentTooShort)
}

func TestImportService_ReportsCollisions(t *testing.T) {
	text := "CHAPTER I\nThe first body that shares a number.\n" +
		"CHAPTER II\nThe body of the real second chapter.\n" +
		"CHAPTER I\nThe second body that shares a number."
	svc, store, _ := newImportService(t, map[string]string{"dup.txt": text})
	ctx := context.Background()

	result, err := svc.Import(ctx, domain.ImportRequest{Source: "dup.txt", Title: "Duplicates"})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, result.Collisions)

	chapters, err := store.GetChapters(ctx, "duplicates")
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, []string{"chapter-1", "chapter-1-2", "chapter-2"},
		[]string{chapters[0].Slug, chapters[1].Slug, chapters[2].Slug})
	assert.Equal(t, true, chapters[0].Metadata["duplicate_number"])
	assert.Equal(t, true, chapters[1].Metadata["duplicate_number"])
	assert.Nil(t, chapters[2].Metadata["duplicate_number"])
}

func TestImportService_FirstFiveTitles(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 7; i++ {
		fmt.Fprintf(&b, "CHAPTER %d\nThis is the body of chapter number %d.\n", i, i)
	}
	svc, _, _ := newImportService(t, map[string]string{"seven.txt": b.String()})

	result, err := svc.Import(context.Background(), domain.ImportRequest{Source: "seven.txt", Title: "Seven"})
	require.NoError(t, err)

	assert.Equal(t, 7, result.ChapterCount)
	assert.Equal(t, []string{"Chapter 1", "Chapter 2", "Chapter 3", "Chapter 4", "Chapter 5"}, result.ChapterTitles)
}

type failingProcessor struct{}

func (failingProcessor) Name() string { return "failing" }
func (failingProcessor) Process(context.Context, *domain.Novel, []domain.Chapter) ([]domain.Chapter, error) {
	return nil, errors.New("boom")
}

func TestImportService_PipelineError(t *testing.T) {
	store := memory.NewNovelStore()
	svc := NewImportService(&mockFetcher{docs: map[string]string{prideURL: prideText}}, store,
		postprocessors.NewPipeline(failingProcessor{}), domain.DefaultAppSettings().Import)

	_, err := svc.Import(context.Background(), domain.ImportRequest{Source: prideURL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "processor failing")

	exists, err := store.SlugExists(context.Background(), "pride-and-prejudice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestImportService_NoPipelineStillSlugs(t *testing.T) {
	store := memory.NewNovelStore()
	svc := NewImportService(&mockFetcher{docs: map[string]string{prideURL: prideText}}, store, nil,
		domain.DefaultAppSettings().Import)
	ctx := context.Background()

	_, err := svc.Import(ctx, domain.ImportRequest{Source: prideURL})
	require.NoError(t, err)

	ch, err := store.GetChapter(ctx, "pride-and-prejudice", "chapter-2")
	require.NoError(t, err)
	assert.Equal(t, 2, ch.Number)
}

func TestImportService_Preview(t *testing.T) {
	svc, store, _ := newImportService(t, map[string]string{prideURL: prideText})
	ctx := context.Background()

	preview, err := svc.Preview(ctx, domain.ImportRequest{Source: prideURL})
	require.NoError(t, err)

	assert.Equal(t, "Pride and Prejudice", preview.Metadata.Title)
	assert.Len(t, preview.Chapters, 3)
	assert.Positive(t, preview.BodyLength)

	exists, err := store.SlugExists(ctx, "pride-and-prejudice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestImportService_Parse(t *testing.T) {
	svc, _, fetcher := newImportService(t, nil)

	preview, err := svc.Parse(context.Background(), "Tiny.", "", "Fallback")
	require.NoError(t, err)

	assert.Equal(t, "Fallback", preview.Metadata.Title)
	require.Len(t, preview.Chapters, 1)
	assert.Equal(t, "Tiny.", preview.Chapters[0].Content)
	assert.Empty(t, fetcher.calls)
}

func TestHostAllowed(t *testing.T) {
	allowed := []string{"gutenberg.org", " Example.COM "}

	assert.True(t, HostAllowed("gutenberg.org", allowed))
	assert.True(t, HostAllowed("www.gutenberg.org", allowed))
	assert.True(t, HostAllowed("WWW.GUTENBERG.ORG.", allowed))
	assert.True(t, HostAllowed("example.com", allowed))
	assert.False(t, HostAllowed("evilgutenberg.org", allowed))
	assert.False(t, HostAllowed("gutenberg.org.evil.net", allowed))
	assert.False(t, HostAllowed("gutenberg.org", nil))
}
