package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// NovelStore persists novels and their chapters.
// Novels are addressed by slug, chapters by novel slug and chapter slug.
type NovelStore interface {
	// SaveNovel stores or updates a novel.
	SaveNovel(ctx context.Context, novel *domain.Novel) error

	// GetNovel retrieves a novel by slug.
	// Returns domain.ErrNotFound if no novel has the slug.
	GetNovel(ctx context.Context, slug string) (*domain.Novel, error)

	// SlugExists reports whether a novel already uses slug.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListNovels returns one page of novels, newest update first, and the
	// total number of novels matching opts.Search.
	ListNovels(ctx context.Context, opts domain.ListOptions) ([]domain.Novel, int, error)

	// DeleteNovel removes a novel with its chapters and bookmark.
	DeleteNovel(ctx context.Context, slug string) error

	// SaveChapters stores or updates chapters.
	SaveChapters(ctx context.Context, chapters []domain.Chapter) error

	// GetChapters returns the chapters of a novel ordered by number.
	GetChapters(ctx context.Context, novelSlug string) ([]domain.Chapter, error)

	// GetChapter retrieves a single chapter.
	// Returns domain.ErrNotFound if it does not exist.
	GetChapter(ctx context.Context, novelSlug, chapterSlug string) (*domain.Chapter, error)
}

// BookmarkStore persists reading positions, one per novel.
type BookmarkStore interface {
	// Save stores or replaces the bookmark for its novel.
	Save(ctx context.Context, bookmark domain.Bookmark) error

	// Get retrieves the bookmark for a novel.
	// Returns domain.ErrNotFound if none is stored.
	Get(ctx context.Context, novelSlug string) (*domain.Bookmark, error)

	// Delete removes the bookmark for a novel.
	Delete(ctx context.Context, novelSlug string) error
}
