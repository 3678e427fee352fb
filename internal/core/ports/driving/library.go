package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// LibraryService browses and edits stored novels.
type LibraryService interface {
	// List returns one page of novels matching opts.
	List(ctx context.Context, opts domain.ListOptions) (*domain.NovelPage, error)

	// Get returns a novel with its chapters in reading order.
	Get(ctx context.Context, slug string) (*domain.NovelWithChapters, error)

	// Chapter returns a chapter with its neighbours.
	Chapter(ctx context.Context, novelSlug, chapterSlug string) (*domain.ChapterView, error)

	// ReadPage returns one display page of a chapter. page is 1-based.
	ReadPage(ctx context.Context, novelSlug, chapterSlug string, page int) (*domain.ChapterPage, error)

	// Delete removes a novel and everything stored for it.
	Delete(ctx context.Context, slug string) error

	// AddChapter appends a chapter to a novel. A number below 1 means the
	// chapter after the current last one.
	AddChapter(ctx context.Context, novelSlug, title, content string, number int) (*domain.Chapter, error)
}

// BookmarkService records where the reader stopped.
type BookmarkService interface {
	// Save records the reading position in a novel.
	Save(ctx context.Context, novelSlug, chapterSlug string, page int) (*domain.Bookmark, error)

	// Get returns the reading position in a novel.
	Get(ctx context.Context, novelSlug string) (*domain.Bookmark, error)

	// Remove forgets the reading position in a novel.
	Remove(ctx context.Context, novelSlug string) error
}
