package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ensure BookmarkService implements the interface.
var _ driving.BookmarkService = (*BookmarkService)(nil)

// BookmarkService records reading positions.
type BookmarkService struct {
	bookmarks driven.BookmarkStore
	novels    driven.NovelStore
	now       func() time.Time
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(bookmarks driven.BookmarkStore, novels driven.NovelStore) *BookmarkService {
	return &BookmarkService{
		bookmarks: bookmarks,
		novels:    novels,
		now:       time.Now,
	}
}

// Save records the reading position in a novel. The chapter must exist.
func (s *BookmarkService) Save(ctx context.Context, novelSlug, chapterSlug string, page int) (*domain.Bookmark, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1", domain.ErrInvalidInput)
	}
	if _, err := s.novels.GetChapter(ctx, novelSlug, chapterSlug); err != nil {
		return nil, err
	}

	bookmark := domain.Bookmark{
		NovelSlug:   novelSlug,
		ChapterSlug: chapterSlug,
		Page:        page,
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.bookmarks.Save(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("save bookmark: %w", err)
	}
	return &bookmark, nil
}

// Get returns the reading position in a novel.
func (s *BookmarkService) Get(ctx context.Context, novelSlug string) (*domain.Bookmark, error) {
	return s.bookmarks.Get(ctx, novelSlug)
}

// Remove forgets the reading position in a novel.
func (s *BookmarkService) Remove(ctx context.Context, novelSlug string) error {
	if _, err := s.bookmarks.Get(ctx, novelSlug); err != nil {
		return err
	}
	return s.bookmarks.Delete(ctx, novelSlug)
}
