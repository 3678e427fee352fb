package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure the stores implement the interfaces.
var (
	_ driven.NovelStore    = (*NovelStore)(nil)
	_ driven.BookmarkStore = (*bookmarkStore)(nil)
)

// NovelStore is an in-memory implementation of driven.NovelStore.
// Bookmarks share its lock so that deleting a novel removes its bookmark.
type NovelStore struct {
	mu        sync.RWMutex
	novels    map[string]domain.Novel
	chapters  map[string][]domain.Chapter
	bookmarks map[string]domain.Bookmark
}

// NewNovelStore creates a new in-memory novel store.
func NewNovelStore() *NovelStore {
	return &NovelStore{
		novels:    make(map[string]domain.Novel),
		chapters:  make(map[string][]domain.Chapter),
		bookmarks: make(map[string]domain.Bookmark),
	}
}

// Bookmarks returns a BookmarkStore backed by this store.
func (s *NovelStore) Bookmarks() driven.BookmarkStore {
	return &bookmarkStore{store: s}
}

// SaveNovel stores or updates a novel.
func (s *NovelStore) SaveNovel(_ context.Context, novel *domain.Novel) error {
	if novel == nil || novel.Slug == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.novels[novel.Slug] = *novel
	return nil
}

// GetNovel retrieves a novel by slug.
func (s *NovelStore) GetNovel(_ context.Context, slug string) (*domain.Novel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	novel, ok := s.novels[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &novel, nil
}

// SlugExists reports whether a novel uses slug.
func (s *NovelStore) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.novels[slug]
	return ok, nil
}

// ListNovels returns one page of matching novels, newest update first.
func (s *NovelStore) ListNovels(_ context.Context, opts domain.ListOptions) ([]domain.Novel, int, error) {
	opts = opts.Normalised()
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	s.mu.RLock()
	matched := make([]domain.Novel, 0, len(s.novels))
	for _, novel := range s.novels {
		if search == "" || matches(novel, search) {
			matched = append(matched, novel)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
		return matched[i].Slug < matched[j].Slug
	})

	total := len(matched)
	start := opts.Offset()
	if start >= total {
		return []domain.Novel{}, total, nil
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matches(novel domain.Novel, search string) bool {
	return strings.Contains(strings.ToLower(novel.Title), search) ||
		strings.Contains(strings.ToLower(novel.Description), search) ||
		strings.Contains(strings.ToLower(novel.Author), search)
}

// DeleteNovel removes a novel with its chapters and bookmark.
func (s *NovelStore) DeleteNovel(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.novels, slug)
	delete(s.chapters, slug)
	delete(s.bookmarks, slug)
	return nil
}

// SaveChapters stores or updates chapters, matched by novel and chapter slug.
func (s *NovelStore) SaveChapters(_ context.Context, chapters []domain.Chapter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range chapters {
		if ch.NovelSlug == "" || ch.Slug == "" {
			return domain.ErrInvalidInput
		}
		existing := s.chapters[ch.NovelSlug]
		replaced := false
		for i := range existing {
			if existing[i].Slug == ch.Slug {
				existing[i] = ch
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, ch)
		}
		s.chapters[ch.NovelSlug] = existing
	}
	return nil
}

// GetChapters returns the chapters of a novel ordered by number.
func (s *NovelStore) GetChapters(_ context.Context, novelSlug string) ([]domain.Chapter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chapters := append([]domain.Chapter(nil), s.chapters[novelSlug]...)
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Number < chapters[j].Number
	})
	return chapters, nil
}

// GetChapter retrieves a single chapter.
func (s *NovelStore) GetChapter(_ context.Context, novelSlug, chapterSlug string) (*domain.Chapter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.chapters[novelSlug] {
		if ch.Slug == chapterSlug {
			return &ch, nil
		}
	}
	return nil, domain.ErrNotFound
}

// bookmarkStore implements driven.BookmarkStore on a NovelStore.
type bookmarkStore struct {
	store *NovelStore
}

// Save stores or replaces the bookmark for its novel.
func (b *bookmarkStore) Save(_ context.Context, bookmark domain.Bookmark) error {
	if bookmark.NovelSlug == "" {
		return domain.ErrInvalidInput
	}
	if bookmark.UpdatedAt.IsZero() {
		bookmark.UpdatedAt = time.Now().UTC()
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	b.store.bookmarks[bookmark.NovelSlug] = bookmark
	return nil
}

// Get retrieves the bookmark for a novel.
func (b *bookmarkStore) Get(_ context.Context, novelSlug string) (*domain.Bookmark, error) {
	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	bookmark, ok := b.store.bookmarks[novelSlug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &bookmark, nil
}

// Delete removes the bookmark for a novel.
func (b *bookmarkStore) Delete(_ context.Context, novelSlug string) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	delete(b.store.bookmarks, novelSlug)
	return nil
}
