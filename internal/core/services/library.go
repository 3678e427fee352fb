package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/paginator"
	"github.com/custodia-labs/folio/internal/postprocessors/slugger"
	"github.com/custodia-labs/folio/internal/postprocessors/wordcount"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService browses and edits stored novels.
type LibraryService struct {
	store     driven.NovelStore
	paginator *paginator.Paginator
	listLimit int
	now       func() time.Time
}

// LibraryOption configures a LibraryService.
type LibraryOption func(*LibraryService)

// WithReaderPageSize sets the characters per chapter page.
func WithReaderPageSize(size int) LibraryOption {
	return func(s *LibraryService) {
		s.paginator = paginator.New(paginator.WithPageSize(size))
	}
}

// WithListLimit sets the default number of novels per listing page.
func WithListLimit(limit int) LibraryOption {
	return func(s *LibraryService) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}

// WithLibraryClock sets the time source.
func WithLibraryClock(now func() time.Time) LibraryOption {
	return func(s *LibraryService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewLibraryService creates a new library service.
func NewLibraryService(store driven.NovelStore, opts ...LibraryOption) *LibraryService {
	s := &LibraryService{
		store:     store,
		paginator: paginator.New(),
		listLimit: domain.DefaultListLimit,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns one page of novels matching opts.
func (s *LibraryService) List(ctx context.Context, opts domain.ListOptions) (*domain.NovelPage, error) {
	if opts.Limit < 1 {
		opts.Limit = s.listLimit
	}
	opts = opts.Normalised()

	novels, total, err := s.store.ListNovels(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list novels: %w", err)
	}

	return &domain.NovelPage{
		Novels: novels,
		Page:   opts.Page,
		Limit:  opts.Limit,
		Total:  total,
		Pages:  (total + opts.Limit - 1) / opts.Limit,
	}, nil
}

// Get returns a novel with its chapters in reading order.
func (s *LibraryService) Get(ctx context.Context, slug string) (*domain.NovelWithChapters, error) {
	novel, err := s.store.GetNovel(ctx, slug)
	if err != nil {
		return nil, err
	}
	chapters, err := s.store.GetChapters(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get chapters: %w", err)
	}
	return &domain.NovelWithChapters{Novel: *novel, Chapters: chapters}, nil
}

// Chapter returns a chapter with the chapters before and after it in
// reading order.
func (s *LibraryService) Chapter(ctx context.Context, novelSlug, chapterSlug string) (*domain.ChapterView, error) {
	book, err := s.Get(ctx, novelSlug)
	if err != nil {
		return nil, err
	}

	for i := range book.Chapters {
		if book.Chapters[i].Slug != chapterSlug {
			continue
		}
		view := &domain.ChapterView{Novel: book.Novel, Chapter: book.Chapters[i]}
		if i > 0 {
			prev := book.Chapters[i-1]
			view.Prev = &prev
		}
		if i+1 < len(book.Chapters) {
			next := book.Chapters[i+1]
			view.Next = &next
		}
		return view, nil
	}
	return nil, fmt.Errorf("chapter %q of %q: %w", chapterSlug, novelSlug, domain.ErrNotFound)
}

// ReadPage returns one display page of a chapter. page is 1-based.
func (s *LibraryService) ReadPage(ctx context.Context, novelSlug, chapterSlug string, page int) (*domain.ChapterPage, error) {
	view, err := s.Chapter(ctx, novelSlug, chapterSlug)
	if err != nil {
		return nil, err
	}

	pages := s.paginator.Split(view.Chapter.Content)
	if page < 1 || page > len(pages) {
		return nil, fmt.Errorf("%w: page %d out of range 1-%d", domain.ErrInvalidInput, page, len(pages))
	}

	return &domain.ChapterPage{
		ChapterView: *view,
		Page:        page,
		Pages:       len(pages),
		Text:        pages[page-1],
	}, nil
}

// Delete removes a novel and everything stored for it.
func (s *LibraryService) Delete(ctx context.Context, slug string) error {
	if _, err := s.store.GetNovel(ctx, slug); err != nil {
		return err
	}
	if err := s.store.DeleteNovel(ctx, slug); err != nil {
		return fmt.Errorf("delete novel: %w", err)
	}
	return nil
}

// AddChapter appends a chapter to a novel. A number below 1 means the
// chapter after the current last one.
func (s *LibraryService) AddChapter(ctx context.Context, novelSlug, title, content string, number int) (*domain.Chapter, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" || novelSlug == "" {
		return nil, fmt.Errorf("%w: title, content and novel slug are required", domain.ErrInvalidInput)
	}

	book, err := s.Get(ctx, novelSlug)
	if err != nil {
		return nil, err
	}

	if number < 1 {
		number = 1
		if n := len(book.Chapters); n > 0 {
			number = book.Chapters[n-1].Number + 1
		}
	}

	now := s.now().UTC()
	chapter := domain.Chapter{
		ID:        uuid.NewString(),
		NovelSlug: novelSlug,
		Slug:      chapterSlug(title, number, book.Chapters),
		Title:     title,
		Content:   content,
		Number:    number,
		Metadata:  map[string]any{wordcount.MetadataKey: len(strings.Fields(content))},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveChapters(ctx, []domain.Chapter{chapter}); err != nil {
		return nil, fmt.Errorf("save chapter: %w", err)
	}

	novel := book.Novel
	novel.ChapterCount = len(book.Chapters) + 1
	novel.UpdatedAt = now
	if err := s.store.SaveNovel(ctx, &novel); err != nil {
		return nil, fmt.Errorf("update novel: %w", err)
	}
	return &chapter, nil
}

// chapterSlug derives a slug for a new chapter that no existing chapter uses.
func chapterSlug(title string, number int, existing []domain.Chapter) string {
	base := slugger.Slugify(title)
	if len(base) < 2 {
		base = fmt.Sprintf("chapter-%d", number)
	}

	taken := make(map[string]bool, len(existing))
	for _, ch := range existing {
		taken[ch.Slug] = true
	}

	slug := base
	for n := 2; taken[slug]; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	return slug
}
