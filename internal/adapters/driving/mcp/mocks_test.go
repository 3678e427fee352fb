package mcp

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// mockImportService is a mock implementation of driving.ImportService.
type mockImportService struct {
	preview *domain.ImportPreview
	result  *domain.ImportResult
	err     error

	lastRequest domain.ImportRequest
	lastText    string
	lastTitle   string
}

func (m *mockImportService) Import(_ context.Context, req domain.ImportRequest) (*domain.ImportResult, error) {
	m.lastRequest = req
	return m.result, m.err
}

func (m *mockImportService) Preview(_ context.Context, req domain.ImportRequest) (*domain.ImportPreview, error) {
	m.lastRequest = req
	return m.preview, m.err
}

func (m *mockImportService) Parse(_ context.Context, text, _, title string) (*domain.ImportPreview, error) {
	m.lastText = text
	m.lastTitle = title
	return m.preview, m.err
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	novels []domain.Novel
	book   *domain.NovelWithChapters
	page   *domain.ChapterPage
	err    error

	listCalls   []domain.ListOptions
	readChapter string
	readPage    int
}

func (m *mockLibraryService) List(_ context.Context, opts domain.ListOptions) (*domain.NovelPage, error) {
	m.listCalls = append(m.listCalls, opts)
	if m.err != nil {
		return nil, m.err
	}
	opts = opts.Normalised()
	start := min(opts.Offset(), len(m.novels))
	end := min(start+opts.Limit, len(m.novels))
	return &domain.NovelPage{
		Novels: m.novels[start:end],
		Page:   opts.Page,
		Limit:  opts.Limit,
		Total:  len(m.novels),
		Pages:  (len(m.novels) + opts.Limit - 1) / opts.Limit,
	}, nil
}

func (m *mockLibraryService) Get(_ context.Context, _ string) (*domain.NovelWithChapters, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.book == nil {
		return nil, domain.ErrNotFound
	}
	return m.book, nil
}

func (m *mockLibraryService) Chapter(_ context.Context, _, _ string) (*domain.ChapterView, error) {
	if m.page == nil {
		return nil, domain.ErrNotFound
	}
	return &m.page.ChapterView, m.err
}

func (m *mockLibraryService) ReadPage(_ context.Context, _, chapterSlug string, page int) (*domain.ChapterPage, error) {
	m.readChapter = chapterSlug
	m.readPage = page
	if m.err != nil {
		return nil, m.err
	}
	if m.page == nil {
		return nil, domain.ErrNotFound
	}
	return m.page, nil
}

func (m *mockLibraryService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) AddChapter(_ context.Context, _, _, _ string, _ int) (*domain.Chapter, error) {
	return nil, m.err
}
