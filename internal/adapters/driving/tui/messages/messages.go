// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/folio/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLibrary lists the novels in the library.
	ViewLibrary ViewType = iota
	// ViewChapters lists the chapters of one novel.
	ViewChapters
	// ViewReader shows one page of a chapter.
	ViewReader
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLibrary:
		return "library"
	case ViewChapters:
		return "chapters"
	case ViewReader:
		return "reader"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// NovelsLoaded carries a page of the library listing.
type NovelsLoaded struct {
	Page *domain.NovelPage
	Err  error
}

// NovelSelected is sent when a novel is chosen from the library.
type NovelSelected struct {
	Slug string
}

// BookLoaded carries a novel with its chapters and saved bookmark, if any.
type BookLoaded struct {
	Book     *domain.NovelWithChapters
	Bookmark *domain.Bookmark
	Err      error
}

// ChapterSelected is sent to open a chapter at a page.
type ChapterSelected struct {
	NovelSlug   string
	ChapterSlug string
	Page        int
}

// PageLoaded carries one page of a chapter.
type PageLoaded struct {
	Page *domain.ChapterPage
	Err  error
}

// BookmarkSaved reports the outcome of saving the reading position.
type BookmarkSaved struct {
	Bookmark *domain.Bookmark
	Err      error
}

// ErrorOccurred reports an error to display.
type ErrorOccurred struct {
	Err error
}

// Quit requests application exit.
type Quit struct{}
