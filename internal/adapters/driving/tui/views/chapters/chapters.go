// Package chapters provides the chapter list view for one novel.
package chapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// reservedLines is the height used by the header and footer.
const reservedLines = 8

// View lists the chapters of a novel.
type View struct {
	styles    *styles.Styles
	keys      *keymap.KeyMap
	library   driving.LibraryService
	bookmarks driving.BookmarkService

	book     *domain.NovelWithChapters
	bookmark *domain.Bookmark
	selected int
	offset   int
	width    int
	height   int
	loading  bool
	err      error
}

// NewView creates a new chapter list view.
func NewView(s *styles.Styles, km *keymap.KeyMap, library driving.LibraryService, bookmarks driving.BookmarkService) *View {
	return &View{
		styles:    s,
		keys:      km,
		library:   library,
		bookmarks: bookmarks,
	}
}

// SetNovel clears the view and loads the novel with its bookmark.
func (v *View) SetNovel(slug string) tea.Cmd {
	v.book = nil
	v.bookmark = nil
	v.selected = 0
	v.offset = 0
	v.err = nil
	v.loading = true

	library, bookmarks := v.library, v.bookmarks
	return func() tea.Msg {
		ctx := context.Background()
		book, err := library.Get(ctx, slug)
		if err != nil {
			return messages.BookLoaded{Err: err}
		}

		var bookmark *domain.Bookmark
		if bookmarks != nil {
			bookmark, err = bookmarks.Get(ctx, slug)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return messages.BookLoaded{Err: err}
			}
		}
		return messages.BookLoaded{Book: book, Bookmark: bookmark}
	}
}

// Update handles messages for the chapter list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.BookLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.book = msg.Book
			v.bookmark = msg.Bookmark
			v.selectBookmarked()
		}
		return v, nil

	case messages.BookmarkSaved:
		if msg.Err == nil {
			v.bookmark = msg.Bookmark
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewLibrary} }
	case key.Matches(msg, v.keys.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	case key.Matches(msg, v.keys.Up):
		if v.selected > 0 {
			v.selected--
		}
	case key.Matches(msg, v.keys.Down):
		if v.selected < len(v.Chapters())-1 {
			v.selected++
		}
	case key.Matches(msg, v.keys.Select):
		chapters := v.Chapters()
		if v.selected < len(chapters) {
			return v, open(v.book.Novel.Slug, chapters[v.selected].Slug, 1)
		}
	case key.Matches(msg, v.keys.Resume):
		if v.bookmark != nil {
			return v, open(v.bookmark.NovelSlug, v.bookmark.ChapterSlug, v.bookmark.Page)
		}
	}
	v.scrollToSelected()
	return v, nil
}

func open(novelSlug, chapterSlug string, page int) tea.Cmd {
	return func() tea.Msg {
		return messages.ChapterSelected{NovelSlug: novelSlug, ChapterSlug: chapterSlug, Page: page}
	}
}

// selectBookmarked highlights the bookmarked chapter, if any.
func (v *View) selectBookmarked() {
	if v.bookmark == nil {
		return
	}
	for i, ch := range v.Chapters() {
		if ch.Slug == v.bookmark.ChapterSlug {
			v.selected = i
			break
		}
	}
	v.scrollToSelected()
}

func (v *View) visibleLines() int {
	return max(v.height-reservedLines, 3)
}

func (v *View) scrollToSelected() {
	visible := v.visibleLines()
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+visible {
		v.offset = v.selected - visible + 1
	}
}

// View renders the chapter list.
func (v *View) View() string {
	var b strings.Builder

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.book != nil:
		novel := v.book.Novel
		b.WriteString(v.styles.Title.Render(novel.Title))
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render(novel.Author))
		b.WriteString("\n")
		if v.bookmark != nil {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Bookmark: %s, page %d", v.bookmark.ChapterSlug, v.bookmark.Page)))
		}
		b.WriteString("\n\n")

		chapters := v.Chapters()
		end := min(v.offset+v.visibleLines(), len(chapters))
		for i := v.offset; i < end; i++ {
			line := fmt.Sprintf("%4d. %s", chapters[i].Number, chapters[i].Title)
			if i == v.selected {
				b.WriteString(v.styles.Selected.Render(line))
			} else {
				b.WriteString(v.styles.Normal.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keys.ChaptersHelp())))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.scrollToSelected()
}

// Chapters returns the loaded chapters in reading order.
func (v *View) Chapters() []domain.Chapter {
	if v.book == nil {
		return nil
	}
	return v.book.Chapters
}

// Selected returns the index of the highlighted chapter.
func (v *View) Selected() int {
	return v.selected
}

// Bookmark returns the novel's saved reading position, if any.
func (v *View) Bookmark() *domain.Bookmark {
	return v.bookmark
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
