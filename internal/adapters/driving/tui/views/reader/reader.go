// Package reader provides the paginated chapter reader for the TUI.
package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

const (
	// reservedLines covers the title, page frame and footer.
	reservedLines = 7

	// maxTextWidth keeps lines at a readable measure on wide terminals.
	maxTextWidth = 80
)

// View shows one page of a chapter in a scrollable viewport.
type View struct {
	styles    *styles.Styles
	keys      *keymap.KeyMap
	library   driving.LibraryService
	bookmarks driving.BookmarkService

	viewport viewport.Model
	page     *domain.ChapterPage
	status   string
	loading  bool
	err      error
	width    int
	height   int
}

// NewView creates a new reader view.
func NewView(s *styles.Styles, km *keymap.KeyMap, library driving.LibraryService, bookmarks driving.BookmarkService) *View {
	return &View{
		styles:    s,
		keys:      km,
		library:   library,
		bookmarks: bookmarks,
		viewport:  viewport.New(maxTextWidth, 20),
	}
}

// Open loads a page of a chapter. page is 1-based.
func (v *View) Open(novelSlug, chapterSlug string, page int) tea.Cmd {
	v.loading = true
	v.err = nil
	v.status = ""

	library := v.library
	return func() tea.Msg {
		result, err := library.ReadPage(context.Background(), novelSlug, chapterSlug, max(page, 1))
		return messages.PageLoaded{Page: result, Err: err}
	}
}

// Update handles messages for the reader.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.PageLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.page = msg.Page
			v.render()
		}
		return v, nil

	case messages.BookmarkSaved:
		if msg.Err != nil {
			v.status = "Bookmark failed: " + msg.Err.Error()
		} else {
			v.status = fmt.Sprintf("Bookmarked page %d", msg.Bookmark.Page)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if key.Matches(msg, v.keys.Back) {
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewChapters} }
	}
	if key.Matches(msg, v.keys.Quit) {
		return v, func() tea.Msg { return messages.Quit{} }
	}
	if v.page == nil || v.loading {
		return v, nil
	}

	p := v.page
	novel := p.Novel.Slug
	switch {
	case key.Matches(msg, v.keys.NextPage):
		if p.Page < p.Pages {
			return v, v.Open(novel, p.Chapter.Slug, p.Page+1)
		}
		if p.Next != nil {
			return v, v.Open(novel, p.Next.Slug, 1)
		}
	case key.Matches(msg, v.keys.PrevPage):
		if p.Page > 1 {
			return v, v.Open(novel, p.Chapter.Slug, p.Page-1)
		}
		if p.Prev != nil {
			return v, v.Open(novel, p.Prev.Slug, 1)
		}
	case key.Matches(msg, v.keys.NextChapter):
		if p.Next != nil {
			return v, v.Open(novel, p.Next.Slug, 1)
		}
	case key.Matches(msg, v.keys.PrevChapter):
		if p.Prev != nil {
			return v, v.Open(novel, p.Prev.Slug, 1)
		}
	case key.Matches(msg, v.keys.Bookmark):
		return v, v.saveBookmark()
	default:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) saveBookmark() tea.Cmd {
	if v.bookmarks == nil {
		return nil
	}
	bookmarks := v.bookmarks
	novel, chapter, page := v.page.Novel.Slug, v.page.Chapter.Slug, v.page.Page
	return func() tea.Msg {
		saved, err := bookmarks.Save(context.Background(), novel, chapter, page)
		return messages.BookmarkSaved{Bookmark: saved, Err: err}
	}
}

// render wraps the page text to the viewport width.
func (v *View) render() {
	if v.page == nil {
		return
	}
	wrapped := lipgloss.NewStyle().Width(v.viewport.Width).Render(v.page.Text)
	v.viewport.SetContent(wrapped)
	v.viewport.GotoTop()
}

// View renders the reader.
func (v *View) View() string {
	var b strings.Builder

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.page == nil:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	default:
		p := v.page
		b.WriteString(v.styles.Title.Render(p.Novel.Title))
		b.WriteString(v.styles.Muted.Render(" · "))
		b.WriteString(v.styles.Subtitle.Render(p.Chapter.Title))
		b.WriteString("\n")
		b.WriteString(v.styles.Page.Render(v.viewport.View()))
		b.WriteString("\n")
		footer := fmt.Sprintf("Page %d of %d", p.Page, p.Pages)
		if v.status != "" {
			footer += " · " + v.status
		}
		b.WriteString(v.styles.Muted.Render(footer))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keys.ReaderHelp())))
	return b.String()
}

// SetDimensions sizes the viewport to the terminal.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = min(max(width-6, 20), maxTextWidth)
	v.viewport.Height = max(height-reservedLines, 3)
	v.render()
}

// Page returns the page being shown.
func (v *View) Page() *domain.ChapterPage {
	return v.page
}

// Status returns the last status message.
func (v *View) Status() string {
	return v.status
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
