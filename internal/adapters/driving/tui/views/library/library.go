// Package library provides the novel listing view for the TUI.
package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// View lists the novels in the library with a search filter.
type View struct {
	styles  *styles.Styles
	keys    *keymap.KeyMap
	library driving.LibraryService

	search   textinput.Model
	page     *domain.NovelPage
	pageNum  int
	selected int
	width    int
	height   int
	loading  bool
	err      error
}

// NewView creates a new library view.
func NewView(s *styles.Styles, km *keymap.KeyMap, library driving.LibraryService) *View {
	search := textinput.New()
	search.Placeholder = "title, author or description"
	search.Prompt = "/ "
	search.CharLimit = 100

	return &View{
		styles:  s,
		keys:    km,
		library: library,
		search:  search,
		pageNum: 1,
	}
}

// Init loads the first page of the listing.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load(v.search.Value(), v.pageNum)
}

// load fetches a listing page. The query and page are captured so the
// command does not read view state from another goroutine.
func (v *View) load(query string, page int) tea.Cmd {
	library := v.library
	return func() tea.Msg {
		if library == nil {
			return messages.NovelsLoaded{Err: fmt.Errorf("library service not available")}
		}
		result, err := library.List(context.Background(), domain.ListOptions{Search: query, Page: page})
		return messages.NovelsLoaded{Page: result, Err: err}
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.NovelsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.page = msg.Page
			v.selected = 0
		}
		return v, nil

	case tea.KeyMsg:
		if v.search.Focused() {
			return v.handleSearchKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleSearchKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.search.Blur()
		v.pageNum = 1
		return v, v.Init()
	case tea.KeyEsc:
		v.search.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	novels := v.Novels()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	case key.Matches(msg, v.keys.Search):
		return v, v.search.Focus()
	case key.Matches(msg, v.keys.Up):
		if v.selected > 0 {
			v.selected--
		}
	case key.Matches(msg, v.keys.Down):
		if v.selected < len(novels)-1 {
			v.selected++
		}
	case key.Matches(msg, v.keys.NextPage):
		if v.page != nil && v.pageNum < v.page.Pages {
			v.pageNum++
			return v, v.Init()
		}
	case key.Matches(msg, v.keys.PrevPage):
		if v.pageNum > 1 {
			v.pageNum--
			return v, v.Init()
		}
	case key.Matches(msg, v.keys.Select):
		if v.selected < len(novels) {
			slug := novels[v.selected].Slug
			return v, func() tea.Msg { return messages.NovelSelected{Slug: slug} }
		}
	}
	return v, nil
}

// View renders the library view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Library"))
	b.WriteString("\n\n")
	b.WriteString(v.search.View())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.Novels()) == 0:
		b.WriteString(v.styles.Muted.Render("No novels. Import one with: folio import <url-or-file>"))
	default:
		for i, novel := range v.Novels() {
			details := v.styles.Muted.Render(fmt.Sprintf("%s · %d chapters", novel.Author, novel.ChapterCount))
			if i == v.selected {
				b.WriteString(v.styles.Selected.Render("> "+novel.Title) + "  " + details)
			} else {
				b.WriteString("  " + novel.Title + "  " + details)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Page %d of %d · %d novels",
			v.page.Page, max(v.page.Pages, 1), v.page.Total)))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keys.LibraryHelp())))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.search.Width = max(width-10, 20)
}

// Novels returns the novels on the current page.
func (v *View) Novels() []domain.Novel {
	if v.page == nil {
		return nil
	}
	return v.page.Novels
}

// Selected returns the index of the highlighted novel.
func (v *View) Selected() int {
	return v.selected
}

// Query returns the search filter text.
func (v *View) Query() string {
	return v.search.Value()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
