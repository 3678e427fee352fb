package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/views/chapters"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/views/library"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/views/reader"
)

// App is the TUI application following the Elm architecture.
// It routes messages between the library, chapter list and reader views.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	libraryView  *library.View
	chaptersView *chapters.View
	readerView   *reader.View

	currentView messages.ViewType
	width       int
	height      int
	ready       bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keys:         km,
		libraryView:  library.NewView(s, km, ports.Library),
		chaptersView: chapters.NewView(s, km, ports.Library, ports.Bookmarks),
		readerView:   reader.NewView(s, km, ports.Library, ports.Bookmarks),
		currentView:  messages.ViewLibrary,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("folio"),
		a.libraryView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewLibrary:
			a.libraryView, cmd = a.libraryView.Update(msg)
		case messages.ViewChapters:
			a.chaptersView, cmd = a.chaptersView.Update(msg)
		case messages.ViewReader:
			a.readerView, cmd = a.readerView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewLibrary {
			return a, a.libraryView.Init()
		}
		return a, nil

	case messages.NovelSelected:
		a.currentView = messages.ViewChapters
		return a, a.chaptersView.SetNovel(msg.Slug)

	case messages.ChapterSelected:
		a.currentView = messages.ViewReader
		return a, a.readerView.Open(msg.NovelSlug, msg.ChapterSlug, msg.Page)

	case messages.NovelsLoaded:
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd

	case messages.BookLoaded:
		a.chaptersView, cmd = a.chaptersView.Update(msg)
		return a, cmd

	case messages.PageLoaded:
		a.readerView, cmd = a.readerView.Update(msg)
		return a, cmd

	case messages.BookmarkSaved:
		a.readerView, _ = a.readerView.Update(msg)
		a.chaptersView, cmd = a.chaptersView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blink and similar ticks go to the active view.
	switch a.currentView {
	case messages.ViewLibrary:
		a.libraryView, cmd = a.libraryView.Update(msg)
	case messages.ViewChapters:
		a.chaptersView, cmd = a.chaptersView.Update(msg)
	case messages.ViewReader:
		a.readerView, cmd = a.readerView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewChapters:
		return a.chaptersView.View()
	case messages.ViewReader:
		return a.readerView.View()
	default:
		return a.libraryView.View()
	}
}

// Run starts the TUI on the alternate screen.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.libraryView.SetDimensions(width, height)
	a.chaptersView.SetDimensions(width, height)
	a.readerView.SetDimensions(width, height)
}
