// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up and Down move through lists and scroll pages.
	Up   key.Binding
	Down key.Binding

	// Select opens the highlighted item.
	Select key.Binding

	// Search focuses the library filter.
	Search key.Binding

	// NextPage and PrevPage turn pages within a chapter.
	NextPage key.Binding
	PrevPage key.Binding

	// NextChapter and PrevChapter move between chapters.
	NextChapter key.Binding
	PrevChapter key.Binding

	// Bookmark saves the current reading position.
	Bookmark key.Binding

	// Resume opens the bookmarked chapter.
	Resume key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", " ", "space"),
			key.WithHelp("→/l", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous page"),
		),
		NextChapter: key.NewBinding(
			key.WithKeys("]", "n"),
			key.WithHelp("]", "next chapter"),
		),
		PrevChapter: key.NewBinding(
			key.WithKeys("[", "p"),
			key.WithHelp("[", "previous chapter"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume"),
		),
	}
}

// LibraryHelp returns keybindings for the library view.
func (k *KeyMap) LibraryHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Search, k.Quit}
}

// ChaptersHelp returns keybindings for the chapter list.
func (k *KeyMap) ChaptersHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Resume, k.Back}
}

// ReaderHelp returns keybindings for the reader.
func (k *KeyMap) ReaderHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.PrevChapter, k.NextChapter, k.Bookmark, k.Back}
}

// HelpLine renders bindings as "[key] description" pairs.
func HelpLine(bindings []key.Binding) string {
	line := ""
	for i, b := range bindings {
		if i > 0 {
			line += "  "
		}
		line += "[" + b.Help().Key + "] " + b.Help().Desc
	}
	return line
}
