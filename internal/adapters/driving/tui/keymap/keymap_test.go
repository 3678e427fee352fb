package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"quit", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, km.Quit},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, km.Back},
		{"next page arrow", tea.KeyMsg{Type: tea.KeyRight}, km.NextPage},
		{"next page space", tea.KeyMsg{Type: tea.KeySpace}, km.NextPage},
		{"previous chapter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")}, km.PrevChapter},
		{"bookmark", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")}, km.Bookmark},
		{"select", tea.KeyMsg{Type: tea.KeyEnter}, km.Select},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestHelpLine(t *testing.T) {
	km := DefaultKeyMap()

	line := HelpLine([]key.Binding{km.Bookmark, km.Back})

	assert.Equal(t, "[b] bookmark  [esc] back", line)
	assert.Empty(t, HelpLine(nil))
}

func TestHelpSets(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.LibraryHelp(), 5)
	assert.Len(t, km.ChaptersHelp(), 5)
	assert.Len(t, km.ReaderHelp(), 6)
}
