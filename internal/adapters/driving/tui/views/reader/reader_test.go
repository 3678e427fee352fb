package reader

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/services"
)

func newTestView(t *testing.T) *View {
	t.Helper()
	store := memory.NewNovelStore()
	ctx := context.Background()
	require.NoError(t, store.SaveNovel(ctx, &domain.Novel{Slug: "emma", Title: "Emma"}))
	require.NoError(t, store.SaveChapters(ctx, []domain.Chapter{
		{NovelSlug: "emma", Slug: "one", Number: 1, Title: "One", Content: "alpha beta gamma delta"},
		{NovelSlug: "emma", Slug: "two", Number: 2, Title: "Two", Content: "epsilon"},
	}))

	v := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(),
		services.NewLibraryService(store, services.WithReaderPageSize(11)),
		services.NewBookmarkService(store.Bookmarks(), store))
	v.SetDimensions(80, 24)
	return v
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and applies the page it loads, if any.
func press(v *View, msg tea.KeyMsg) *View {
	v, cmd := v.Update(msg)
	if cmd != nil {
		v, _ = v.Update(cmd())
	}
	return v
}

func TestView_PagesThroughBook(t *testing.T) {
	v := newTestView(t)
	v, _ = v.Update(v.Open("emma", "one", 1)())

	require.NoError(t, v.Err())
	assert.Equal(t, "alpha beta", v.Page().Text)
	assert.Contains(t, v.View(), "Page 1 of 2")

	v = press(v, runes("l"))
	assert.Equal(t, "gamma delta", v.Page().Text)

	// Past the last page moves into the next chapter.
	v = press(v, runes("l"))
	assert.Equal(t, "two", v.Page().Chapter.Slug)

	v = press(v, runes("h"))
	assert.Equal(t, "one", v.Page().Chapter.Slug)
	assert.Equal(t, 1, v.Page().Page)

	v = press(v, runes("]"))
	assert.Equal(t, "two", v.Page().Chapter.Slug)
	v = press(v, runes("["))
	assert.Equal(t, "one", v.Page().Chapter.Slug)
}

func TestView_StaysAtEnds(t *testing.T) {
	v := newTestView(t)
	v, _ = v.Update(v.Open("emma", "one", 1)())

	_, cmd := v.Update(runes("["))
	assert.Nil(t, cmd)
	_, cmd = v.Update(runes("h"))
	assert.Nil(t, cmd)
}

func TestView_Bookmark(t *testing.T) {
	v := newTestView(t)
	v, _ = v.Update(v.Open("emma", "one", 2)())

	v = press(v, runes("b"))

	assert.Equal(t, "Bookmarked page 2", v.Status())
	assert.Contains(t, v.View(), "Bookmarked page 2")

	v, _ = v.Update(messages.BookmarkSaved{Err: errors.New("read-only")})
	assert.True(t, strings.HasPrefix(v.Status(), "Bookmark failed"))
}

func TestView_OutOfRangePage(t *testing.T) {
	v := newTestView(t)

	v, _ = v.Update(v.Open("emma", "one", 9)())

	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
	assert.Contains(t, v.View(), "Error")
}

func TestView_Back(t *testing.T) {
	v := newTestView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewChapters}, cmd())
}
