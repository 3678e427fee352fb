package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// mockImporter records import requests.
type mockImporter struct {
	mu      sync.Mutex
	sources []string
	fail    map[string]int
}

func (m *mockImporter) Import(_ context.Context, req domain.ImportRequest) (*domain.ImportResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = append(m.sources, req.Source)
	if m.fail[req.Source] > 0 {
		m.fail[req.Source]--
		return nil, domain.ErrContentTooShort
	}
	return &domain.ImportResult{Novel: domain.Novel{Slug: filepath.Base(req.Source)}}, nil
}

func (m *mockImporter) Preview(context.Context, domain.ImportRequest) (*domain.ImportPreview, error) {
	return nil, errors.New("not used")
}

func (m *mockImporter) Parse(context.Context, string, string, string) (*domain.ImportPreview, error) {
	return nil, errors.New("not used")
}

func (m *mockImporter) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sources...)
}

// startWatcher runs a watcher in the background and returns its events.
func startWatcher(t *testing.T, dir string, imp *mockImporter) (<-chan Event, func()) {
	t.Helper()
	events := make(chan Event, 16)
	w := New(dir, imp, WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(ev Event) { events <- ev })
	}()
	// Give fsnotify time to register the directory.
	time.Sleep(50 * time.Millisecond)

	return events, func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for import")
		return Event{}
	}
}

func TestWatcher_ImportsNewTextFiles(t *testing.T) {
	dir := t.TempDir()
	imp := &mockImporter{}
	events, stop := startWatcher(t, dir, imp)
	defer stop()

	path := filepath.Join(dir, "emma.txt")
	require.NoError(t, os.WriteFile(path, []byte("Emma Woodhouse, handsome, clever, and rich"), 0o644))

	ev := waitEvent(t, events)
	require.NoError(t, ev.Err)
	assert.Equal(t, path, ev.Path)
	assert.Equal(t, "emma.txt", ev.Result.Novel.Slug)
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	imp := &mockImporter{}
	events, stop := startWatcher(t, dir, imp)
	defer stop()

	path := filepath.Join(dir, "persuasion.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := f.WriteString("Sir Walter Elliot, of Kellynch Hall\n")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}
	require.NoError(t, f.Close())

	waitEvent(t, events)
	// Later writes to an imported file are ignored.
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, []string{path}, imp.calls())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	imp := &mockImporter{}
	events, stop := startWatcher(t, dir, imp)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("jpeg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".emma.txt.swp"), []byte("swap"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts.txt"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "emma.TXT"), []byte("text"), 0o644))

	ev := waitEvent(t, events)
	assert.Equal(t, filepath.Join(dir, "emma.TXT"), ev.Path)
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, imp.calls(), 1)
}

func TestWatcher_RetriesFailedImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.txt")
	imp := &mockImporter{fail: map[string]int{path: 1}}
	events, stop := startWatcher(t, dir, imp)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("too short"), 0o644))
	ev := waitEvent(t, events)
	assert.ErrorIs(t, ev.Err, domain.ErrContentTooShort)

	require.NoError(t, os.WriteFile(path, []byte("long enough now"), 0o644))
	ev = waitEvent(t, events)
	assert.NoError(t, ev.Err)
	assert.Len(t, imp.calls(), 2)
}

func TestWatcher_Run_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		w := New("/non/existent/path", &mockImporter{})
		err := w.Run(context.Background(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "book.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		err := New(path, &mockImporter{}).Run(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("no importer", func(t *testing.T) {
		err := New(t.TempDir(), nil).Run(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestWatcher_Candidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(file, []byte("text"), 0o644))
	sub := filepath.Join(dir, "sub.txt")
	require.NoError(t, os.Mkdir(sub, 0o755))

	w := New(dir, &mockImporter{})

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{name: "create", path: file, op: fsnotify.Create, want: true},
		{name: "write", path: file, op: fsnotify.Write, want: true},
		{name: "write and chmod", path: file, op: fsnotify.Write | fsnotify.Chmod, want: true},
		{name: "chmod only", path: file, op: fsnotify.Chmod, want: false},
		{name: "remove", path: filepath.Join(dir, "gone.txt"), op: fsnotify.Remove, want: false},
		{name: "directory", path: sub, op: fsnotify.Create, want: false},
		{name: "hidden", path: filepath.Join(dir, ".book.txt"), op: fsnotify.Create, want: false},
		{name: "other extension", path: filepath.Join(dir, "book.epub"), op: fsnotify.Create, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := w.candidate(fsnotify.Event{Name: tt.path, Op: tt.op})
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.path, path)
			}
		})
	}
}

func TestWithExtensions(t *testing.T) {
	w := New(".", &mockImporter{}, WithExtensions("md", ".TEXT"))
	assert.True(t, w.matches("notes.md"))
	assert.True(t, w.matches("book.text"))
	assert.False(t, w.matches("book.txt"))

	w = New(".", &mockImporter{}, WithExtensions())
	assert.True(t, w.matches("book.txt"))
}

func TestNew_Defaults(t *testing.T) {
	w := New("books/", &mockImporter{}, WithDebounce(-time.Second))
	assert.Equal(t, "books", w.Dir())
	assert.Equal(t, DefaultDebounce, w.debounce)
}
