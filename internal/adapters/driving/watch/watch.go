// Package watch imports books dropped into a directory.
//
// A Watcher listens for fsnotify create and write events, waits until a
// file has been quiet for the debounce interval, then hands it to the
// import service. Imports run one at a time and each file is imported at
// most once per run; a failed import is retried on the file's next write.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

const (
	// DefaultDebounce is how long a file must be quiet before it is imported.
	DefaultDebounce = 500 * time.Millisecond

	queueSize = 64
)

// Event reports the outcome of one import attempt.
type Event struct {
	Path   string
	Result *domain.ImportResult
	Err    error
}

// Watcher imports new text files from a directory.
type Watcher struct {
	dir        string
	importer   driving.ImportService
	debounce   time.Duration
	extensions []string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a file is imported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithExtensions sets the file extensions that are imported.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		if len(exts) == 0 {
			return
		}
		w.extensions = w.extensions[:0]
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			w.extensions = append(w.extensions, strings.ToLower(ext))
		}
	}
}

// New creates a watcher for dir.
func New(dir string, importer driving.ImportService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:        filepath.Clean(dir),
		importer:   importer,
		debounce:   DefaultDebounce,
		extensions: []string{".txt"},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run watches until ctx is cancelled. onEvent, if not nil, is called
// after every import attempt from a single goroutine.
func (w *Watcher) Run(ctx context.Context, onEvent func(Event)) error {
	if w.importer == nil {
		return fmt.Errorf("watch: %w: import service is required", domain.ErrInvalidInput)
	}
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: %w: not a directory", w.dir, domain.ErrInvalidInput)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("watching %s for %s files", w.dir, strings.Join(w.extensions, ", "))

	ctx, cancel := context.WithCancel(ctx)
	ready := make(chan string, queueSize)
	timers := make(map[string]*time.Timer)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.work(ctx, ready, onEvent)
	}()
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
		cancel()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			path, ok := w.candidate(ev)
			if !ok {
				continue
			}
			if t, seen := timers[path]; seen {
				t.Reset(w.debounce)
				continue
			}
			logger.Debug("watch: %s %s", ev.Op, path)
			timers[path] = time.AfterFunc(w.debounce, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// work imports queued paths one at a time.
func (w *Watcher) work(ctx context.Context, ready <-chan string, onEvent func(Event)) {
	imported := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-ready:
			if imported[path] {
				logger.Debug("watch: %s already imported", path)
				continue
			}

			result, err := w.importer.Import(ctx, domain.ImportRequest{Source: path})
			if err != nil {
				logger.Warn("watch: import %s: %v", path, err)
			} else {
				imported[path] = true
				logger.Info("watch: imported %s as %s", filepath.Base(path), result.Novel.Slug)
			}
			if onEvent != nil {
				onEvent(Event{Path: path, Result: result, Err: err})
			}
		}
	}
}

// candidate returns the path of an event that should trigger an import.
func (w *Watcher) candidate(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") {
		return "", false
	}
	if !w.matches(name) {
		return "", false
	}
	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return filepath.Clean(ev.Name), true
}

func (w *Watcher) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
