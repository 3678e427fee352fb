package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure FileFetcher implements the interface.
var _ driven.Fetcher = (*FileFetcher)(nil)

// FileFetcher reads documents from the local filesystem.
type FileFetcher struct {
	maxBytes int64
}

// NewFileFetcher creates a file fetcher.
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{maxBytes: DefaultMaxBytes}
}

// Fetch reads the file at source. A file:// prefix is accepted. HTML and
// EPUB files are rendered to plain text.
func (f *FileFetcher) Fetch(ctx context.Context, source string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(source, "file://")
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrFetchFailed, path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrFetchFailed, path)
	}
	if info.Size() > f.maxBytes {
		return nil, fmt.Errorf("%w: %s: document larger than %d bytes", domain.ErrFetchFailed, path, f.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(path))
	mimeType := mime.TypeByExtension(ext)
	var text string
	if ext == ".epub" {
		mimeType = "application/epub+zip"
		text, err = EPUBText(path)
	} else {
		if mimeType == "" {
			mimeType = "text/plain"
		}
		text, err = f.readText(path, mimeType)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFetchFailed, path, err)
	}
	logger.Debug("fetch: read %s as %s", path, mimeType)

	return &domain.RawDocument{
		URI:       path,
		MIMEType:  mimeType,
		Text:      text,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// readText reads a text or HTML file. Local HTML declares its charset in a
// <meta> tag, so the extension's default charset is not passed on.
func (f *FileFetcher) readText(path, mimeType string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := readLimited(file, f.maxBytes)
	if err != nil {
		return "", err
	}
	if isHTML(mimeType) {
		return HTMLText(bytes.NewReader(data), "")
	}
	return Decode(data)
}

// readLimited reads r fully, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("document larger than %d bytes", limit)
	}
	return data, nil
}
