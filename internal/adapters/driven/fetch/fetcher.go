package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Fetcher routes URLs to the HTTP fetcher and everything else to the file
// fetcher.
type Fetcher struct {
	http driven.Fetcher
	file driven.Fetcher
}

// New creates a routing fetcher.
func New(httpFetcher, fileFetcher driven.Fetcher) *Fetcher {
	return &Fetcher{http: httpFetcher, file: fileFetcher}
}

// NewDefault creates a routing fetcher from fetch settings.
func NewDefault(settings domain.FetchSettings) *Fetcher {
	return New(
		NewHTTPFetcher(
			WithTimeout(time.Duration(settings.TimeoutSeconds)*time.Second),
			WithRequestsPerSecond(settings.RequestsPerSecond),
		),
		NewFileFetcher(),
	)
}

// Fetch retrieves source with the matching fetcher.
func (f *Fetcher) Fetch(ctx context.Context, source string) (*domain.RawDocument, error) {
	if IsURL(source) {
		return f.http.Fetch(ctx, source)
	}
	return f.file.Fetch(ctx, source)
}

// IsURL reports whether source names a remote document rather than a path.
func IsURL(source string) bool {
	return strings.Contains(source, "://") && !strings.HasPrefix(source, "file://")
}
