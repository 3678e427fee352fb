package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

const (
	// DefaultTimeout bounds a single download.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the default throttle rate.
	DefaultRequestsPerSecond = 1.0

	// DefaultMaxBytes caps the size of a fetched document.
	DefaultMaxBytes int64 = 32 << 20

	// UserAgent identifies folio to remote hosts.
	UserAgent = "folio (+https://github.com/custodia-labs/folio)"
)

// Ensure HTTPFetcher implements the interface.
var _ driven.Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher downloads documents over HTTP.
type HTTPFetcher struct {
	client   *http.Client
	limiter  *rate.Limiter
	maxBytes int64
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithRequestsPerSecond sets the throttle rate.
func WithRequestsPerSecond(rps float64) HTTPOption {
	return func(f *HTTPFetcher) {
		if rps > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithHTTPClient replaces the HTTP client. Its timeout is kept.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithMaxBytes caps the accepted document size.
func WithMaxBytes(n int64) HTTPOption {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// NewHTTPFetcher creates an HTTP fetcher.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:   &http.Client{Timeout: DefaultTimeout},
		limiter:  rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the document at url. Any non-2xx status is ErrFetchFailed.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*domain.RawDocument, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/plain, */*;q=0.5")

	logger.Debug("fetch: GET %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if retry := resp.Header.Get("Retry-After"); retry != "" {
			return nil, fmt.Errorf("%w: %s returned %s (retry after %ss)", domain.ErrFetchFailed, url, resp.Status, retry)
		}
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrFetchFailed, url, resp.Status)
	}

	data, err := readLimited(resp.Body, f.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFetchFailed, url, err)
	}

	contentType := resp.Header.Get("Content-Type")
	text, err := ToText(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrFetchFailed, url, err)
	}
	logger.Debug("fetch: %s returned %d bytes of %s", url, len(data), contentType)

	mimeType := contentType
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	return &domain.RawDocument{
		URI:       url,
		MIMEType:  mimeType,
		Text:      text,
		FetchedAt: time.Now().UTC(),
	}, nil
}
