// Package pages records how many reader pages each chapter spans.
package pages

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/paginator"
)

// Name is the registry name of the processor.
const Name = "pages"

// MetadataKey holds the page count of a chapter.
const MetadataKey = "pages"

// Processor counts pages with a paginator.
type Processor struct {
	paginator *paginator.Paginator
}

// Option configures the processor.
type Option func(*options)

type options struct {
	pageSize int
}

// WithPageSize sets the page length in characters.
func WithPageSize(size int) Option {
	return func(o *options) {
		o.pageSize = size
	}
}

// New creates a page counting processor.
func New(opts ...Option) *Processor {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &Processor{paginator: paginator.New(paginator.WithPageSize(o.pageSize))}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process sets Metadata[MetadataKey] on every chapter.
func (p *Processor) Process(_ context.Context, _ *domain.Novel, chapters []domain.Chapter) ([]domain.Chapter, error) {
	out := make([]domain.Chapter, len(chapters))
	for i, ch := range chapters {
		meta := make(map[string]any, len(ch.Metadata)+1)
		for k, v := range ch.Metadata {
			meta[k] = v
		}
		meta[MetadataKey] = p.paginator.Count(ch.Content)
		ch.Metadata = meta
		out[i] = ch
	}
	return out, nil
}
