// Package wordcount records the number of words in each chapter.
package wordcount

import (
	"context"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// Name is the registry name of the processor.
const Name = "wordcount"

// MetadataKey holds the word count of a chapter.
const MetadataKey = "word_count"

// Processor counts whitespace-separated words.
type Processor struct{}

// New creates a word count processor.
func New() *Processor {
	return &Processor{}
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
		meta[MetadataKey] = len(strings.Fields(ch.Content))
		ch.Metadata = meta
		out[i] = ch
	}
	return out, nil
}
