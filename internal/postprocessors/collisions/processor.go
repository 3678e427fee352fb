// Package collisions flags chapters that share a chapter number.
package collisions

import (
	"context"
	"sort"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/logger"
)

// Name is the registry name of the processor.
const Name = "collisions"

// MetadataKey marks a chapter whose number is shared with another chapter.
const MetadataKey = "duplicate_number"

// Processor marks duplicate chapter numbers. It never renumbers: a shared
// number usually means a misparsed heading, and the reader decides.
type Processor struct{}

// New creates a collision processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process sets Metadata[MetadataKey] on every chapter whose number repeats.
func (p *Processor) Process(_ context.Context, novel *domain.Novel, chapters []domain.Chapter) ([]domain.Chapter, error) {
	counts := make(map[int]int, len(chapters))
	for _, ch := range chapters {
		counts[ch.Number]++
	}

	out := make([]domain.Chapter, len(chapters))
	for i, ch := range chapters {
		if counts[ch.Number] > 1 {
			ch.Metadata = withKey(ch.Metadata, MetadataKey, true)
		}
		out[i] = ch
	}

	for _, number := range Duplicates(chapters) {
		logger.Warn("%s: chapter number %d is used by %d chapters", novel.Slug, number, counts[number])
	}
	return out, nil
}

// Duplicates returns the repeated chapter numbers in ascending order.
func Duplicates(chapters []domain.Chapter) []int {
	counts := make(map[int]int, len(chapters))
	for _, ch := range chapters {
		counts[ch.Number]++
	}
	var dups []int
	for number, n := range counts {
		if n > 1 {
			dups = append(dups, number)
		}
	}
	sort.Ints(dups)
	return dups
}

// withKey returns a copy of m with key set, so input chapters are not modified.
func withKey(m map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}
