// Package slugger assigns URL-safe slugs to chapters.
package slugger

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// Name is the registry name of the processor.
const Name = "slug"

// minChapterSlug is the shortest slug derived from a title that is kept.
const minChapterSlug = 2

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, folds accented letters to their base letter,
// replaces every run of other characters with "-" and trims dashes.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// Processor derives chapter slugs from titles.
// Titles that slugify to almost nothing fall back to "chapter-<index>",
// and repeated slugs within a novel get a numeric suffix.
type Processor struct{}

// New creates a slug processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process sets Slug and NovelSlug on every chapter.
func (p *Processor) Process(_ context.Context, novel *domain.Novel, chapters []domain.Chapter) ([]domain.Chapter, error) {
	out := make([]domain.Chapter, len(chapters))
	seen := make(map[string]int, len(chapters))

	for i, ch := range chapters {
		slug := Slugify(ch.Title)
		if len(slug) < minChapterSlug {
			slug = fmt.Sprintf("chapter-%d", i+1)
		}

		seen[slug]++
		if n := seen[slug]; n > 1 {
			candidate := fmt.Sprintf("%s-%d", slug, n)
			for seen[candidate] > 0 {
				n++
				candidate = fmt.Sprintf("%s-%d", slug, n)
			}
			seen[candidate]++
			slug = candidate
		}

		ch.Slug = slug
		ch.NovelSlug = novel.Slug
		out[i] = ch
	}
	return out, nil
}
