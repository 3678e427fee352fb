// Package paginator splits chapter text into display pages.
package paginator

import (
	"strings"
	"unicode/utf8"
)

// DefaultPageSize is the default maximum number of characters per page.
const DefaultPageSize = 4000

const paragraphBreak = "\n\n"

// Paginator splits text into pages of bounded length.
// Pages break between paragraphs where possible, then between words, and
// only cut inside a word that is longer than a whole page.
type Paginator struct {
	pageSize int
}

// Option configures the paginator.
type Option func(*Paginator)

// WithPageSize sets the maximum page length in characters.
func WithPageSize(size int) Option {
	return func(p *Paginator) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// New creates a paginator with the given options.
func New(opts ...Option) *Paginator {
	p := &Paginator{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PageSize returns the maximum page length in characters.
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// Split returns the pages of text. There is always at least one page;
// empty text yields a single empty page.
func (p *Paginator) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}

	b := &builder{size: p.pageSize}
	for _, para := range strings.Split(text, paragraphBreak) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if length(para) <= p.pageSize {
			b.add(para, paragraphBreak)
			continue
		}
		for _, word := range strings.Fields(para) {
			for _, piece := range cut(word, p.pageSize) {
				b.add(piece, " ")
			}
		}
		b.flush()
	}
	b.flush()
	return b.pages
}

// Count returns the number of pages text splits into.
func (p *Paginator) Count(text string) int {
	return len(p.Split(text))
}

// builder accumulates pieces into pages.
type builder struct {
	size    int
	pages   []string
	current strings.Builder
	n       int
}

// add appends piece to the current page, joined by sep, starting a new page
// when it would not fit.
func (b *builder) add(piece, sep string) {
	pn := length(piece)
	if b.n > 0 && b.n+length(sep)+pn > b.size {
		b.flush()
	}
	if b.n > 0 {
		b.current.WriteString(sep)
		b.n += length(sep)
	}
	b.current.WriteString(piece)
	b.n += pn
}

func (b *builder) flush() {
	if b.n == 0 {
		return
	}
	b.pages = append(b.pages, b.current.String())
	b.current.Reset()
	b.n = 0
}

// cut splits s into runs of at most size characters.
func cut(s string, size int) []string {
	if length(s) <= size {
		return []string{s}
	}
	runes := []rune(s)
	var out []string
	for len(runes) > size {
		out = append(out, string(runes[:size]))
		runes = runes[size:]
	}
	return append(out, string(runes))
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
