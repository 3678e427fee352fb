package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio/internal/core/domain"
)

const (
	// headerScanLines bounds the title and author scan.
	headerScanLines = 100

	// titleCandidates bounds the fallback title scan.
	titleCandidates = 20

	// maxTitleLength truncates a title taken from the body.
	maxTitleLength = 50

	tokenLength = 6
)

var (
	titleField  = regexp.MustCompile(`(?i)^Title:\s*(.+)$`)
	authorField = regexp.MustCompile(`(?i)^Author:\s*(.+)$`)
	ebookLine   = regexp.MustCompile(`(?i)^The Project Gutenberg e-?Book of\s*(.+?)(?:,|\s+by\s)`)
	byClause    = regexp.MustCompile(`(?i)(?:^|\s)by\s+(.+)$`)

	// sourceIDs recognise numeric book identifiers in source URLs and paths.
	sourceIDs = []*regexp.Regexp{
		regexp.MustCompile(`/files/(\d+)/`),
		regexp.MustCompile(`/cache/epub/(\d+)/`),
		regexp.MustCompile(`/ebooks/(\d+)`),
	}

	defaultExtractor = NewExtractor()
)

// Extractor recovers metadata from the leading lines of a document.
type Extractor struct {
	token func() string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithTokenSource sets the generator for identifiers used in synthesised
// titles when the source carries no numeric identifier.
func WithTokenSource(token func() string) ExtractorOption {
	return func(e *Extractor) {
		if token != nil {
			e.token = token
		}
	}
}

// NewExtractor creates an extractor that draws tokens from random UUIDs.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{token: randomToken}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractMetadata recovers metadata from raw using the default extractor.
// source is the URL or file name the text came from.
func ExtractMetadata(raw, source string) domain.Metadata {
	return defaultExtractor.Extract(raw, source)
}

// Extract recovers title, author and description from raw. It never fails:
// a missing title is synthesised from the body or the source identifier and
// a missing author becomes domain.UnknownAuthor.
func (e *Extractor) Extract(raw, source string) domain.Metadata {
	lines := strings.Split(normaliseLineEndings(raw), "\n")
	title, author := scanHeader(lines)

	if !acceptableTitle(title) {
		title = e.fallbackTitle(lines, source)
	}
	if !acceptableAuthor(author) {
		author = domain.UnknownAuthor
	}

	title = collapse(title)
	author = collapse(author)

	return domain.Metadata{
		Title:       title,
		Author:      author,
		Description: describe(author),
	}
}

// scanHeader looks for title and author fields in the first lines.
// Later fields win, except the "by AUTHOR" clause which only fills an
// empty author.
func scanHeader(lines []string) (title, author string) {
	if len(lines) > headerScanLines {
		lines = lines[:headerScanLines]
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if v, ok := capture(titleField, line); ok {
			title = v
		}
		if v, ok := capture(authorField, line); ok {
			author = v
		}
		if v, ok := capture(ebookLine, line); ok {
			title = v
		}
		if author == "" {
			if v, ok := capture(byClause, line); ok {
				if v = trimByline(v); utf8.RuneCountInString(v) > 2 {
					author = v
				}
			}
		}
	}
	return title, author
}

// capture returns the trimmed first group of re in line when it is longer
// than two characters.
func capture(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, utf8.RuneCountInString(v) > 2
}

// trimByline cuts a by-clause at the first comma or semicolon and drops
// trailing punctuation.
func trimByline(s string) string {
	if i := strings.IndexAny(s, ",;"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ",."))
}

func acceptableTitle(title string) bool {
	return title != "" &&
		!strings.Contains(strings.ToLower(title), unknownMarker) &&
		utf8.RuneCountInString(title) >= 3
}

func acceptableAuthor(author string) bool {
	return author != "" &&
		!strings.Contains(strings.ToLower(author), unknownMarker) &&
		utf8.RuneCountInString(author) >= 2
}

// fallbackTitle uses the first meaningful body line, or names the import
// after the source identifier.
func (e *Extractor) fallbackTitle(lines []string, source string) string {
	if line := firstMeaningfulLine(lines); line != "" {
		return truncate(collapse(line), maxTitleLength)
	}
	return "Imported Novel " + e.identifier(source)
}

// identifier returns the numeric book ID in source, or a random token.
func (e *Extractor) identifier(source string) string {
	if id := SourceID(source); id != "" {
		return id
	}
	return e.token()
}

// SourceID returns the numeric book identifier embedded in a source URL or
// path, or "" when there is none.
func SourceID(source string) string {
	for _, re := range sourceIDs {
		if m := re.FindStringSubmatch(source); m != nil {
			return m[1]
		}
	}
	return ""
}

func firstMeaningfulLine(lines []string) string {
	seen := 0
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		n := utf8.RuneCountInString(line)
		if n <= 10 {
			continue
		}
		if seen == titleCandidates {
			break
		}
		seen++

		lower := strings.ToLower(line)
		if hasAnyPrefix(lower, HeaderPrefixes) || containsAny(lower, HeaderFragments) {
			continue
		}
		if n < 100 {
			return line
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}

func describe(author string) string {
	if author == domain.UnknownAuthor {
		return "An imported novel from Project Gutenberg. " +
			"This digital edition has been formatted for easy reading."
	}
	return fmt.Sprintf("A work by %s. This digital edition is provided by Project Gutenberg "+
		"and has been formatted for easy reading.", author)
}

func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
}
