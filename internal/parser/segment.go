package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// minChapterContent is the content length a chapter must exceed to be kept.
const minChapterContent = 10

var (
	chapterHeading   = regexp.MustCompile(`^(?i:chapter)\s+(` + anyRoman + `|` + arabicNumeral + `)(?:[.:]?\s+|[.:]?$)(.*)$`)
	numeralHeading   = regexp.MustCompile(`^(` + romanNumeral + `|` + arabicNumeral + `)(?:\.?\s+|\.?$)(.*)$`)
	defaultSegmenter = NewSegmenter()
)

// Result is the outcome of segmentation with diagnostics.
type Result struct {
	// Chapters is never empty and is sorted by chapter number.
	Chapters []domain.ParsedChapter

	// Cleaned is the body after boilerplate stripping.
	Cleaned string

	// Matcher names the cascade entry that produced the chapters.
	// Empty when the document fell back to a single chapter.
	Matcher string
}

// Single reports whether the document collapsed to one chapter.
func (r Result) Single() bool {
	return r.Matcher == ""
}

// Segmenter splits cleaned text into chapters with a matcher cascade.
type Segmenter struct {
	cascade []Matcher
	trace   func(format string, args ...any)
}

// SegmenterOption configures a Segmenter.
type SegmenterOption func(*Segmenter)

// WithCascade replaces the default matcher cascade.
func WithCascade(matchers ...Matcher) SegmenterOption {
	return func(s *Segmenter) {
		if len(matchers) > 0 {
			s.cascade = matchers
		}
	}
}

// WithTrace receives a line for each cascade decision.
func WithTrace(trace func(format string, args ...any)) SegmenterOption {
	return func(s *Segmenter) {
		if trace != nil {
			s.trace = trace
		}
	}
}

// NewSegmenter creates a segmenter with the default cascade.
func NewSegmenter(opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{
		cascade: DefaultCascade(),
		trace:   func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SegmentIntoChapters splits raw into chapters using the default cascade.
// fallbackTitle names the single chapter produced when no structure is found.
func SegmentIntoChapters(raw, fallbackTitle string) []domain.ParsedChapter {
	return defaultSegmenter.Segment(raw, fallbackTitle)
}

// Segment splits raw into chapters sorted by chapter number.
func (s *Segmenter) Segment(raw, fallbackTitle string) []domain.ParsedChapter {
	return s.Analyse(raw, fallbackTitle).Chapters
}

// Analyse strips boilerplate from raw, runs the cascade and builds chapters.
func (s *Segmenter) Analyse(raw, fallbackTitle string) Result {
	cleaned := StripBoilerplate(raw)
	single := Result{
		Chapters: []domain.ParsedChapter{singleChapter(cleaned, fallbackTitle)},
		Cleaned:  cleaned,
	}

	matcher, spans := s.selectMatcher(cleaned)
	if matcher == nil {
		s.trace("no chapter structure found, using a single chapter")
		return single
	}
	s.trace("matcher %q found %d spans", matcher.Name(), len(spans))

	chapters := s.buildChapters(cleaned, spans)
	if len(chapters) == 0 {
		s.trace("no span had enough content, using a single chapter")
		return single
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].ChapterNumber < chapters[j].ChapterNumber
	})

	return Result{
		Chapters: chapters,
		Cleaned:  cleaned,
		Matcher:  matcher.Name(),
	}
}

// selectMatcher returns the first matcher yielding more than one span.
func (s *Segmenter) selectMatcher(text string) (Matcher, []Span) {
	for _, m := range s.cascade {
		spans := m.TryMatch(text)
		s.trace("matcher %q: %d spans", m.Name(), len(spans))
		if len(spans) > 1 {
			return m, spans
		}
	}
	return nil, nil
}

func (s *Segmenter) buildChapters(text string, spans []Span) []domain.ParsedChapter {
	chapters := make([]domain.ParsedChapter, 0, len(spans))
	position := 0
	for _, span := range spans {
		header, content, ok := splitHeader(span.Text(text))
		if !ok {
			s.trace("skipping blank span at offset %d", span.Start)
			continue
		}
		position++

		number, title := ParseHeader(header, position)
		if utf8.RuneCountInString(content) <= minChapterContent && len(spans) != 1 {
			s.trace("skipping short chapter %q", title)
			continue
		}

		chapters = append(chapters, domain.ParsedChapter{
			Title:         title,
			Content:       content,
			ChapterNumber: number,
		})
	}
	return chapters
}

// splitHeader returns the first non-blank line of a span and the trimmed
// text after it. ok is false when the span is blank.
func splitHeader(span string) (header, content string, ok bool) {
	rest := span
	for rest != "" {
		line := rest
		next := ""
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, next = rest[:i], rest[i+1:]
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, strings.TrimSpace(next), true
		}
		rest = next
	}
	return "", "", false
}

// ParseHeader derives a chapter number and title from a heading line.
// position is the 1-based index of the chapter among non-blank spans and is
// used whenever the heading carries no usable numeral.
func ParseHeader(line string, position int) (int, string) {
	line = strings.TrimSpace(line)

	if m := chapterHeading.FindStringSubmatch(line); m != nil {
		number := parseNumeral(m[1], position)
		if rest := strings.TrimSpace(m[2]); rest != "" {
			return number, fmt.Sprintf("Chapter %d: %s", number, rest)
		}
		return number, chapterLabel(number)
	}

	if m := numeralHeading.FindStringSubmatch(line); m != nil {
		number := parseNumeral(m[1], position)
		if rest := strings.TrimSpace(m[2]); rest != "" {
			return number, rest
		}
		return number, chapterLabel(number)
	}

	if n := utf8.RuneCountInString(line); n > 5 && n < 100 {
		return position, line
	}
	return position, chapterLabel(position)
}

// Collisions returns the chapter numbers shared by more than one chapter,
// in ascending order. Segmentation never renumbers; callers decide.
func Collisions(chapters []domain.ParsedChapter) []int {
	counts := make(map[int]int, len(chapters))
	for _, ch := range chapters {
		counts[ch.ChapterNumber]++
	}

	var dups []int
	for number, count := range counts {
		if count > 1 {
			dups = append(dups, number)
		}
	}
	sort.Ints(dups)
	return dups
}

func singleChapter(cleaned, fallbackTitle string) domain.ParsedChapter {
	title := fallbackTitle
	if strings.TrimSpace(title) == "" {
		title = chapterLabel(1)
	}
	return domain.ParsedChapter{
		Title:         title,
		Content:       cleaned,
		ChapterNumber: 1,
	}
}

func chapterLabel(n int) string {
	return fmt.Sprintf("Chapter %d", n)
}
