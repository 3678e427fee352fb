package parser

import (
	"regexp"
	"strings"
)

// Span is a half-open byte range [Start, End) of the text a Matcher ran on.
type Span struct {
	Start int
	End   int
}

// Text returns the spanned substring of text.
func (s Span) Text(text string) string {
	return text[s.Start:s.End]
}

// Matcher detects chapter boundaries in cleaned text.
// TryMatch returns the candidate chapter spans in document order, or nil when
// the matcher's structure is absent.
type Matcher interface {
	// Name identifies the matcher in traces.
	Name() string

	// TryMatch returns candidate chapter spans.
	TryMatch(text string) []Span
}

// Ensure matchers implement the interface.
var (
	_ Matcher = (*headingMatcher)(nil)
	_ Matcher = (*breakMatcher)(nil)
)

const (
	romanNumeral  = `[IVXLCDM]+`
	anyRoman      = `(?i:[ivxlcdm]+)`
	arabicNumeral = `\d+`
)

var (
	upperEndings = regexp.MustCompile(`^[ \t]*(?:THE\s+END|EPILOGUE|FINIS)`)
	mixedEndings = regexp.MustCompile(`^[ \t]*(?:The\s+End|Epilogue|Finis)`)
	bareEndings  = regexp.MustCompile(`^[ \t]*(?:THE\s+END|EPILOGUE)`)
	sceneBreaks  = regexp.MustCompile(`^[ \t]*(?:\*\s*\*\s*\*|---|THE\s+END)`)
)

// headingMatcher splits text at lines that open a chapter. A span runs from
// its opening line to the next boundary line, the next ending line, or the
// end of the text.
type headingMatcher struct {
	name     string
	opening  *regexp.Regexp
	boundary *regexp.Regexp
	ending   *regexp.Regexp
}

// keywordMatcher matches "<keyword> <numeral>" headings, where the numeral
// is followed by ".", ":", whitespace or the end of the line. Roman
// numerals after a keyword match in either case; bare numerals stay
// uppercase so a line opening with the word "I" is not a heading.
func keywordMatcher(name, keyword, numeral string, ending *regexp.Regexp) *headingMatcher {
	heading := regexp.MustCompile(`^[ \t]*` + keyword + `[ \t]+` + numeral + `(?:[.:\s]|$)`)
	return &headingMatcher{
		name:     name,
		opening:  heading,
		boundary: heading,
		ending:   ending,
	}
}

// bareMatcher matches headings made of a numeral alone. A span may open on
// "<numeral> " but only a dotted "<numeral>." closes the previous one.
func bareMatcher(name, numeral string) *headingMatcher {
	return &headingMatcher{
		name:     name,
		opening:  regexp.MustCompile(`^[ \t]*` + numeral + `\.?(?:\s|$)`),
		boundary: regexp.MustCompile(`^[ \t]*` + numeral + `\.`),
		ending:   bareEndings,
	}
}

func (m *headingMatcher) Name() string { return m.name }

func (m *headingMatcher) TryMatch(text string) []Span {
	lines, offsets := splitLines(text)

	var spans []Span
	for i := 0; i < len(lines); {
		open := -1
		for j := i; j < len(lines); j++ {
			if m.opening.MatchString(lines[j]) {
				open = j
				break
			}
		}
		if open < 0 {
			break
		}

		closeAt := len(lines)
		for j := open + 1; j < len(lines); j++ {
			if m.boundary.MatchString(lines[j]) || m.ending.MatchString(lines[j]) {
				closeAt = j
				break
			}
		}

		spans = append(spans, Span{Start: offsets[open], End: lineStart(text, offsets, closeAt)})
		i = closeAt
	}
	return spans
}

// breakMatcher splits text at scene breaks: a line of asterisks, a line
// starting with three dashes, or THE END. Each break line opens a new span.
type breakMatcher struct {
	name   string
	breaks *regexp.Regexp
}

func (m *breakMatcher) Name() string { return m.name }

func (m *breakMatcher) TryMatch(text string) []Span {
	lines, offsets := splitLines(text)

	var spans []Span
	start := 0
	for j := 1; j < len(lines); j++ {
		if m.breaks.MatchString(lines[j]) {
			spans = append(spans, Span{Start: offsets[start], End: lineStart(text, offsets, j)})
			start = j
		}
	}
	return append(spans, Span{Start: offsets[start], End: len(text)})
}

// DefaultCascade returns the boundary matchers in priority order.
func DefaultCascade() []Matcher {
	return []Matcher{
		keywordMatcher("CHAPTER roman", "CHAPTER", anyRoman, upperEndings),
		keywordMatcher("CHAPTER arabic", "CHAPTER", arabicNumeral, upperEndings),
		keywordMatcher("Chapter roman", "Chapter", anyRoman, mixedEndings),
		keywordMatcher("Chapter arabic", "Chapter", arabicNumeral, mixedEndings),
		bareMatcher("bare roman", romanNumeral),
		bareMatcher("bare arabic", arabicNumeral),
		&breakMatcher{name: "scene breaks", breaks: sceneBreaks},
	}
}

// splitLines returns the lines of text and the byte offset of each.
func splitLines(text string) ([]string, []int) {
	lines := strings.Split(text, "\n")
	offsets := make([]int, len(lines))
	pos := 0
	for i, line := range lines {
		offsets[i] = pos
		pos += len(line) + 1
	}
	return lines, offsets
}

// lineStart returns the offset where a span ending before line i stops,
// excluding the separating newline.
func lineStart(text string, offsets []int, i int) int {
	if i >= len(offsets) {
		return len(text)
	}
	return offsets[i] - 1
}
