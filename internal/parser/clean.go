package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// partOne matches openings like "Chapter 1", "Part I" or "Book One".
	partOne = regexp.MustCompile(`^(chapter|part|book)\s+(1|i|one)`)

	excessNewlines = regexp.MustCompile(`\n{3,}`)
)

// StripBoilerplate removes licence headers and footers and tidies whitespace.
//
// The body starts at the first line that looks like a start marker, a table
// of contents, a first chapter, or a long line of prose; it ends before the
// last footer marker. Line endings become LF, runs of blank lines collapse to
// one, runs of spaces and tabs collapse to a single space and lines lose
// their surrounding blanks. Applying it to its own output is a no-op for
// documents with a single footer marker.
func StripBoilerplate(raw string) string {
	lines := strings.Split(normaliseLineEndings(raw), "\n")
	start := bodyStart(lines)
	end := bodyEnd(lines)
	if start > end {
		start = end
	}
	return tidy(lines[start:end])
}

func normaliseLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// collapse trims s and replaces each run of whitespace with one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func bodyStart(lines []string) int {
	for i, line := range lines {
		if isStartLine(line) {
			return i
		}
	}
	return 0
}

// isStartLine matches markers on the collapsed line but measures length on
// the trimmed line as written.
func isStartLine(line string) bool {
	lower := strings.ToLower(collapse(line))
	if containsAny(lower, StartMarkers) || partOne.MatchString(lower) {
		return true
	}
	return utf8.RuneCountInString(strings.TrimSpace(line)) > 50 && !containsAny(lower, HeaderWords)
}

func bodyEnd(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if containsAny(strings.ToLower(collapse(lines[i])), EndMarkers) {
			return i
		}
	}
	return len(lines)
}

func tidy(lines []string) string {
	cleaned := make([]string, len(lines))
	for i, line := range lines {
		cleaned[i] = collapse(line)
	}
	text := excessNewlines.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
