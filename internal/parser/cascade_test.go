package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spanTexts(text string, spans []Span) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.Text(text)
	}
	return out
}

func TestKeywordMatcher_Spans(t *testing.T) {
	text := "Preface text.\nCHAPTER I\nOne.\nCHAPTER II. Two\nTwo body.\nTHE END\nAfterword."
	m := keywordMatcher("test", "CHAPTER", romanNumeral, upperEndings)

	spans := m.TryMatch(text)

	assert.Equal(t, []string{
		"CHAPTER I\nOne.",
		"CHAPTER II. Two\nTwo body.",
	}, spanTexts(text, spans))
}

func TestKeywordMatcher_CaseSensitive(t *testing.T) {
	text := "Chapter I\nOne.\nChapter II\nTwo."

	upper := keywordMatcher("upper", "CHAPTER", romanNumeral, upperEndings)
	mixed := keywordMatcher("mixed", "Chapter", romanNumeral, mixedEndings)

	assert.Empty(t, upper.TryMatch(text))
	assert.Len(t, mixed.TryMatch(text), 2)
}

func TestKeywordMatcher_AnyCaseRoman(t *testing.T) {
	text := "Chapter iv\nFour.\nChapter V\nFive.\nChapter vi. Six\nSix body."

	strict := keywordMatcher("strict", "Chapter", romanNumeral, mixedEndings)
	loose := keywordMatcher("loose", "Chapter", anyRoman, mixedEndings)

	assert.Len(t, strict.TryMatch(text), 1)
	assert.Equal(t, []string{
		"Chapter iv\nFour.",
		"Chapter V\nFive.",
		"Chapter vi. Six\nSix body.",
	}, spanTexts(text, loose.TryMatch(text)))
}

func TestKeywordMatcher_RequiresNumeralBoundary(t *testing.T) {
	text := "CHAPTER IDEAS\nNot a heading.\nCHAPTER 3rd\nNor this."
	m := keywordMatcher("test", "CHAPTER", romanNumeral, upperEndings)

	assert.Empty(t, m.TryMatch(text))
}

func TestBareMatcher_DottedBoundary(t *testing.T) {
	text := "1 Opening\nStill the first part.\n2 not a boundary\n3. Third\nThird body."
	m := bareMatcher("test", arabicNumeral)

	spans := m.TryMatch(text)

	assert.Equal(t, []string{
		"1 Opening\nStill the first part.\n2 not a boundary",
		"3. Third\nThird body.",
	}, spanTexts(text, spans))
}

func TestBreakMatcher_Spans(t *testing.T) {
	text := "First.\n* * *\nSecond.\n---\nThird."
	m := &breakMatcher{name: "breaks", breaks: sceneBreaks}

	spans := m.TryMatch(text)

	assert.Equal(t, []string{"First.", "* * *\nSecond.", "---\nThird."}, spanTexts(text, spans))
}

func TestBreakMatcher_NoBreaks(t *testing.T) {
	m := &breakMatcher{name: "breaks", breaks: sceneBreaks}

	spans := m.TryMatch("Just one block.")

	require.Len(t, spans, 1)
}

func TestDefaultCascade_Order(t *testing.T) {
	names := make([]string, 0, 7)
	for _, m := range DefaultCascade() {
		names = append(names, m.Name())
	}

	assert.Equal(t, []string{
		"CHAPTER roman",
		"CHAPTER arabic",
		"Chapter roman",
		"Chapter arabic",
		"bare roman",
		"bare arabic",
		"scene breaks",
	}, names)
}
