package parser

// StartMarkers are lowercase substrings that mark the first line of the body.
var StartMarkers = []string{
	"*** start of",
	"chapter 1",
	"chapter i",
	"contents",
}

// EndMarkers are lowercase substrings that mark the first line of the footer.
var EndMarkers = []string{
	"*** end of",
	"end of the project gutenberg",
}

// HeaderWords disqualify a long line from being taken as the body start.
var HeaderWords = []string{
	"gutenberg",
	"copyright",
}

// HeaderPrefixes are lowercase line prefixes of licence and production
// boilerplate. Such lines are never used as a synthesised title.
var HeaderPrefixes = []string{
	"project gutenberg",
	"copyright",
	"produced by",
	"release date",
	"language",
	"character set",
	"start of",
	"end of",
}

// HeaderFragments disqualify a line from title synthesis wherever they occur.
var HeaderFragments = []string{
	"***",
}

// unknownMarker flags placeholder titles and authors.
const unknownMarker = "unknown"
