package domain

// ImportRequest asks the import pipeline to ingest a document.
type ImportRequest struct {
	// Source is a URL or a local file path.
	Source string

	// Title overrides the extracted title when non-blank.
	Title string
}

// ImportPreview is the parse result of a document, before persistence.
type ImportPreview struct {
	Source     string
	Metadata   Metadata
	Chapters   []ParsedChapter
	Collisions []int
	// BodyLength is the character count of the stripped body.
	BodyLength int
}

// ImportResult summarises a completed import.
type ImportResult struct {
	Novel         Novel
	ChapterCount  int
	ChapterTitles []string
	Collisions    []int
}
