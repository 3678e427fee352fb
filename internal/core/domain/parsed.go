package domain

// UnknownAuthor is the author used when none can be recovered.
const UnknownAuthor = "Unknown Author"

// Metadata is the title, author and description recovered from a raw document.
// Title and Author are never empty.
type Metadata struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// HasKnownAuthor reports whether an author was recovered from the source.
func (m Metadata) HasKnownAuthor() bool {
	return m.Author != "" && m.Author != UnknownAuthor
}

// ParsedChapter is one chapter produced by segmentation.
// ChapterNumber is positive; Title is never empty.
type ParsedChapter struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	ChapterNumber int    `json:"chapter_number"`
}
