package domain

import "time"

// NovelStatus is the publication status of a novel.
type NovelStatus string

// Available novel statuses.
const (
	// NovelStatusOngoing marks a novel still receiving chapters.
	NovelStatusOngoing NovelStatus = "ongoing"

	// NovelStatusCompleted marks a finished novel. Imports are always completed.
	NovelStatusCompleted NovelStatus = "completed"

	// NovelStatusHiatus marks a paused novel.
	NovelStatusHiatus NovelStatus = "hiatus"
)

// IsValid returns true if the status is recognised.
func (s NovelStatus) IsValid() bool {
	switch s {
	case NovelStatusOngoing, NovelStatusCompleted, NovelStatusHiatus:
		return true
	default:
		return false
	}
}

// Novel is a book stored in the library.
type Novel struct {
	// ID is the unique identifier for the novel.
	ID string

	// Slug is the URL-safe unique key used to address the novel.
	Slug string

	// Title is the human-readable title.
	Title string

	// Author is the recovered or supplied author.
	Author string

	// Description is a short synopsis.
	Description string

	// Status is the publication status.
	Status NovelStatus

	// SourceURL is where the text was imported from, if anywhere.
	SourceURL string

	// ChapterCount is the number of stored chapters.
	ChapterCount int

	// Imported is true when the novel came from the import pipeline.
	Imported bool

	// ImportedAt is when the import happened.
	ImportedAt time.Time

	// CreatedAt is when the novel was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the novel was last changed.
	UpdatedAt time.Time
}

// Chapter is a stored chapter of a novel.
type Chapter struct {
	// ID is the unique identifier for the chapter.
	ID string

	// NovelSlug links the chapter to its novel.
	NovelSlug string

	// Slug addresses the chapter within its novel.
	Slug string

	// Title is the chapter heading.
	Title string

	// Content is the chapter body.
	Content string

	// Number is the chapter number. Numbers are not guaranteed unique.
	Number int

	// Imported is true when the chapter came from the import pipeline.
	Imported bool

	// Metadata holds processor annotations such as word counts.
	Metadata map[string]any

	// CreatedAt is when the chapter was stored.
	CreatedAt time.Time

	// UpdatedAt is when the chapter was last changed.
	UpdatedAt time.Time
}

// Bookmark records the last reading position within a novel.
type Bookmark struct {
	NovelSlug   string
	ChapterSlug string
	Page        int
	UpdatedAt   time.Time
}
