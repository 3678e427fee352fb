package domain

// DefaultListLimit is the number of novels per listing page.
const DefaultListLimit = 12

// ListOptions filters and pages a novel listing.
type ListOptions struct {
	// Search matches title, description or author, case-insensitively.
	Search string

	// Page is 1-based. Values below 1 mean the first page.
	Page int

	// Limit is the page size. Values below 1 mean DefaultListLimit.
	Limit int
}

// Normalised returns a copy with defaults applied.
func (o ListOptions) Normalised() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = DefaultListLimit
	}
	return o
}

// Offset returns the number of rows to skip.
func (o ListOptions) Offset() int {
	n := o.Normalised()
	return (n.Page - 1) * n.Limit
}

// NovelPage is one page of a novel listing.
type NovelPage struct {
	Novels []Novel
	Page   int
	Limit  int
	Total  int
	Pages  int
}

// NovelWithChapters is a novel together with its chapters in reading order.
type NovelWithChapters struct {
	Novel    Novel
	Chapters []Chapter
}

// ChapterView is a chapter with its neighbours for navigation.
// Prev and Next are nil at the ends of the book.
type ChapterView struct {
	Novel   Novel
	Chapter Chapter
	Prev    *Chapter
	Next    *Chapter
}

// ChapterPage is one display page of a chapter.
type ChapterPage struct {
	ChapterView

	// Page is 1-based.
	Page int

	// Pages is the total number of pages in the chapter.
	Pages int

	// Text is the content of this page.
	Text string
}
