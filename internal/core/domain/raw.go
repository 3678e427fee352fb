package domain

import "time"

// RawDocument represents decoded text fetched from a source.
// It is the fetcher's output before metadata extraction and segmentation.
type RawDocument struct {
	// URI is the original location (file path or URL).
	URI string

	// MIMEType is the content type reported by the source.
	MIMEType string

	// Text is the full document text, decoded to UTF-8.
	Text string

	// FetchedAt is when the document was retrieved.
	FetchedAt time.Time
}
