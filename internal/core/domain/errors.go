package domain

import "errors"

// Sentinel errors returned by services and stores. Callers match them with
// errors.Is; adapters wrap them with context.
var (
	// ErrNotFound means no novel, chapter or bookmark matched the lookup.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput covers empty slugs, unknown setting keys and similar.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedSource means the source host is not in fetch.allowed_hosts
	// or the scheme cannot be fetched.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrFetchFailed means the source document could not be retrieved.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrContentTooShort means the document is below import.min_content_length.
	ErrContentTooShort = errors.New("content too short")

	// ErrNoChapters means segmentation left nothing to store.
	ErrNoChapters = errors.New("no chapters extracted")
)
