package tui

import "errors"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("tui: library service is required")

// ErrMissingBookmarkService is returned when the bookmark service is not provided.
var ErrMissingBookmarkService = errors.New("tui: bookmark service is required")
