// Package domain holds folio's entities and sentinel errors.
//
// A fetched RawDocument is parsed into Metadata and a slice of
// ParsedChapter values; once stored they become a Novel with Chapter rows,
// and a Bookmark records where the reader stopped. AppSettings is the typed
// view of the configuration file.
//
// Everything else in the module depends on domain; domain depends only on
// the standard library.
package domain
