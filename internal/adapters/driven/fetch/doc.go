// Package fetch retrieves novel text for the import pipeline.
//
// HTTPFetcher downloads from http and https URLs with a timeout and a
// token-bucket throttle. FileFetcher reads local files. Fetcher picks one
// per source. Plain text is decoded by Decode or DecodeCharset; HTML pages
// and EPUB spines are rendered to paragraphs first. Callers always see
// NFC-normalised UTF-8 without a byte order mark.
package fetch
