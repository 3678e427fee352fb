// Package parser turns a plain-text book export into metadata and chapters.
//
// Two pure components live here:
//
//   - Extractor recovers a title, author and description from the leading
//     lines of a document and its source identifier, synthesising fallbacks
//     when the header is missing or malformed.
//   - Segmenter strips header and footer boilerplate, then runs an ordered
//     cascade of Matchers over the body. The first matcher producing more
//     than one span wins; each span becomes a chapter whose number and title
//     are parsed from its first line.
//
// Neither component performs I/O or returns errors. Every input produces a
// usable result: metadata with safe fallbacks and at least one chapter.
// Both are safe for concurrent use.
package parser
