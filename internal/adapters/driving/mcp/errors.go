// Package mcp provides an MCP (Model Context Protocol) server adapter for folio.
// It lets AI assistants parse plain-text books, import them and read the
// library chapter by chapter.
package mcp

import "errors"

var (
	// ErrMissingImportService is returned when the import service is not provided.
	ErrMissingImportService = errors.New("mcp: import service is required")

	// ErrMissingLibraryService is returned when the library service is not provided.
	ErrMissingLibraryService = errors.New("mcp: library service is required")
)
