package mcp

import (
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Import parses and stores documents.
	Import driving.ImportService

	// Library browses stored novels.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Import == nil {
		return ErrMissingImportService
	}
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	return nil
}
