// Package tui provides the interactive terminal reader for folio.
// It is a driving adapter over the library and bookmark services.
package tui

import (
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Library lists novels and serves chapter pages.
	Library driving.LibraryService

	// Bookmarks saves and restores reading positions.
	Bookmarks driving.BookmarkService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Bookmarks == nil {
		return ErrMissingBookmarkService
	}
	return nil
}
