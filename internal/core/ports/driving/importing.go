package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// ImportService turns source documents into stored novels.
type ImportService interface {
	// Import fetches, parses and stores the document named by req.Source.
	Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error)

	// Preview fetches and parses a document without storing anything.
	Preview(ctx context.Context, req domain.ImportRequest) (*domain.ImportPreview, error)

	// Parse runs metadata extraction and segmentation on text that is already
	// in memory. source names where the text came from and may be empty.
	Parse(ctx context.Context, text, source, title string) (*domain.ImportPreview, error)
}
