package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// Fetcher retrieves a document and decodes it to text.
// Implementations exist for HTTP URLs and local files.
type Fetcher interface {
	// Fetch retrieves the document at source.
	// Returns domain.ErrFetchFailed (wrapped) when retrieval fails and
	// domain.ErrUnsupportedSource when the source cannot be handled.
	Fetch(ctx context.Context, source string) (*domain.RawDocument, error)
}
