package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// ChapterProcessor transforms chapters before they are stored.
// Processors are chained in a pipeline (e.g., slugs, collision flags, word counts).
type ChapterProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process receives the chapters of a novel and returns them, possibly modified.
	Process(ctx context.Context, novel *domain.Novel, chapters []domain.Chapter) ([]domain.Chapter, error)
}

// ChapterPipeline chains multiple ChapterProcessors.
type ChapterPipeline interface {
	// Process runs the chapters through all processors in order.
	Process(ctx context.Context, novel *domain.Novel, chapters []domain.Chapter) ([]domain.Chapter, error)
}
