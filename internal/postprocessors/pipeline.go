// Package postprocessors runs chapters through an ordered list of
// processors between segmentation and storage. Processors are chosen by
// name in the postprocessors setting and built through a Registry.
package postprocessors

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

var _ driven.ChapterPipeline = (*Pipeline)(nil)

// Pipeline feeds each processor the previous one's output.
type Pipeline struct {
	processors []driven.ChapterProcessor
}

// NewPipeline returns a pipeline that runs processors in argument order.
func NewPipeline(processors ...driven.ChapterProcessor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Process runs every processor over chapters. It stops at the first error
// or when ctx is done.
func (p *Pipeline) Process(ctx context.Context, novel *domain.Novel, chapters []domain.Chapter) ([]domain.Chapter, error) {
	if novel == nil {
		return nil, errors.New("post-processing needs a novel")
	}

	for _, proc := range p.processors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := proc.Process(ctx, novel, chapters)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", proc.Name(), err)
		}
		logger.Debug("post-process %s: %d chapters", proc.Name(), len(out))
		chapters = out
	}
	return chapters, nil
}

// Add appends a processor.
func (p *Pipeline) Add(processor driven.ChapterProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors.
func (p *Pipeline) Len() int { return len(p.processors) }

// Names returns processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.processors))
	for _, proc := range p.processors {
		names = append(names, proc.Name())
	}
	return names
}
