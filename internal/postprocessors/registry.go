package postprocessors

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// ErrUnknownProcessor is returned when the postprocessors setting names a
// processor nobody registered.
var ErrUnknownProcessor = errors.New("unknown post-processor")

// BuilderFunc builds a processor from its section of the config. cfg may be
// nil when the processor has no settings.
type BuilderFunc func(cfg map[string]any) (driven.ChapterProcessor, error)

// Registry maps processor names, as written in config, to builders.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry returns an empty registry. Call RegisterDefaults to add the
// built-in processors.
func NewRegistry() *Registry {
	return &Registry{builders: map[string]BuilderFunc{}}
}

// Register binds name to builder, replacing any earlier binding.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build constructs the processor registered under name.
func (r *Registry) Build(name string, cfg map[string]any) (driven.ChapterProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownProcessor, name, strings.Join(r.Names(), ", "))
	}
	proc, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", name, err)
	}
	return proc, nil
}

// BuildPipeline builds the named processors in order. cfgs is keyed by
// processor name. Each name may appear once.
func (r *Registry) BuildPipeline(names []string, cfgs map[string]map[string]any) (*Pipeline, error) {
	pipeline := NewPipeline()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if seen[name] {
			return nil, fmt.Errorf("post-processor %q listed more than once", name)
		}
		seen[name] = true

		proc, err := r.Build(name, cfgs[name])
		if err != nil {
			return nil, err
		}
		pipeline.Add(proc)
	}
	return pipeline, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names lists the registered names alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
