package postprocessors

import (
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/postprocessors/collisions"
	"github.com/custodia-labs/folio/internal/postprocessors/pages"
	"github.com/custodia-labs/folio/internal/postprocessors/slugger"
	"github.com/custodia-labs/folio/internal/postprocessors/wordcount"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(slugger.Name, buildSlugger)
	r.Register(collisions.Name, buildCollisions)
	r.Register(wordcount.Name, buildWordCount)
	r.Register(pages.Name, buildPages)
}

func buildSlugger(_ map[string]any) (driven.ChapterProcessor, error) {
	return slugger.New(), nil
}

func buildCollisions(_ map[string]any) (driven.ChapterProcessor, error) {
	return collisions.New(), nil
}

func buildWordCount(_ map[string]any) (driven.ChapterProcessor, error) {
	return wordcount.New(), nil
}

// buildPages creates a page counter from generic config.
// Supported config keys:
//   - page_size (int): Characters per page (default: 4000)
func buildPages(cfg map[string]any) (driven.ChapterProcessor, error) {
	var opts []pages.Option
	if size := getIntFromConfig(cfg, "page_size"); size > 0 {
		opts = append(opts, pages.WithPageSize(size))
	}
	return pages.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
