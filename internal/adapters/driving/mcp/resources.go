package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/folio/internal/core/domain"
)

const (
	uriScheme = "folio://"

	// listBatch is the page size used when walking the whole library.
	listBatch = 100
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "novels",
		Name:        "novels",
		Description: "Every novel in the library",
		MIMEType:    "application/json",
	}, s.handleNovelsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "novels/{slug}",
		Name:        "novel",
		Description: "A novel with its table of contents",
		MIMEType:    "application/json",
	}, s.handleNovelResource)
}

// handleNovelsResource lists the whole library.
func (s *Server) handleNovelsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	novels := []NovelOutput{}
	for page := 1; ; page++ {
		result, err := s.ports.Library.List(ctx, domain.ListOptions{Page: page, Limit: listBatch})
		if err != nil {
			return nil, fmt.Errorf("listing novels: %w", err)
		}
		for i := range result.Novels {
			novels = append(novels, novelOutput(&result.Novels[i]))
		}
		if page >= result.Pages {
			break
		}
	}
	return jsonResult(req.Params.URI, novels)
}

type tocEntry struct {
	Number    int    `json:"chapter_number"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	WordCount int    `json:"word_count,omitempty"`
}

type novelDetail struct {
	NovelOutput
	SourceURL string     `json:"source_url,omitempty"`
	Chapters  []tocEntry `json:"chapters"`
}

// handleNovelResource returns one novel and its chapter list.
func (s *Server) handleNovelResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	slug := extractNovelSlug(req.Params.URI)
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	nc, err := s.ports.Library.Get(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting novel: %w", err)
	}

	detail := novelDetail{
		NovelOutput: novelOutput(&nc.Novel),
		SourceURL:   nc.Novel.SourceURL,
		Chapters:    make([]tocEntry, len(nc.Chapters)),
	}
	for i, ch := range nc.Chapters {
		entry := tocEntry{Number: ch.Number, Slug: ch.Slug, Title: ch.Title}
		if wc, ok := ch.Metadata["word_count"].(int); ok {
			entry.WordCount = wc
		}
		detail.Chapters[i] = entry
	}
	return jsonResult(req.Params.URI, detail)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractNovelSlug extracts the slug from a URI like folio://novels/{slug}.
func extractNovelSlug(uri string) string {
	const prefix = uriScheme + "novels/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	slug := strings.TrimPrefix(uri, prefix)
	if slug == "" || strings.Contains(slug, "/") {
		return ""
	}
	return slug
}
