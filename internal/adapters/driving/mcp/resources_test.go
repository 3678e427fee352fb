package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestExtractNovelSlug(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid novel URI", uri: "folio://novels/emma", expected: "emma"},
		{name: "invalid prefix", uri: "file://novels/emma", expected: ""},
		{name: "missing slug", uri: "folio://novels/", expected: ""},
		{name: "nested path", uri: "folio://novels/emma/chapters", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractNovelSlug(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleNovelsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("empty library returns empty list", func(t *testing.T) {
		server, err := NewServer(newPorts())
		require.NoError(t, err)

		result, err := server.handleNovelsResource(ctx, makeReadResourceRequest("folio://novels"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("walks every page", func(t *testing.T) {
		novels := make([]domain.Novel, 150)
		for i := range novels {
			novels[i] = domain.Novel{Slug: fmt.Sprintf("novel-%d", i), Title: fmt.Sprintf("Novel %d", i)}
		}
		lib := &mockLibraryService{novels: novels}
		server, err := NewServer(&Ports{Import: &mockImportService{}, Library: lib})
		require.NoError(t, err)

		result, err := server.handleNovelsResource(ctx, makeReadResourceRequest("folio://novels"))
		require.NoError(t, err)

		var got []NovelOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Len(t, got, 150)
		assert.Equal(t, "novel-149", got[149].Slug)
		assert.Len(t, lib.listCalls, 2)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		lib := &mockLibraryService{err: errors.New("locked")}
		server, err := NewServer(&Ports{Import: &mockImportService{}, Library: lib})
		require.NoError(t, err)

		_, err = server.handleNovelsResource(ctx, makeReadResourceRequest("folio://novels"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing novels")
	})
}

func TestServer_handleNovelResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the table of contents", func(t *testing.T) {
		lib := &mockLibraryService{book: &domain.NovelWithChapters{
			Novel: domain.Novel{Slug: "emma", Title: "Emma", Author: "Jane Austen", ChapterCount: 2},
			Chapters: []domain.Chapter{
				{Slug: "chapter-1", Title: "Chapter 1", Number: 1, Metadata: map[string]any{"word_count": 120}},
				{Slug: "chapter-2", Title: "Chapter 2", Number: 2},
			},
		}}
		server, err := NewServer(&Ports{Import: &mockImportService{}, Library: lib})
		require.NoError(t, err)

		result, err := server.handleNovelResource(ctx, makeReadResourceRequest("folio://novels/emma"))
		require.NoError(t, err)

		var got novelDetail
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, "Emma", got.Title)
		assert.Equal(t, "Jane Austen", got.Author)
		require.Len(t, got.Chapters, 2)
		assert.Equal(t, 120, got.Chapters[0].WordCount)
		assert.Equal(t, "chapter-2", got.Chapters[1].Slug)
	})

	t.Run("unknown novel is not found", func(t *testing.T) {
		server, err := NewServer(newPorts())
		require.NoError(t, err)

		_, err = server.handleNovelResource(ctx, makeReadResourceRequest("folio://novels/missing"))
		require.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server, err := NewServer(newPorts())
		require.NoError(t, err)

		_, err = server.handleNovelResource(ctx, makeReadResourceRequest("folio://novels/"))
		require.Error(t, err)
	})
}
