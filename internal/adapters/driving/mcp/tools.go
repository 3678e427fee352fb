package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// ParseInput is the input schema for the parse_document tool.
type ParseInput struct {
	Text   string `json:"text" jsonschema:"the full plain text of the book"`
	Title  string `json:"title,omitempty" jsonschema:"title to use instead of the extracted one"`
	Source string `json:"source,omitempty" jsonschema:"URL or file name the text came from"`
}

// ParseOutput is the output schema for the parse_document tool.
type ParseOutput struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Chapters    []ChapterOutput `json:"chapters"`
	Collisions  []int           `json:"collisions,omitempty"`
}

// ChapterOutput is one parsed chapter.
type ChapterOutput struct {
	Number  int    `json:"chapter_number"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ImportInput is the input schema for the import_novel tool.
type ImportInput struct {
	Source string `json:"source" jsonschema:"URL of a plain-text book on an allowed host, or a local path"`
	Title  string `json:"title,omitempty" jsonschema:"title to use instead of the extracted one"`
}

// ImportOutput is the output schema for the import_novel tool.
type ImportOutput struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	ChapterCount  int      `json:"chapter_count"`
	ChapterTitles []string `json:"chapter_titles"`
	Collisions    []int    `json:"collisions,omitempty"`
}

// ListInput is the input schema for the list_novels tool.
type ListInput struct {
	Search string `json:"search,omitempty" jsonschema:"filter by title, author or description"`
	Page   int    `json:"page,omitempty" jsonschema:"page number (default 1)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"novels per page (default 12)"`
}

// ListOutput is the output schema for the list_novels tool.
type ListOutput struct {
	Novels []NovelOutput `json:"novels"`
	Page   int           `json:"page"`
	Pages  int           `json:"pages"`
	Total  int           `json:"total"`
}

// NovelOutput summarises a stored novel.
type NovelOutput struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Description  string `json:"description"`
	ChapterCount int    `json:"chapter_count"`
}

// ReadInput is the input schema for the read_chapter tool.
type ReadInput struct {
	Novel   string `json:"novel" jsonschema:"novel slug"`
	Chapter string `json:"chapter,omitempty" jsonschema:"chapter slug (default first chapter)"`
	Page    int    `json:"page,omitempty" jsonschema:"page number (default 1)"`
}

// ReadOutput is the output schema for the read_chapter tool.
type ReadOutput struct {
	Novel        string `json:"novel"`
	ChapterSlug  string `json:"chapter_slug"`
	ChapterTitle string `json:"chapter_title"`
	Page         int    `json:"page"`
	Pages        int    `json:"pages"`
	Text         string `json:"text"`
	Prev         string `json:"prev,omitempty"`
	Next         string `json:"next,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_document",
		Description: "Extract title, author and chapters from plain book text without storing it",
	}, s.handleParse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_novel",
		Description: "Fetch a plain-text book, split it into chapters and add it to the library",
	}, s.handleImport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_novels",
		Description: "List novels in the library, newest first",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_chapter",
		Description: "Read one page of a chapter from the library",
	}, s.handleRead)
}

func (s *Server) handleParse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseInput,
) (*mcp.CallToolResult, ParseOutput, error) {
	preview, err := s.ports.Import.Parse(ctx, input.Text, input.Source, input.Title)
	if err != nil {
		return nil, ParseOutput{}, err
	}

	output := ParseOutput{
		Title:       preview.Metadata.Title,
		Author:      preview.Metadata.Author,
		Description: preview.Metadata.Description,
		Chapters:    make([]ChapterOutput, len(preview.Chapters)),
		Collisions:  preview.Collisions,
	}
	for i, ch := range preview.Chapters {
		output.Chapters[i] = ChapterOutput{Number: ch.ChapterNumber, Title: ch.Title, Content: ch.Content}
	}
	return nil, output, nil
}

func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportInput,
) (*mcp.CallToolResult, ImportOutput, error) {
	result, err := s.ports.Import.Import(ctx, domain.ImportRequest{Source: input.Source, Title: input.Title})
	if err != nil {
		return nil, ImportOutput{}, err
	}

	return nil, ImportOutput{
		Slug:          result.Novel.Slug,
		Title:         result.Novel.Title,
		Author:        result.Novel.Author,
		ChapterCount:  result.ChapterCount,
		ChapterTitles: result.ChapterTitles,
		Collisions:    result.Collisions,
	}, nil
}

func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	page, err := s.ports.Library.List(ctx, domain.ListOptions{
		Search: input.Search,
		Page:   input.Page,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, ListOutput{}, err
	}

	output := ListOutput{
		Novels: make([]NovelOutput, len(page.Novels)),
		Page:   page.Page,
		Pages:  page.Pages,
		Total:  page.Total,
	}
	for i := range page.Novels {
		output.Novels[i] = novelOutput(&page.Novels[i])
	}
	return nil, output, nil
}

func (s *Server) handleRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadInput,
) (*mcp.CallToolResult, ReadOutput, error) {
	chapter := input.Chapter
	if chapter == "" {
		nc, err := s.ports.Library.Get(ctx, input.Novel)
		if err != nil {
			return nil, ReadOutput{}, err
		}
		if len(nc.Chapters) == 0 {
			return nil, ReadOutput{}, fmt.Errorf("%s has no chapters: %w", input.Novel, domain.ErrNotFound)
		}
		chapter = nc.Chapters[0].Slug
	}

	page := input.Page
	if page < 1 {
		page = 1
	}

	cp, err := s.ports.Library.ReadPage(ctx, input.Novel, chapter, page)
	if err != nil {
		return nil, ReadOutput{}, err
	}

	output := ReadOutput{
		Novel:        cp.Novel.Slug,
		ChapterSlug:  cp.Chapter.Slug,
		ChapterTitle: cp.Chapter.Title,
		Page:         cp.Page,
		Pages:        cp.Pages,
		Text:         cp.Text,
	}
	if cp.Prev != nil {
		output.Prev = cp.Prev.Slug
	}
	if cp.Next != nil {
		output.Next = cp.Next.Slug
	}
	return nil, output, nil
}

func novelOutput(n *domain.Novel) NovelOutput {
	return NovelOutput{
		Slug:         n.Slug,
		Title:        n.Title,
		Author:       n.Author,
		Description:  n.Description,
		ChapterCount: n.ChapterCount,
	}
}
