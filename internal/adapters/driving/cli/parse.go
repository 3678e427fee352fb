package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
)

var (
	parseTitle string
	parseJSON  bool
	parseFull  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a text file and show its metadata and chapters",
	Long: `Parse extracts the title, author and chapters from a plain-text book
without storing anything. Reads stdin when the argument is "-" or missing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseTitle, "title", "", "override the extracted title")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the result as JSON")
	parseCmd.Flags().BoolVar(&parseFull, "content", false, "include chapter content in JSON output")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}

	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		source = ""
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	preview, err := importService.Parse(cmd.Context(), string(data), source, parseTitle)
	if err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}

	if parseJSON {
		return writeJSON(cmd.OutOrStdout(), previewJSON(preview, parseFull))
	}
	printPreview(cmd, preview)
	return nil
}

// printPreview writes a human-readable summary of a parse result.
func printPreview(cmd *cobra.Command, p *domain.ImportPreview) {
	out := cmd.OutOrStdout()
	cmd.Println(render(out, headingStyle, p.Metadata.Title))
	cmd.Printf("  %s %s\n", render(out, labelStyle, "Author:     "), p.Metadata.Author)
	cmd.Printf("  %s %s\n", render(out, labelStyle, "Description:"), p.Metadata.Description)
	cmd.Printf("  %s %d\n", render(out, labelStyle, "Chapters:   "), len(p.Chapters))
	cmd.Println()
	for _, ch := range p.Chapters {
		cmd.Printf("  %3d  %s (%d chars)\n", ch.ChapterNumber, ch.Title, len([]rune(ch.Content)))
	}
	if len(p.Collisions) > 0 {
		cmd.Println()
		cmd.Println(render(out, warnStyle, fmt.Sprintf("Warning: chapter numbers used more than once: %v", p.Collisions)))
	}
}

type chapterJSON struct {
	Number  int    `json:"chapter_number"`
	Title   string `json:"title"`
	Length  int    `json:"length"`
	Content string `json:"content,omitempty"`
}

type previewOutput struct {
	Source      string        `json:"source,omitempty"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Description string        `json:"description"`
	Chapters    []chapterJSON `json:"chapters"`
	Collisions  []int         `json:"collisions,omitempty"`
}

func previewJSON(p *domain.ImportPreview, content bool) previewOutput {
	out := previewOutput{
		Source:      p.Source,
		Title:       p.Metadata.Title,
		Author:      p.Metadata.Author,
		Description: p.Metadata.Description,
		Chapters:    make([]chapterJSON, len(p.Chapters)),
		Collisions:  p.Collisions,
	}
	for i, ch := range p.Chapters {
		out.Chapters[i] = chapterJSON{
			Number: ch.ChapterNumber,
			Title:  ch.Title,
			Length: len([]rune(ch.Content)),
		}
		if content {
			out.Chapters[i].Content = ch.Content
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
