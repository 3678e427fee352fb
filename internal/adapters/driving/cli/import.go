package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
)

var (
	importTitle string
	importJSON  bool
	importDry   bool
)

var importCmd = &cobra.Command{
	Use:   "import <source>",
	Short: "Import a book from a URL or a local file",
	Long: `Import fetches a plain-text book, splits it into chapters and stores it
in the library. URL sources must be on a host listed in
import.allowed_hosts; anything else is read as a local file.`,
	Example: `  folio import https://www.gutenberg.org/files/1342/1342-0.txt
  folio import ./emma.txt --title "Emma"`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importTitle, "title", "", "override the extracted title")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "print the result as JSON")
	importCmd.Flags().BoolVar(&importDry, "dry-run", false, "parse without storing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}

	req := domain.ImportRequest{Source: args[0], Title: importTitle}
	ctx := cmd.Context()

	if importDry {
		preview, err := importService.Preview(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}
		if importJSON {
			return writeJSON(cmd.OutOrStdout(), previewJSON(preview, false))
		}
		printPreview(cmd, preview)
		return nil
	}

	result, err := importService.Import(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}

	if importJSON {
		return writeJSON(cmd.OutOrStdout(), importOutput{
			Slug:          result.Novel.Slug,
			Title:         result.Novel.Title,
			Author:        result.Novel.Author,
			ChapterCount:  result.ChapterCount,
			ChapterTitles: result.ChapterTitles,
			Collisions:    result.Collisions,
		})
	}

	out := cmd.OutOrStdout()
	cmd.Println(render(out, okStyle, fmt.Sprintf("Imported %q", result.Novel.Title)))
	cmd.Printf("  Slug:     %s\n", result.Novel.Slug)
	cmd.Printf("  Author:   %s\n", result.Novel.Author)
	cmd.Printf("  Chapters: %d\n", result.ChapterCount)
	for _, title := range result.ChapterTitles {
		cmd.Printf("    - %s\n", title)
	}
	if result.ChapterCount > len(result.ChapterTitles) {
		cmd.Printf("    ... and %d more\n", result.ChapterCount-len(result.ChapterTitles))
	}
	if len(result.Collisions) > 0 {
		cmd.Println(render(out, warnStyle, fmt.Sprintf("Warning: chapter numbers used more than once: %v", result.Collisions)))
	}
	return nil
}

type importOutput struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	ChapterCount  int      `json:"chapter_count"`
	ChapterTitles []string `json:"chapter_titles"`
	Collisions    []int    `json:"collisions,omitempty"`
}
