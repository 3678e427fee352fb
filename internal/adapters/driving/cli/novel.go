package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
)

var novelCmd = &cobra.Command{
	Use:     "novel",
	Aliases: []string{"novels"},
	Short:   "Browse and edit the library",
}

var (
	listSearch string
	listPage   int
	listLimit  int
)

var novelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List novels, newest first",
	Args:  cobra.NoArgs,
	RunE:  runNovelList,
}

var novelShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a novel and its chapters",
	Args:  cobra.ExactArgs(1),
	RunE:  runNovelShow,
}

var deleteYes bool

var novelDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a novel with its chapters and bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runNovelDelete,
}

var (
	addTitle  string
	addFile   string
	addNumber int
)

var novelAddChapterCmd = &cobra.Command{
	Use:   "add-chapter <slug>",
	Short: "Append a chapter to a novel",
	Long: `Append a chapter whose content is read from --file, or stdin when
--file is "-" or empty. The number defaults to one past the last chapter.`,
	Args: cobra.ExactArgs(1),
	RunE: runNovelAddChapter,
}

func init() {
	novelListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter by title, author or description")
	novelListCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	novelListCmd.Flags().IntVar(&listLimit, "limit", 0, "novels per page (default library.page_size)")

	novelDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")

	novelAddChapterCmd.Flags().StringVar(&addTitle, "title", "", "chapter title (required)")
	novelAddChapterCmd.Flags().StringVar(&addFile, "file", "", "file holding the chapter text")
	novelAddChapterCmd.Flags().IntVar(&addNumber, "number", 0, "chapter number")
	_ = novelAddChapterCmd.MarkFlagRequired("title")

	novelCmd.AddCommand(novelListCmd, novelShowCmd, novelDeleteCmd, novelAddChapterCmd)
	rootCmd.AddCommand(novelCmd)
}

func runNovelList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errNotConfigured("library")
	}

	page, err := libraryService.List(cmd.Context(), domain.ListOptions{
		Search: listSearch,
		Page:   listPage,
		Limit:  listLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list novels: %w", err)
	}

	if len(page.Novels) == 0 {
		if listSearch != "" {
			cmd.Printf("No novels match %q.\n", listSearch)
		} else {
			cmd.Println("The library is empty. Import a book with 'folio import <source>'.")
		}
		return nil
	}

	out := cmd.OutOrStdout()
	for _, n := range page.Novels {
		cmd.Printf("%s  %s\n", render(out, headingStyle, n.Title), render(out, labelStyle, "by "+n.Author))
		cmd.Printf("  %s  (%d chapters)\n", n.Slug, n.ChapterCount)
	}
	cmd.Printf("\nPage %d of %d (%d novels)\n", page.Page, page.Pages, page.Total)
	return nil
}

func runNovelShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNotConfigured("library")
	}

	nc, err := libraryService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get novel: %w", err)
	}

	out := cmd.OutOrStdout()
	n := nc.Novel
	cmd.Println(render(out, headingStyle, n.Title))
	cmd.Printf("  Slug:        %s\n", n.Slug)
	cmd.Printf("  Author:      %s\n", n.Author)
	cmd.Printf("  Status:      %s\n", n.Status)
	cmd.Printf("  Description: %s\n", n.Description)
	if n.SourceURL != "" {
		cmd.Printf("  Source:      %s\n", n.SourceURL)
	}
	if !n.ImportedAt.IsZero() {
		cmd.Printf("  Imported:    %s\n", n.ImportedAt.Local().Format("2006-01-02 15:04"))
	}
	cmd.Printf("  Chapters:    %d\n\n", len(nc.Chapters))

	for _, ch := range nc.Chapters {
		line := fmt.Sprintf("  %3d  %-40s %s", ch.Number, ch.Title, ch.Slug)
		if dup, _ := ch.Metadata["duplicate_number"].(bool); dup {
			line += render(out, warnStyle, "  (duplicate number)")
		}
		cmd.Println(line)
	}

	if bookmarkService != nil {
		if bm, err := bookmarkService.Get(cmd.Context(), n.Slug); err == nil {
			cmd.Printf("\n  Bookmark:    %s, page %d\n", bm.ChapterSlug, bm.Page)
		}
	}
	return nil
}

func runNovelDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNotConfigured("library")
	}
	slug := args[0]

	if !deleteYes {
		ok, err := confirm(cmd, fmt.Sprintf("Delete %s and all its chapters?", slug))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := libraryService.Delete(cmd.Context(), slug); err != nil {
		return fmt.Errorf("failed to delete novel: %w", err)
	}
	cmd.Printf("Deleted %s\n", slug)
	return nil
}

// confirm asks a yes/no question on stdin. Input that is not a terminal
// must opt in with --yes instead.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !isTerminal(f) {
		return false, errors.New("refusing to delete without a terminal; pass --yes")
	}
	cmd.Printf("%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func runNovelAddChapter(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNotConfigured("library")
	}

	var (
		data []byte
		err  error
	)
	if addFile == "" || addFile == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(addFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read chapter: %w", err)
	}

	ch, err := libraryService.AddChapter(cmd.Context(), args[0], addTitle, string(data), addNumber)
	if err != nil {
		return fmt.Errorf("failed to add chapter: %w", err)
	}
	cmd.Printf("Added chapter %d %q as %s\n", ch.Number, ch.Title, ch.Slug)
	return nil
}
