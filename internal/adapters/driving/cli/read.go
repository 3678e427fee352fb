package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
)

var (
	readPage     int
	readBookmark bool
	readResume   bool
)

var readCmd = &cobra.Command{
	Use:   "read <novel> [chapter]",
	Short: "Print one page of a chapter",
	Long: `Read prints one page of a chapter. Without a chapter it opens the first
one, or the bookmarked position with --resume.`,
	Example: `  folio read pride-and-prejudice chapter-1-a-truth --page 2
  folio read pride-and-prejudice --resume`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRead,
}

func init() {
	readCmd.Flags().IntVarP(&readPage, "page", "p", 1, "page number")
	readCmd.Flags().BoolVarP(&readBookmark, "bookmark", "b", false, "bookmark the page after printing it")
	readCmd.Flags().BoolVarP(&readResume, "resume", "r", false, "open the bookmarked position")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNotConfigured("library")
	}
	ctx := cmd.Context()
	novelSlug := args[0]
	page := readPage

	var chapterSlug string
	switch {
	case len(args) == 2:
		chapterSlug = args[1]
	case readResume:
		if bookmarkService == nil {
			return errNotConfigured("bookmark")
		}
		bm, err := bookmarkService.Get(ctx, novelSlug)
		if err != nil {
			return fmt.Errorf("failed to get bookmark: %w", err)
		}
		chapterSlug, page = bm.ChapterSlug, bm.Page
	default:
		nc, err := libraryService.Get(ctx, novelSlug)
		if err != nil {
			return fmt.Errorf("failed to get novel: %w", err)
		}
		if len(nc.Chapters) == 0 {
			return fmt.Errorf("%s has no chapters: %w", novelSlug, domain.ErrNotFound)
		}
		chapterSlug = nc.Chapters[0].Slug
	}

	cp, err := libraryService.ReadPage(ctx, novelSlug, chapterSlug, page)
	if err != nil {
		return fmt.Errorf("failed to read chapter: %w", err)
	}

	out := cmd.OutOrStdout()
	cmd.Println(render(out, headingStyle, cp.Chapter.Title))
	cmd.Println(render(out, labelStyle, fmt.Sprintf("%s · page %d of %d", cp.Novel.Title, cp.Page, cp.Pages)))
	cmd.Println()
	cmd.Println(wrap(out, cp.Text))
	cmd.Println()
	cmd.Println(render(out, labelStyle, navigation(cp)))

	if readBookmark {
		if bookmarkService == nil {
			return errNotConfigured("bookmark")
		}
		if _, err := bookmarkService.Save(ctx, novelSlug, cp.Chapter.Slug, cp.Page); err != nil {
			return fmt.Errorf("failed to save bookmark: %w", err)
		}
		cmd.Println(render(out, okStyle, fmt.Sprintf("Bookmarked page %d", cp.Page)))
	}
	return nil
}

// navigation describes where to go after the current page.
func navigation(cp *domain.ChapterPage) string {
	switch {
	case cp.Page < cp.Pages:
		return fmt.Sprintf("Next: --page %d", cp.Page+1)
	case cp.Next != nil:
		return fmt.Sprintf("Next chapter: %s", cp.Next.Slug)
	default:
		return "The end."
	}
}

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Show or clear reading positions",
}

var bookmarkGetCmd = &cobra.Command{
	Use:   "get <novel>",
	Short: "Show the bookmarked position in a novel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if bookmarkService == nil {
			return errNotConfigured("bookmark")
		}
		bm, err := bookmarkService.Get(cmd.Context(), args[0])
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("No bookmark for %s\n", args[0])
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get bookmark: %w", err)
		}
		cmd.Printf("%s: %s, page %d (saved %s)\n", bm.NovelSlug, bm.ChapterSlug, bm.Page,
			bm.UpdatedAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:     "remove <novel>",
	Aliases: []string{"rm"},
	Short:   "Forget the bookmarked position in a novel",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if bookmarkService == nil {
			return errNotConfigured("bookmark")
		}
		if err := bookmarkService.Remove(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to remove bookmark: %w", err)
		}
		cmd.Printf("Removed bookmark for %s\n", args[0])
		return nil
	},
}

func init() {
	bookmarkCmd.AddCommand(bookmarkGetCmd, bookmarkRemoveCmd)
	rootCmd.AddCommand(bookmarkCmd)
}
