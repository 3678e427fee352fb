package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/adapters/driving/watch"
)

var (
	watchDebounce   time.Duration
	watchExtensions []string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Import text files as they appear in a directory",
	Long: `Watch imports every .txt file created or written in a directory once it
has stopped changing. Use --ext to also pick up .html or .epub files.
Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before a file is imported")
	watchCmd.Flags().StringSliceVar(&watchExtensions, "ext", []string{".txt"}, "file extensions to import")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(args[0], importService,
		watch.WithDebounce(watchDebounce),
		watch.WithExtensions(watchExtensions...),
	)
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", w.Dir())

	return watchLoop(ctx, cmd, w)
}

func watchLoop(ctx context.Context, cmd *cobra.Command, w *watch.Watcher) error {
	out := cmd.OutOrStdout()
	return w.Run(ctx, func(ev watch.Event) {
		if ev.Err != nil {
			cmd.Println(render(out, warnStyle, fmt.Sprintf("✗ %s: %v", ev.Path, ev.Err)))
			return
		}
		cmd.Println(render(out, okStyle, fmt.Sprintf("✓ %s → %s (%d chapters)",
			ev.Path, ev.Result.Novel.Slug, ev.Result.ChapterCount)))
	})
}
