package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and read the library interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if libraryService == nil {
			return errNotConfigured("library")
		}
		if bookmarkService == nil {
			return errNotConfigured("bookmark")
		}
		if !isTerminal(cmd.OutOrStdout()) {
			return errors.New("the interactive reader needs a terminal")
		}

		app, err := tui.NewApp(&tui.Ports{
			Library:   libraryService,
			Bookmarks: bookmarkService,
		})
		if err != nil {
			return fmt.Errorf("failed to start reader: %w", err)
		}
		return app.WithContext(cmd.Context()).Run()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
