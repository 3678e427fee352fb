// Package cli provides the folio command-line interface built on cobra.
//
// Commands reach the core only through driving ports. The composition
// root supplies them either directly with SetServices (tests) or lazily
// through a Bootstrap that runs once flags are parsed.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// noServices marks commands that run without the library.
const noServices = "folio/no-services"

// Options are the global flag values handed to a Bootstrap.
type Options struct {
	// DataDir holds the library database. Empty means ~/.folio/data.
	DataDir string

	// ConfigDir holds config.toml. Empty means ~/.folio.
	ConfigDir string
}

// Services holds the driving ports the commands use.
type Services struct {
	Import    driving.ImportService
	Library   driving.LibraryService
	Bookmarks driving.BookmarkService
	Settings  driving.SettingsService
}

// Bootstrap builds the services from the global options. The returned
// close function releases storage and may be nil.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func() error, error)

var (
	importService   driving.ImportService
	libraryService  driving.LibraryService
	bookmarkService driving.BookmarkService
	settingsService driving.SettingsService

	bootstrap    Bootstrap
	closeStorage func() error
	globalOpts   Options
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Import and read public-domain novels",
	Long: `folio imports plain-text books such as Project Gutenberg exports,
recovers their title, author and chapters, and keeps them in a local
library you can read page by page from the terminal.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline steps to stderr")
	rootCmd.PersistentFlags().StringVar(&globalOpts.DataDir, "data-dir", "", "library database directory (default ~/.folio/data)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigDir, "config-dir", "", "config directory (default ~/.folio)")
}

// SetServices installs the driving ports directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	importService = s.Import
	libraryService = s.Library
	bookmarkService = s.Bookmarks
	settingsService = s.Settings
}

// SetBootstrap installs the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command. Storage opened by the bootstrap is
// closed even when the command fails.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := teardown(nil, nil); err == nil {
		err = closeErr
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[noServices] == "true" || bootstrap == nil || settingsService != nil {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	services, closeFn, err := bootstrap(ctx, globalOpts)
	if err != nil {
		return err
	}
	SetServices(services)
	closeStorage = closeFn
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeStorage == nil {
		return nil
	}
	err := closeStorage()
	closeStorage = nil
	return err
}

// errNotConfigured reports a missing driving port.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
