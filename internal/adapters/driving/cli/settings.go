package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change settings",
	Long: `Settings are stored in config.toml in the config directory. Values set
here take effect the next time folio starts.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every setting",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a single setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. List values are comma separated, for example:

  folio settings set import.allowed_hosts gutenberg.org,gutenberg.ca`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the recognised setting keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errNotConfigured("settings")
		}
		for _, key := range settingsService.Keys() {
			cmd.Println(key)
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsGetCmd, settingsSetCmd, settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	defaults := settingsService.GetDefaults()

	out := cmd.OutOrStdout()
	cmd.Println(render(out, headingStyle, "Settings"))
	for _, key := range settingsService.Keys() {
		value := settingValue(current, key)
		line := fmt.Sprintf("  %-28s %s", key, value)
		if value != settingValue(&defaults, key) {
			line += render(out, labelStyle, "  (default "+settingValue(&defaults, key)+")")
		}
		cmd.Println(line)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	if !knownKey(args[0]) {
		return fmt.Errorf("unknown setting %q: %w", args[0], domain.ErrInvalidInput)
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Println(settingValue(current, args[0]))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func knownKey(key string) bool {
	for _, k := range settingsService.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// settingValue formats the value stored under a config key.
func settingValue(s *domain.AppSettings, key string) string {
	switch key {
	case services.KeyAllowedHosts:
		return strings.Join(s.Import.AllowedHosts, ",")
	case services.KeyMinContentLength:
		return strconv.Itoa(s.Import.MinContentLength)
	case services.KeyFetchTimeout:
		return strconv.Itoa(s.Fetch.TimeoutSeconds)
	case services.KeyRequestsPerSecond:
		return strconv.FormatFloat(s.Fetch.RequestsPerSecond, 'g', -1, 64)
	case services.KeyReaderPageSize:
		return strconv.Itoa(s.Reader.PageSize)
	case services.KeyLibraryPageSize:
		return strconv.Itoa(s.Library.PageSize)
	case services.KeyPostProcessors:
		return strings.Join(s.Import.PostProcessors, ",")
	default:
		return ""
	}
}
