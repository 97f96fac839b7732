package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inscript/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:         "settings",
	Short:       "Manage application settings",
	Long:        `View and change where notes are stored and how search behaves.`,
	Annotations: map[string]string{annotationNoNotes: "true"},
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoNotes: "true"},
	RunE:        runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  store.backend          sqlite, memory or remote
  store.data_dir         SQLite data directory
  store.remote_url       base URL of an "inscript serve" instance
  search.debounce_ms     delay before searching while typing (0 = none)
  search.rate_per_second maximum searches per second (0 = unlimited)
  search.burst           searches allowed at once above the rate
  server.addr            listen address for "inscript serve"`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationNoNotes: "true"},
	RunE:        runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current Settings")
	fmt.Fprintln(out, "================")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Store]")
	fmt.Fprintf(out, "  Backend: %s\n", settings.Store.Backend.Description())
	switch settings.Store.Backend {
	case domain.StoreBackendSQLite:
		fmt.Fprintf(out, "  Data directory: %s\n", valueOr(settings.Store.DataDir, "(default)"))
	case domain.StoreBackendRemote:
		fmt.Fprintf(out, "  Remote URL: %s\n", valueOr(settings.Store.RemoteURL, "(not set)"))
	case domain.StoreBackendMemory:
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Search]")
	fmt.Fprintf(out, "  Debounce: %dms\n", settings.Search.DebounceMS)
	if settings.Search.RatePerSecond > 0 {
		fmt.Fprintf(out, "  Rate limit: %g/s (burst %d)\n", settings.Search.RatePerSecond, settings.Search.Burst)
	} else {
		fmt.Fprintln(out, "  Rate limit: unlimited")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Server]")
	fmt.Fprintf(out, "  Address: %s\n", settings.Server.Addr)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	if err := svc.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("setting %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	return nil
}

func defaultSettings() domain.AppSettings {
	if settingsService != nil {
		return settingsService.GetDefaults()
	}
	return domain.DefaultAppSettings()
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
