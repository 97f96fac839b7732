// Package cli provides the cobra command tree for the inscript binary.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/inscript/internal/core/ports/driving"
	"github.com/custodia-labs/inscript/internal/logger"
)

// EnvHome overrides the default config directory.
const EnvHome = "INSCRIPT_HOME"

// annotationNoNotes marks commands that run without opening the note store.
const annotationNoNotes = "inscript/no-notes"

// Services are the core services the commands drive.
type Services struct {
	Notes    driving.NoteService
	Settings driving.SettingsService

	// Watch follows changes made by other processes until ctx is done. Optional.
	Watch func(ctx context.Context) error

	// Close releases the note store. Optional.
	Close func() error
}

// BuildOptions tells a Builder what the running command needs.
type BuildOptions struct {
	// ConfigDir is the config directory. Empty means the default.
	ConfigDir string

	// Notes is false for commands that only touch settings.
	Notes bool
}

// Builder creates the services once flags have been parsed.
type Builder func(opts BuildOptions) (*Services, error)

var (
	version   = "dev"
	verbose   bool
	configDir string

	builder         Builder
	services        *Services
	noteService     driving.NoteService
	settingsService driving.SettingsService
)

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "inscript",
	Short: "Searchable notes in your terminal",
	Long: `Inscript keeps short notes with a title and a body and finds them as you type.

Run without a command to open the interactive notes list, or use the
commands below to script it. When stdout is not a terminal the notes
are listed instead.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isTerminal() {
			return runTUI(cmd, args)
		}
		return runList(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"config directory (default $"+EnvHome+" or ~/.inscript)")
}

// SetBuilder sets the function that creates services for each run.
func SetBuilder(b Builder) {
	builder = b
}

// SetServices installs ready-made services, bypassing the builder.
func SetServices(s *Services) {
	services = s
	if s == nil {
		noteService = nil
		settingsService = nil
		return
	}
	noteService = s.Notes
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the command tree.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if services != nil || builder == nil {
		return nil
	}

	built, err := builder(BuildOptions{
		ConfigDir: resolveConfigDir(),
		Notes:     cmd.Annotations[annotationNoNotes] == "",
	})
	if err != nil {
		return err
	}
	SetServices(built)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if services == nil || services.Close == nil {
		return nil
	}
	if err := services.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

// resolveConfigDir picks the config directory from the flag, then the environment.
func resolveConfigDir() string {
	if configDir != "" {
		return configDir
	}
	return os.Getenv(EnvHome)
}

func requireNotes() (driving.NoteService, error) {
	if noteService == nil {
		return nil, errors.New("note service not configured")
	}
	return noteService, nil
}

func requireSettings() (driving.SettingsService, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return settingsService, nil
}
