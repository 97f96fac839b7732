package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inscript/internal/adapters/driving/tui"
	"github.com/custodia-labs/inscript/internal/logger"
)

var tuiLogFile string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive notes list.

Type to filter notes by title or body. Changes made by other inscript
processes show up automatically.

Controls:
  ↑/↓/←/→ - Move between notes
  Enter   - Open the selected note
  Ctrl+N  - New note
  Ctrl+D  - Delete the selected note
  Esc     - Clear the search / leave the editor
  Tab     - Switch between title and content (editor)
  Ctrl+S  - Save (editor)
  Ctrl+C  - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file while the TUI runs")
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the TUI. Replaced in tests.
var newTUIApp = func(ports *tui.Ports) (tuiRunner, error) {
	return tui.NewApp(ports)
}

// tuiRunner is the part of the TUI app the command drives.
type tuiRunner interface {
	WithContext(ctx context.Context) *tui.App
	Run() error
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	notes, err := requireNotes()
	if err != nil {
		return err
	}

	// log lines would tear the alternate screen
	restore, err := redirectLogs(tuiLogFile)
	if err != nil {
		return err
	}
	defer restore()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if services != nil && services.Watch != nil {
		if err := services.Watch(ctx); err != nil {
			logger.Warn("Watching for external changes: %v", err)
		}
	}

	app, err := newTUIApp(tui.NewPorts(notes, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs sends log output to path, or discards it when path is empty.
// The returned function restores the previous writer.
func redirectLogs(path string) (func(), error) {
	previous := logger.Output()

	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(previous) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(previous)
		f.Close()
	}, nil
}
