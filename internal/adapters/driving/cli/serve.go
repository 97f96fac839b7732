package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inscript/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve notes over HTTP",
	Long: `Starts a JSON API over the note store:

  GET    /notes?q=<query>   search (empty query lists all)
  POST   /notes             create
  GET    /notes/:id         read
  PUT    /notes/:id         replace title and content
  DELETE /notes/:id         delete

Other inscript installations can use it by setting store.backend to
"remote" and store.remote_url to this server's URL.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr setting)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	notes, err := requireNotes()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = defaultServerAddr()
	}

	server, err := httpapi.NewServer(notes)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving notes on http://%s\n", addr)
	return server.Run(cmd.Context(), addr)
}

// defaultServerAddr reads server.addr, falling back to the built-in default.
func defaultServerAddr() string {
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Server.Addr != "" {
			return settings.Server.Addr
		}
	}
	return defaultSettings().Server.Addr
}
