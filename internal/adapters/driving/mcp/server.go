package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/inscript/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions tells assistants how the notes tools fit together.
const instructions = `Inscript stores short notes, each with an id, a title and a body.

Use search_notes to find notes: it matches the query against titles and bodies
without regard to case, and an empty query lists every note in creation order.
Read a whole note with get_note or the inscript://notes/{noteId} resource.

add_note creates a note and returns its id. update_note replaces the whole
note, so send both the title and the body, not just the changed one.
delete_note removes a note permanently.`

// Server is the MCP server for Inscript.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "inscript",
		Title:   "Inscript notes",
		Version: Version,
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{
			Instructions: instructions,
		}),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves MCP over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Debug("Stopping MCP notes server on %s", addr)
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("MCP notes server listening on %s", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
