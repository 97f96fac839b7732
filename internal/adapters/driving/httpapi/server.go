package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/custodia-labs/inscript/internal/core/ports/driving"
	"github.com/custodia-labs/inscript/internal/logger"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves the notes REST API.
type Server struct {
	notes driving.NoteService
	echo  *echo.Echo
}

// NewServer creates an API server backed by notes.
func NewServer(notes driving.NoteService) (*Server, error) {
	if notes == nil {
		return nil, errors.New("note service is required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(logger.Output())
	e.Logger.SetLevel(log.WARN)

	origErrHandler := e.HTTPErrorHandler
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		logger.Debug("HTTP %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		origErrHandler(err, c)
	}

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
		LogLevel:  log.ERROR,
		LogErrorFunc: func(_ echo.Context, err error, stack []byte) error {
			logger.Error("recovered panic: %v", err)
			for _, l := range strings.Split(string(stack), "\n") {
				logger.Debug("stack: %s", strings.ReplaceAll(l, "\t", "  "))
			}
			return nil
		},
	}))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}\n",
		Output: logger.Output(),
		Skipper: func(c echo.Context) bool {
			return !logger.IsVerbose() || c.Request().URL.Path == "/healthz"
		},
	}))

	s := &Server{notes: notes, echo: e}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	g := s.echo.Group("/notes")
	g.GET("", searchNotes(s.notes))
	g.POST("", addNote(s.notes))
	g.GET("/:id", getNote(s.notes))
	g.PUT("/:id", updateNote(s.notes))
	g.DELETE("/:id", deleteNote(s.notes))
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.echo.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving notes API on http://%s", addr)
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
