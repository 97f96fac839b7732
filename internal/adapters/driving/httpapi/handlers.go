package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/ports/driving"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NotePayload is the request body for creating or updating a note.
type NotePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func searchNotes(notes driving.NoteService) echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := notes.Search(c.Request().Context(), c.QueryParam("q"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, result)
	}
}

func addNote(notes driving.NoteService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var payload NotePayload
		if err := bindPayload(c, &payload); err != nil {
			return writeError(c, err)
		}

		note, err := notes.Add(c.Request().Context(), domain.NoteDraft(payload))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, note)
	}
}

func getNote(notes driving.NoteService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := noteID(c)
		if err != nil {
			return writeError(c, err)
		}
		note, err := notes.Get(c.Request().Context(), id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, note)
	}
}

func updateNote(notes driving.NoteService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := noteID(c)
		if err != nil {
			return writeError(c, err)
		}
		var payload NotePayload
		if err := bindPayload(c, &payload); err != nil {
			return writeError(c, err)
		}

		note := domain.Note{ID: id, Title: payload.Title, Content: payload.Content}
		updated, err := notes.Update(c.Request().Context(), note)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

func deleteNote(notes driving.NoteService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := noteID(c)
		if err != nil {
			return writeError(c, err)
		}
		if err := notes.Delete(c.Request().Context(), domain.Note{ID: id}); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// noteID returns the unescaped :id path parameter. Echo matches on the raw
// path when the request has one, so an escaped id arrives still escaped.
func noteID(c echo.Context) (string, error) {
	id, err := url.PathUnescape(c.Param("id"))
	if err != nil {
		return "", fmt.Errorf("%w: note id: %v", domain.ErrInvalidInput, err)
	}
	return id, nil
}

// bindPayload decodes the JSON body. An empty body is a valid empty payload.
func bindPayload(c echo.Context, payload *NotePayload) error {
	if c.Request().ContentLength == 0 {
		return nil
	}
	if err := c.Bind(payload); err != nil {
		return errors.Join(domain.ErrInvalidInput, err)
	}
	return nil
}

func writeError(c echo.Context, err error) error {
	return c.JSON(StatusFor(err), ErrorResponse{Error: err.Error()})
}

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
