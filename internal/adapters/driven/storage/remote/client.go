// Package remote implements driven.NoteStore against an inscript HTTP API server.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/ports/driven"
)

// DefaultTimeout bounds each request when the caller's context has no deadline.
const DefaultTimeout = 10 * time.Second

// Ensure NoteStore implements the interface.
var _ driven.NoteStore = (*NoteStore)(nil)

// NoteStore talks to the notes REST API.
type NoteStore struct {
	baseURL *url.URL
	client  *http.Client
}

// NewNoteStore creates a client for the server at baseURL.
// A nil client uses one with DefaultTimeout.
func NewNoteStore(baseURL string, client *http.Client) (*NoteStore, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("%w: remote url is empty", domain.ErrInvalidInput)
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: remote url: %v", domain.ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: remote url must be http or https", domain.ErrInvalidInput)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &NoteStore{baseURL: u, client: client}, nil
}

// Search returns the notes matching query.
func (s *NoteStore) Search(ctx context.Context, query string) ([]domain.Note, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}

	notes := []domain.Note{}
	if err := s.do(ctx, http.MethodGet, "/notes", q, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Add creates a note on the server.
func (s *NoteStore) Add(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	var note domain.Note
	if err := s.do(ctx, http.MethodPost, "/notes", nil, draft, &note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

// Update replaces a note on the server.
func (s *NoteStore) Update(ctx context.Context, note domain.Note) (domain.Note, error) {
	var updated domain.Note
	if err := s.do(ctx, http.MethodPut, notePath(note.ID), nil, note.Draft(), &updated); err != nil {
		return domain.Note{}, err
	}
	return updated, nil
}

// Delete removes a note on the server.
func (s *NoteStore) Delete(ctx context.Context, note domain.Note) error {
	return s.do(ctx, http.MethodDelete, notePath(note.ID), nil, nil, nil)
}

// Get fetches one note.
func (s *NoteStore) Get(ctx context.Context, id string) (domain.Note, error) {
	var note domain.Note
	if err := s.do(ctx, http.MethodGet, notePath(id), nil, nil, &note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func notePath(id string) string {
	return "/notes/" + url.PathEscape(id)
}

// do sends one request and decodes a JSON response into out, if non-nil.
// path must already be escaped.
func (s *NoteStore) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *s.baseURL
	u.RawPath = strings.TrimRight(s.baseURL.EscapedPath(), "/") + path
	unescaped, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return fmt.Errorf("building request path: %w", err)
	}
	u.Path = unescaped
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return responseError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// apiError mirrors the server's error body.
type apiError struct {
	Error string `json:"error"`
}

// responseError maps an error response back to a domain error.
func responseError(resp *http.Response) error {
	var body apiError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
	}
	if body.Error == "" {
		body.Error = resp.Status
	}

	var kind error
	switch resp.StatusCode {
	case http.StatusNotFound:
		kind = domain.ErrNotFound
	case http.StatusBadRequest:
		kind = domain.ErrInvalidInput
	default:
		kind = domain.ErrStoreUnavailable
	}
	return errors.Join(kind, fmt.Errorf("server: %s", body.Error))
}
