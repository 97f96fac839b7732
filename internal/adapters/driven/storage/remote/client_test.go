package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inscript/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/inscript/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/services"
)

// setupTestStore starts an API server over a memory store and returns a client for it.
func setupTestStore(t *testing.T) *NoteStore {
	t.Helper()

	api, err := httpapi.NewServer(services.NewNoteService(memory.NewNoteStore()))
	require.NoError(t, err)

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	store, err := NewNoteStore(srv.URL+"/", srv.Client())
	require.NoError(t, err)
	return store
}

func TestNewNoteStore_InvalidURL(t *testing.T) {
	tests := []string{"", "   ", "ftp://host", "::nope"}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			store, err := NewNoteStore(raw, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, store)
		})
	}
}

func TestNewNoteStore_DefaultClient(t *testing.T) {
	store, err := NewNoteStore("http://localhost:7077", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, store.client.Timeout)
}

func TestNoteStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	notes, err := store.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, notes)

	created, err := store.Add(ctx, domain.NoteDraft{})
	require.NoError(t, err)
	assert.Equal(t, domain.Note{ID: "1"}, created)

	updated, err := store.Update(ctx, domain.Note{ID: created.ID, Title: "Groceries", Content: "Milk, eggs"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Title)

	notes, err = store.Search(ctx, "Groceries")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, updated, notes[0])

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, store.Delete(ctx, created))

	notes, err = store.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteStore_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Update(ctx, domain.Note{ID: "404"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.Delete(ctx, domain.Note{ID: "404"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Get(ctx, "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteStore_ServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"database is locked"}`))
	}))
	defer srv.Close()

	store, err := NewNoteStore(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = store.Search(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "database is locked")
}

func TestNoteStore_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	store, err := NewNoteStore(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = store.Add(context.Background(), domain.NoteDraft{})
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestNoteStore_PathEscaping(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store, err := NewNoteStore(srv.URL, srv.Client())
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), domain.Note{ID: "a/b"}))
	assert.Equal(t, "/notes/a%2Fb", gotPath)
}

func TestNoteStore_CancelledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Search(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}
