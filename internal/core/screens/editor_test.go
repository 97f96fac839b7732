package screens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inscript/internal/core/domain"
)

func TestNewEditorScreen_InitialisedFromNote(t *testing.T) {
	note := domain.Note{ID: "1", Title: "Groceries", Content: "Milk"}
	editor := NewEditorScreen(&mockNoteService{}, note)

	assert.Equal(t, "1", editor.ID())
	assert.Equal(t, "Groceries", editor.Title())
	assert.Equal(t, "Milk", editor.Content())
	assert.Equal(t, note, editor.Note())
	assert.False(t, editor.Dirty())
	assert.Empty(t, editor.Notice())
}

func TestEditorScreen_EditsAreLocal(t *testing.T) {
	called := false
	service := &mockNoteService{
		UpdateFunc: func(_ context.Context, note domain.Note) (domain.Note, error) {
			called = true
			return note, nil
		},
	}
	editor := NewEditorScreen(service, domain.Note{ID: "1"})

	editor.SetTitle("Groceries")
	editor.SetContent("Milk, eggs")

	assert.False(t, called)
	assert.True(t, editor.Dirty())
}

func TestEditorScreen_Save_SendsFullRecord(t *testing.T) {
	var sent domain.Note
	service := &mockNoteService{
		UpdateFunc: func(_ context.Context, note domain.Note) (domain.Note, error) {
			sent = note
			return note, nil
		},
	}
	editor := NewEditorScreen(service, domain.Note{ID: "1", Title: "old", Content: "body"})

	editor.SetTitle("new")
	require.NoError(t, editor.Save(context.Background()))

	assert.Equal(t, domain.Note{ID: "1", Title: "new", Content: "body"}, sent)
	assert.Equal(t, SavedNotice, editor.Notice())
	assert.False(t, editor.Dirty())
	assert.False(t, editor.Saving())
}

func TestEditorScreen_Save_FailureKeepsLocalState(t *testing.T) {
	attempts := 0
	service := &mockNoteService{
		UpdateFunc: func(_ context.Context, note domain.Note) (domain.Note, error) {
			attempts++
			if attempts == 1 {
				return domain.Note{}, domain.ErrStoreUnavailable
			}
			return note, nil
		},
	}
	editor := NewEditorScreen(service, domain.Note{ID: "1"})
	editor.SetTitle("Groceries")
	editor.SetContent("Milk, eggs")

	err := editor.Save(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, editor.Notice(), "Could not save note")
	assert.Equal(t, "Groceries", editor.Title())
	assert.Equal(t, "Milk, eggs", editor.Content())
	assert.True(t, editor.Dirty())

	// Retry succeeds with the same local state.
	require.NoError(t, editor.Save(context.Background()))
	assert.Equal(t, SavedNotice, editor.Notice())
	assert.Equal(t, 2, attempts)
}

func TestEditorScreen_ClearNotice(t *testing.T) {
	editor := NewEditorScreen(&mockNoteService{}, domain.Note{ID: "1"})
	require.NoError(t, editor.Save(context.Background()))

	editor.ClearNotice()
	assert.Empty(t, editor.Notice())
}
