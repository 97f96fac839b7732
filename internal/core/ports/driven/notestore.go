package driven

import (
	"context"

	"github.com/custodia-labs/inscript/internal/core/domain"
)

// NoteStore owns the persisted collection of notes.
//
// After Add, Update or Delete return, a subsequent Search from the same
// process must reflect the mutation.
type NoteStore interface {
	// Search returns notes whose title or content contains query
	// (case-insensitive). An empty query returns every note.
	Search(ctx context.Context, query string) ([]domain.Note, error)

	// Add creates a note from draft and returns it with its assigned ID.
	Add(ctx context.Context, draft domain.NoteDraft) (domain.Note, error)

	// Update replaces the title and content of the note with note.ID.
	// Returns domain.ErrNotFound if no such note exists.
	Update(ctx context.Context, note domain.Note) (domain.Note, error)

	// Delete removes the note with note.ID.
	// Returns domain.ErrNotFound if no such note exists.
	Delete(ctx context.Context, note domain.Note) error

	// Get retrieves a single note by ID.
	Get(ctx context.Context, id string) (domain.Note, error)
}
