package driving

import (
	"context"

	"github.com/custodia-labs/inscript/internal/core/domain"
)

// NoteService is the note management contract used by the screens, the CLI,
// the HTTP API and the MCP server.
type NoteService interface {
	// Search returns notes matching query. An empty query returns all notes.
	Search(ctx context.Context, query string) ([]domain.Note, error)

	// Add creates a note and returns it with its store-assigned ID.
	Add(ctx context.Context, draft domain.NoteDraft) (domain.Note, error)

	// Update persists the full title and content of an existing note.
	Update(ctx context.Context, note domain.Note) (domain.Note, error)

	// Delete removes a note.
	Delete(ctx context.Context, note domain.Note) error

	// Get retrieves a note by ID.
	Get(ctx context.Context, id string) (domain.Note, error)

	// Subscribe registers for change notifications. The returned function
	// unsubscribes and closes the channel.
	Subscribe() (<-chan domain.ChangeEvent, func())
}
