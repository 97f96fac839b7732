package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/ports/driving"
)

// SavedNotice is shown after a successful save.
const SavedNotice = "Your note has been saved."

// EditorScreen edits the title and content of one note.
// Edits stay local until Save is called.
type EditorScreen struct {
	service driving.NoteService

	mu      sync.Mutex
	id      string
	title   string
	content string
	saved   domain.Note
	saving  bool
	notice  string
}

// NewEditorScreen opens note for editing.
func NewEditorScreen(service driving.NoteService, note domain.Note) *EditorScreen {
	return &EditorScreen{
		service: service,
		id:      note.ID,
		title:   note.Title,
		content: note.Content,
		saved:   note,
	}
}

// ID returns the ID of the note being edited.
func (e *EditorScreen) ID() string {
	return e.id
}

// Title returns the local title.
func (e *EditorScreen) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title
}

// Content returns the local content.
func (e *EditorScreen) Content() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content
}

// SetTitle changes the local title.
func (e *EditorScreen) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.title = title
}

// SetContent changes the local content.
func (e *EditorScreen) SetContent(content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content = content
}

// Note returns the note as currently edited.
func (e *EditorScreen) Note() domain.Note {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Dirty reports whether there are edits that have not been saved.
func (e *EditorScreen) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot() != e.saved
}

// Saving reports whether a save is in flight.
func (e *EditorScreen) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Save persists the full local title and content.
// On failure the local edits are kept so the user can retry.
func (e *EditorScreen) Save(ctx context.Context) error {
	e.mu.Lock()
	note := e.snapshot()
	e.saving = true
	e.notice = ""
	e.mu.Unlock()

	updated, err := e.service.Update(ctx, note)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if err != nil {
		e.notice = fmt.Sprintf("Could not save note: %v", err)
		return err
	}
	e.saved = updated
	e.notice = SavedNotice
	return nil
}

// Notice returns the outcome of the last save, if any.
func (e *EditorScreen) Notice() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notice
}

// ClearNotice dismisses the notice.
func (e *EditorScreen) ClearNotice() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notice = ""
}

func (e *EditorScreen) snapshot() domain.Note {
	return domain.Note{ID: e.id, Title: e.title, Content: e.content}
}
