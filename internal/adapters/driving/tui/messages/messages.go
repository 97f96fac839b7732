// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/screens"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewNotes is the searchable notes list.
	ViewNotes ViewType = iota
	// ViewEditor edits a single note.
	ViewEditor
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewNotes:
		return "notes"
	case ViewEditor:
		return "editor"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SearchDebounced fires once typing has paused.
// Token must match the view's latest token or the message is ignored.
type SearchDebounced struct {
	Token int
	Query string
}

// NotesLoaded carries the outcome of one search.
type NotesLoaded struct {
	Ticket screens.Ticket
	Notes  []domain.Note
	Err    error
}

// NotesChanged signals that the note collection changed.
type NotesChanged struct {
	Event domain.ChangeEvent
}

// OpenEditor asks the app to show the editor for Note.
type OpenEditor struct {
	Note domain.Note
}

// NoteAdded reports a failed add. Successful adds arrive as OpenEditor.
type NoteAdded struct {
	Err error
}

// NoteDeleted reports the outcome of a delete.
type NoteDeleted struct {
	ID  string
	Err error
}

// NoteSaved reports the outcome of an editor save.
type NoteSaved struct {
	ID  string
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
