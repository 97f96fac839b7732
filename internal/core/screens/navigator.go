package screens

import "github.com/custodia-labs/inscript/internal/core/domain"

// Navigator moves the user between screens.
type Navigator interface {
	// OpenEditor shows the editor for note.
	OpenEditor(note domain.Note)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(note domain.Note)

// OpenEditor calls f(note).
func (f NavigatorFunc) OpenEditor(note domain.Note) {
	f(note)
}
