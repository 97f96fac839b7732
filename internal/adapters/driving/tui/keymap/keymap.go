// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// Letter keys are left free for typing into the search box and the editor.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back leaves the editor, or clears the search.
	Back key.Binding

	// Up, Down, Left and Right move across the note columns.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Open edits the selected note.
	Open key.Binding

	// Add creates a note and opens it.
	Add key.Binding

	// Delete removes the selected note.
	Delete key.Binding

	// Save writes the edited note.
	Save key.Binding

	// NextField toggles between title and content.
	NextField key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Add: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
	}
}

// ListHelp returns keybindings shown on the notes list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Add, k.Open, k.Delete, k.Quit}
}

// EditorHelp returns keybindings shown in the editor.
func (k *KeyMap) EditorHelp() []key.Binding {
	return []key.Binding{k.Save, k.NextField, k.Back}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
