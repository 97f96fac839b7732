package domain

// ChangeType identifies the kind of mutation a ChangeEvent describes.
type ChangeType string

const (
	// ChangeCreated is published after a note is added.
	ChangeCreated ChangeType = "created"
	// ChangeUpdated is published after a note is updated.
	ChangeUpdated ChangeType = "updated"
	// ChangeDeleted is published after a note is deleted.
	ChangeDeleted ChangeType = "deleted"
	// ChangeExternal is published when the store was modified outside this process.
	// NoteID is empty for external changes.
	ChangeExternal ChangeType = "external"
)

// String returns the string representation.
func (t ChangeType) String() string {
	return string(t)
}

// ChangeEvent notifies subscribers that the note collection changed.
type ChangeEvent struct {
	Type   ChangeType
	NoteID string
}
