package domain

// Note is the sole entity of the notes app.
type Note struct {
	// ID is assigned by the store when the note is created and never changes.
	ID string `json:"id"`

	// Title is the note heading. Empty by default.
	Title string `json:"title"`

	// Content is the note body. Empty by default.
	Content string `json:"content"`
}

// NoteDraft holds the fields of a note that does not have an ID yet.
type NoteDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Note converts the draft into a note with the given ID.
func (d NoteDraft) Note(id string) Note {
	return Note{ID: id, Title: d.Title, Content: d.Content}
}

// Draft returns the editable fields of the note.
func (n Note) Draft() NoteDraft {
	return NoteDraft{Title: n.Title, Content: n.Content}
}

// DisplayTitle returns the title, or a placeholder for untitled notes.
func (n Note) DisplayTitle() string {
	if n.Title == "" {
		return "(Untitled)"
	}
	return n.Title
}
