package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/inscript/internal/core/domain"
)

// NoteOutput is a note as returned by the tools.
type NoteOutput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SearchNotesInput is the input schema for the search_notes tool.
type SearchNotesInput struct {
	Query string `json:"query,omitempty" jsonschema:"text to look for in note titles and bodies; empty lists every note"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of notes to return (default 50)"`
}

// SearchNotesOutput is the output schema for the search_notes tool.
type SearchNotesOutput struct {
	Notes []NoteOutput `json:"notes"`
	Count int          `json:"count"`
	Total int          `json:"total"`
}

// NoteIDInput identifies a single note.
type NoteIDInput struct {
	ID string `json:"id" jsonschema:"the note id"`
}

// AddNoteInput is the input schema for the add_note tool.
type AddNoteInput struct {
	Title   string `json:"title,omitempty" jsonschema:"note title"`
	Content string `json:"content,omitempty" jsonschema:"note body"`
}

// UpdateNoteInput is the input schema for the update_note tool.
// Both fields are written; omitted fields become empty.
type UpdateNoteInput struct {
	ID      string `json:"id" jsonschema:"the note id"`
	Title   string `json:"title" jsonschema:"new title"`
	Content string `json:"content" jsonschema:"new body"`
}

// DeleteNoteOutput reports a deletion.
type DeleteNoteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

const defaultSearchLimit = 50

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_notes",
		Description: "Search notes by title or content",
	}, s.handleSearchNotes)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_note",
		Description: "Read a single note",
	}, s.handleGetNote)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_note",
		Description: "Create a new note",
	}, s.handleAddNote)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_note",
		Description: "Replace the title and content of a note",
	}, s.handleUpdateNote)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note",
	}, s.handleDeleteNote)
}

func (s *Server) handleSearchNotes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchNotesInput,
) (*mcp.CallToolResult, SearchNotesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	notes, err := s.ports.Notes.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchNotesOutput{}, err
	}

	total := len(notes)
	if len(notes) > limit {
		notes = notes[:limit]
	}

	output := SearchNotesOutput{
		Notes: make([]NoteOutput, len(notes)),
		Count: len(notes),
		Total: total,
	}
	for i, n := range notes {
		output.Notes[i] = toOutput(n)
	}

	return nil, output, nil
}

func (s *Server) handleGetNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NoteIDInput,
) (*mcp.CallToolResult, NoteOutput, error) {
	note, err := s.ports.Notes.Get(ctx, input.ID)
	if err != nil {
		return nil, NoteOutput{}, err
	}
	return nil, toOutput(note), nil
}

func (s *Server) handleAddNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddNoteInput,
) (*mcp.CallToolResult, NoteOutput, error) {
	note, err := s.ports.Notes.Add(ctx, domain.NoteDraft{Title: input.Title, Content: input.Content})
	if err != nil {
		return nil, NoteOutput{}, err
	}
	return nil, toOutput(note), nil
}

func (s *Server) handleUpdateNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateNoteInput,
) (*mcp.CallToolResult, NoteOutput, error) {
	note, err := s.ports.Notes.Update(ctx, domain.Note{
		ID:      input.ID,
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return nil, NoteOutput{}, err
	}
	return nil, toOutput(note), nil
}

func (s *Server) handleDeleteNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NoteIDInput,
) (*mcp.CallToolResult, DeleteNoteOutput, error) {
	if err := s.ports.Notes.Delete(ctx, domain.Note{ID: input.ID}); err != nil {
		return nil, DeleteNoteOutput{}, err
	}
	return nil, DeleteNoteOutput{ID: input.ID, Deleted: true}, nil
}

func toOutput(n domain.Note) NoteOutput {
	return NoteOutput{ID: n.ID, Title: n.Title, Content: n.Content}
}
