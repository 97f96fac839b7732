package mcp

import (
	"context"

	"github.com/custodia-labs/inscript/internal/core/domain"
)

// mockNoteService is a mock implementation of driving.NoteService.
type mockNoteService struct {
	notes   []domain.Note
	note    domain.Note
	err     error
	deleted []string
	updated []domain.Note
	drafts  []domain.NoteDraft
}

func (m *mockNoteService) Search(_ context.Context, _ string) ([]domain.Note, error) {
	return m.notes, m.err
}

func (m *mockNoteService) Add(_ context.Context, draft domain.NoteDraft) (domain.Note, error) {
	m.drafts = append(m.drafts, draft)
	if m.err != nil {
		return domain.Note{}, m.err
	}
	return draft.Note("new-1"), nil
}

func (m *mockNoteService) Update(_ context.Context, note domain.Note) (domain.Note, error) {
	m.updated = append(m.updated, note)
	if m.err != nil {
		return domain.Note{}, m.err
	}
	return note, nil
}

func (m *mockNoteService) Delete(_ context.Context, note domain.Note) error {
	m.deleted = append(m.deleted, note.ID)
	return m.err
}

func (m *mockNoteService) Get(_ context.Context, id string) (domain.Note, error) {
	if m.err != nil {
		return domain.Note{}, m.err
	}
	if m.note.ID == "" {
		return domain.Note{ID: id}, nil
	}
	return m.note, nil
}

func (m *mockNoteService) Subscribe() (<-chan domain.ChangeEvent, func()) {
	return make(chan domain.ChangeEvent), func() {}
}
