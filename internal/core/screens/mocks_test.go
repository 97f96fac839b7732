package screens

import (
	"context"

	"github.com/custodia-labs/inscript/internal/core/domain"
)

// mockNoteService implements driving.NoteService for testing.
type mockNoteService struct {
	SearchFunc func(ctx context.Context, query string) ([]domain.Note, error)
	AddFunc    func(ctx context.Context, draft domain.NoteDraft) (domain.Note, error)
	UpdateFunc func(ctx context.Context, note domain.Note) (domain.Note, error)
	DeleteFunc func(ctx context.Context, note domain.Note) error
	GetFunc    func(ctx context.Context, id string) (domain.Note, error)
}

func (m *mockNoteService) Search(ctx context.Context, query string) ([]domain.Note, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []domain.Note{}, nil
}

func (m *mockNoteService) Add(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, draft)
	}
	return draft.Note("1"), nil
}

func (m *mockNoteService) Update(ctx context.Context, note domain.Note) (domain.Note, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, note)
	}
	return note, nil
}

func (m *mockNoteService) Delete(ctx context.Context, note domain.Note) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, note)
	}
	return nil
}

func (m *mockNoteService) Get(ctx context.Context, id string) (domain.Note, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return domain.Note{ID: id}, nil
}

func (m *mockNoteService) Subscribe() (<-chan domain.ChangeEvent, func()) {
	ch := make(chan domain.ChangeEvent)
	return ch, func() {}
}

// recordingNavigator records every editor the screen opens.
type recordingNavigator struct {
	opened []domain.Note
}

func (r *recordingNavigator) OpenEditor(note domain.Note) {
	r.opened = append(r.opened, note)
}
