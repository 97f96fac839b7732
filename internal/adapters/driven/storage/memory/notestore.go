package memory

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/ports/driven"
)

// Ensure NoteStore implements the interface.
var _ driven.NoteStore = (*NoteStore)(nil)

// NoteStore is an in-memory implementation of driven.NoteStore.
// IDs are sequential decimal strings starting at "1".
type NoteStore struct {
	mu     sync.RWMutex
	notes  map[string]domain.Note
	order  []string
	nextID int
}

// NewNoteStore creates a new in-memory note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{
		notes:  make(map[string]domain.Note),
		nextID: 1,
	}
}

// Search returns notes whose title or content contains query,
// case-insensitively, in creation order. An empty query matches all notes.
func (s *NoteStore) Search(ctx context.Context, query string) ([]domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	result := make([]domain.Note, 0, len(s.order))
	for _, id := range s.order {
		note := s.notes[id]
		if needle == "" || matches(note, needle) {
			result = append(result, note)
		}
	}
	return result, nil
}

// Add stores a new note and assigns it an ID.
func (s *NoteStore) Add(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return domain.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := draft.Note(strconv.Itoa(s.nextID))
	s.nextID++
	s.notes[note.ID] = note
	s.order = append(s.order, note.ID)
	return note, nil
}

// Update replaces the title and content of an existing note.
func (s *NoteStore) Update(ctx context.Context, note domain.Note) (domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return domain.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[note.ID]; !ok {
		return domain.Note{}, domain.ErrNotFound
	}
	s.notes[note.ID] = note
	return note, nil
}

// Delete removes a note by ID.
func (s *NoteStore) Delete(ctx context.Context, note domain.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[note.ID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.notes, note.ID)
	for i, id := range s.order {
		if id == note.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get retrieves a note by ID.
func (s *NoteStore) Get(ctx context.Context, id string) (domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return domain.Note{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return domain.Note{}, domain.ErrNotFound
	}
	return note, nil
}

// Count returns the number of stored notes.
func (s *NoteStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func matches(note domain.Note, needle string) bool {
	return strings.Contains(strings.ToLower(note.Title), needle) ||
		strings.Contains(strings.ToLower(note.Content), needle)
}
