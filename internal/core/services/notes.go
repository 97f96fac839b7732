package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/ports/driven"
	"github.com/custodia-labs/inscript/internal/core/ports/driving"
	"github.com/custodia-labs/inscript/internal/logger"
)

// Ensure NoteService implements the interface.
var _ driving.NoteService = (*NoteService)(nil)

// NoteService manages notes on top of a NoteStore and notifies
// subscribers after every successful mutation.
type NoteService struct {
	store   driven.NoteStore
	watcher driven.ChangeWatcher
	limiter *rate.Limiter
	broker  *changeBroker
}

// NewNoteService creates a new note service.
func NewNoteService(store driven.NoteStore) *NoteService {
	return &NoteService{
		store:  store,
		broker: newChangeBroker(defaultSubscriberBuffer),
	}
}

// SetWatcher sets the optional watcher for changes made by other processes.
func (s *NoteService) SetWatcher(w driven.ChangeWatcher) {
	s.watcher = w
}

// SetSearchRateLimit caps how many searches per second reach the store.
// A non-positive rate removes the limit.
func (s *NoteService) SetSearchRateLimit(perSecond float64, burst int) {
	if perSecond <= 0 {
		s.limiter = nil
		return
	}
	if burst < 1 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Search returns notes matching query. An empty query returns all notes.
func (s *NoteService) Search(ctx context.Context, query string) ([]domain.Note, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	query = strings.TrimSpace(query)
	logger.Debug("Search notes: %q", query)

	if s.limiter != nil {
		// A superseded search is cancelled while it waits here.
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("search notes: %w", err)
		}
	}

	notes, err := s.store.Search(ctx, query)
	if err != nil {
		return nil, storeError("search notes", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}

	logger.Debug("Search %q matched %d notes", query, len(notes))
	return notes, nil
}

// Add creates a note and returns it with its store-assigned ID.
func (s *NoteService) Add(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	if s.store == nil {
		return domain.Note{}, domain.ErrNotImplemented
	}

	note, err := s.store.Add(ctx, draft)
	if err != nil {
		return domain.Note{}, storeError("add note", err)
	}

	logger.Info("Added note %s", note.ID)
	s.broker.publish(domain.ChangeEvent{Type: domain.ChangeCreated, NoteID: note.ID})
	return note, nil
}

// Update persists the full title and content of an existing note.
func (s *NoteService) Update(ctx context.Context, note domain.Note) (domain.Note, error) {
	if s.store == nil {
		return domain.Note{}, domain.ErrNotImplemented
	}
	if note.ID == "" {
		return domain.Note{}, fmt.Errorf("update note: %w: empty id", domain.ErrInvalidInput)
	}

	updated, err := s.store.Update(ctx, note)
	if err != nil {
		return domain.Note{}, storeError("update note", err)
	}

	logger.Info("Updated note %s", updated.ID)
	s.broker.publish(domain.ChangeEvent{Type: domain.ChangeUpdated, NoteID: updated.ID})
	return updated, nil
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, note domain.Note) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if note.ID == "" {
		return fmt.Errorf("delete note: %w: empty id", domain.ErrInvalidInput)
	}

	if err := s.store.Delete(ctx, note); err != nil {
		return storeError("delete note", err)
	}

	logger.Info("Deleted note %s", note.ID)
	s.broker.publish(domain.ChangeEvent{Type: domain.ChangeDeleted, NoteID: note.ID})
	return nil
}

// Get retrieves a note by ID.
func (s *NoteService) Get(ctx context.Context, id string) (domain.Note, error) {
	if s.store == nil {
		return domain.Note{}, domain.ErrNotImplemented
	}
	if id == "" {
		return domain.Note{}, fmt.Errorf("get note: %w: empty id", domain.ErrInvalidInput)
	}

	note, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Note{}, storeError("get note", err)
	}
	return note, nil
}

// Subscribe registers for change notifications.
func (s *NoteService) Subscribe() (<-chan domain.ChangeEvent, func()) {
	return s.broker.subscribe()
}

// Watch forwards external changes reported by the watcher to subscribers
// until ctx is cancelled. Without a watcher it does nothing.
func (s *NoteService) Watch(ctx context.Context) error {
	if s.watcher == nil {
		return nil
	}

	changes, err := s.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch store: %w", err)
	}

	go func() {
		for range changes {
			logger.Debug("External store change detected")
			s.broker.publish(domain.ChangeEvent{Type: domain.ChangeExternal})
		}
	}()
	return nil
}

// storeError classifies a store failure. Domain errors and cancellation pass
// through; anything else is reported as ErrStoreUnavailable.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotImplemented),
		errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		logger.Warn("%s failed: %v", op, err)
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
}
