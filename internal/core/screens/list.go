package screens

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/ports/driving"
	"github.com/custodia-labs/inscript/internal/logger"
)

// Ticket identifies one search request issued by a ListScreen.
// Only the most recently issued ticket may update the display.
type Ticket struct {
	Seq   uint64
	Query string

	ctx context.Context
}

// Context returns the context the search must run under.
// It is cancelled as soon as a newer search is issued.
func (t Ticket) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// ListScreen shows the notes matching the current query.
type ListScreen struct {
	service driving.NoteService
	nav     Navigator

	mu      sync.Mutex
	query   string
	notes   []domain.Note
	shown   string // query the notes were loaded for
	seq     uint64
	cancel  context.CancelFunc
	loading bool
	notice  string
}

// NewListScreen creates a list screen.
func NewListScreen(service driving.NoteService, nav Navigator) *ListScreen {
	return &ListScreen{
		service: service,
		nav:     nav,
		notes:   []domain.Note{},
	}
}

// Mount loads the full collection.
func (l *ListScreen) Mount(ctx context.Context) error {
	return l.run(l.Begin(ctx, ""))
}

// SetQuery records the user's query and searches for it.
func (l *ListScreen) SetQuery(ctx context.Context, query string) error {
	l.ClearNotice()
	return l.run(l.Begin(ctx, query))
}

// Refresh repeats the search for the current query.
func (l *ListScreen) Refresh(ctx context.Context) error {
	return l.run(l.Begin(ctx, l.Query()))
}

// HandleChange refreshes the list after the store changed.
func (l *ListScreen) HandleChange(ctx context.Context, event domain.ChangeEvent) error {
	logger.Debug("List refresh after %s change", event.Type)
	return l.Refresh(ctx)
}

// Begin starts a new search for query and returns its ticket.
// Any search still in flight is cancelled and can no longer update the display.
func (l *ListScreen) Begin(parent context.Context, query string) Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	l.seq++
	l.cancel = cancel
	l.query = query
	l.loading = true

	return Ticket{Seq: l.seq, Query: query, ctx: ctx}
}

// Search runs the ticket's search against the service.
func (l *ListScreen) Search(ticket Ticket) ([]domain.Note, error) {
	return l.service.Search(ticket.Context(), ticket.Query)
}

// Apply shows the outcome of the ticket's search.
// It reports false, and changes nothing, when a newer search has been issued.
func (l *ListScreen) Apply(ticket Ticket, notes []domain.Note, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ticket.Seq != l.seq {
		logger.Debug("Dropping stale results for %q", ticket.Query)
		return false
	}

	l.loading = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	if err != nil {
		l.notice = fmt.Sprintf("Could not load notes: %v", err)
		// notes for another query would be shown under the wrong search text
		if ticket.Query != l.shown {
			l.notes = []domain.Note{}
			l.shown = ticket.Query
		}
		return true
	}

	l.notes = append([]domain.Note{}, notes...)
	l.shown = ticket.Query
	return true
}

// Select opens the editor for note.
func (l *ListScreen) Select(note domain.Note) {
	l.nav.OpenEditor(note)
}

// Add creates an empty note and opens it in the editor.
// The editor opens only after the store has assigned the note its ID.
func (l *ListScreen) Add(ctx context.Context) (domain.Note, error) {
	l.ClearNotice()

	note, err := l.service.Add(ctx, domain.NoteDraft{})
	if err != nil {
		l.setNotice(fmt.Sprintf("Could not create note: %v", err))
		return domain.Note{}, err
	}

	l.nav.OpenEditor(note)
	return note, nil
}

// Delete removes note from the store. The visible list is not touched;
// it updates once the service reports the change.
func (l *ListScreen) Delete(ctx context.Context, note domain.Note) error {
	l.ClearNotice()

	if err := l.service.Delete(ctx, note); err != nil {
		l.setNotice(fmt.Sprintf("Could not delete %q: %v", note.DisplayTitle(), err))
		return err
	}
	return nil
}

// Query returns the current query.
func (l *ListScreen) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Notes returns the notes currently shown.
func (l *ListScreen) Notes() []domain.Note {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Note{}, l.notes...)
}

// Loading reports whether the newest search has not finished yet.
func (l *ListScreen) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Columns splits the visible notes into two columns.
// Even positions go left and odd positions go right.
func (l *ListScreen) Columns() (left, right []domain.Note) {
	return SplitColumns(l.Notes())
}

// Notice returns the last error shown to the user, if any.
func (l *ListScreen) Notice() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.notice
}

// ClearNotice dismisses the notice.
func (l *ListScreen) ClearNotice() {
	l.setNotice("")
}

// IsEmpty reports whether there is nothing to show and nothing loading.
func (l *ListScreen) IsEmpty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.notes) == 0 && !l.loading
}

// EmptyMessage describes an empty list for the current query.
func (l *ListScreen) EmptyMessage() string {
	if q := strings.TrimSpace(l.Query()); q != "" {
		return fmt.Sprintf("No notes match %q", q)
	}
	return "No notes yet"
}

func (l *ListScreen) setNotice(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notice = msg
}

func (l *ListScreen) run(ticket Ticket) error {
	notes, err := l.Search(ticket)
	l.Apply(ticket, notes, err)
	return err
}

// SplitColumns distributes notes over two columns by index parity,
// keeping their relative order.
func SplitColumns(notes []domain.Note) (left, right []domain.Note) {
	left = make([]domain.Note, 0, (len(notes)+1)/2)
	right = make([]domain.Note, 0, len(notes)/2)
	for i, note := range notes {
		if i%2 == 0 {
			left = append(left, note)
		} else {
			right = append(right, note)
		}
	}
	return left, right
}
