// Package notes provides the searchable notes list view for the TUI.
package notes

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/screens"
)

// View shows the search box above a two-column grid of notes.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	screen    *screens.ListScreen
	input     *input.SearchInput
	grid      *list.NoteGrid
	statusbar *status.Bar
	ctx       context.Context

	debounce time.Duration
	token    int

	width  int
	height int
	ready  bool
}

// NewView creates the notes view around a list screen.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	screen *screens.ListScreen,
	debounce time.Duration,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		screen:    screen,
		input:     input.NewSearchInput(s),
		grid:      list.NewNoteGrid(s),
		statusbar: status.NewBar(s, km.ListHelp()),
		ctx:       context.Background(),
		debounce:  debounce,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context searches and mutations run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads every note.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.search(""))
}

// Update handles messages for the notes view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchDebounced:
		if msg.Token != v.token {
			return v, nil
		}
		return v, v.search(msg.Query)

	case messages.NotesLoaded:
		v.handleNotesLoaded(msg)
		return v, nil

	case messages.NotesChanged:
		return v, v.search(v.screen.Query())

	case messages.NoteAdded:
		v.syncNotice()
		return v, nil

	case messages.NoteDeleted:
		v.syncNotice()
		return v, nil
	}

	cmd, _ := v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.grid.MoveUp()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.grid.MoveDown()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Left):
		v.grid.MoveLeft()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Right):
		v.grid.MoveRight()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Open):
		return v, v.openSelected()
	case keymap.Matches(msg.String(), v.keymap.Add):
		return v, v.addNote()
	case keymap.Matches(msg.String(), v.keymap.Delete):
		return v, v.deleteSelected()
	case keymap.Matches(msg.String(), v.keymap.Back):
		if v.input.Value() == "" {
			return v, nil
		}
		v.input.SetValue("")
		return v, v.queryChanged()
	}

	cmd, changed := v.input.Update(msg)
	if !changed {
		return v, cmd
	}
	return v, tea.Batch(cmd, v.queryChanged())
}

// queryChanged schedules a search for the current input once typing pauses.
func (v *View) queryChanged() tea.Cmd {
	v.token++
	v.screen.ClearNotice()
	query := v.input.Value()

	if v.debounce <= 0 {
		return v.search(query)
	}

	token := v.token
	return tea.Tick(v.debounce, func(time.Time) tea.Msg {
		return messages.SearchDebounced{Token: token, Query: query}
	})
}

// search starts a search and returns the command that runs it.
// Starting it here, on the update loop, cancels any older search before
// its results can arrive.
func (v *View) search(query string) tea.Cmd {
	ticket := v.screen.Begin(v.ctx, query)
	v.statusbar.SetState(status.StateLoading)

	screen := v.screen
	return func() tea.Msg {
		notes, err := screen.Search(ticket)
		return messages.NotesLoaded{Ticket: ticket, Notes: notes, Err: err}
	}
}

func (v *View) handleNotesLoaded(msg messages.NotesLoaded) {
	if !v.screen.Apply(msg.Ticket, msg.Notes, msg.Err) {
		return
	}
	v.grid.SetNotes(v.screen.Notes())
	v.statusbar.SetNoteCount(len(v.grid.Notes()))
	v.syncNotice()
}

// openSelected hands the selected note to the navigator off the update loop,
// since navigation may block until the app picks it up.
func (v *View) openSelected() tea.Cmd {
	note, ok := v.grid.Selected()
	if !ok {
		return nil
	}

	screen := v.screen
	return func() tea.Msg {
		screen.Select(note)
		return nil
	}
}

func (v *View) addNote() tea.Cmd {
	ctx := v.ctx
	screen := v.screen
	return func() tea.Msg {
		_, err := screen.Add(ctx)
		if err != nil {
			return messages.NoteAdded{Err: err}
		}
		return nil
	}
}

func (v *View) deleteSelected() tea.Cmd {
	note, ok := v.grid.Selected()
	if !ok {
		return nil
	}

	ctx := v.ctx
	screen := v.screen
	return func() tea.Msg {
		err := screen.Delete(ctx, note)
		return messages.NoteDeleted{ID: note.ID, Err: err}
	}
}

// syncNotice mirrors the list screen's state onto the status bar.
func (v *View) syncNotice() {
	if notice := v.screen.Notice(); notice != "" {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(notice)
		return
	}
	v.statusbar.Clear()
	if v.screen.Loading() {
		v.statusbar.SetState(status.StateLoading)
	}
}

// View renders the notes view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)
	sections = append(sections, v.styles.Title.Render("Inscript"), "", v.input.View(), "")

	if v.screen.IsEmpty() {
		sections = append(sections, v.styles.Muted.Render(v.screen.EmptyMessage()))
	} else {
		sections = append(sections, v.grid.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	// header, search box, status bar and spacing
	gridHeight := height - 9
	if gridHeight < 6 {
		gridHeight = 6
	}
	v.grid.SetDimensions(width, gridHeight)
}

// Query returns the text in the search box.
func (v *View) Query() string {
	return v.input.Value()
}

// Notes returns the notes shown in the grid.
func (v *View) Notes() []domain.Note {
	return v.grid.Notes()
}

// Selected returns the highlighted note, if any.
func (v *View) Selected() (domain.Note, bool) {
	return v.grid.Selected()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Ready reports whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}
