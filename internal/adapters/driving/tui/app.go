package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/views/editor"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/views/notes"
	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/screens"
	"github.com/custodia-labs/inscript/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// notesView is the searchable list of notes.
	notesView *notes.View

	// editorView edits the note picked from the list.
	editorView *editor.View

	// navigation carries notes the list screen asked to open.
	navigation chan domain.Note

	// changes delivers note change events from the service.
	changes     <-chan domain.ChangeEvent
	unsubscribe func()
	closeOnce   sync.Once

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// Close must be called when the app is no longer used.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		navigation:  make(chan domain.Note, 1),
		currentView: messages.ViewNotes,
	}

	list := screens.NewListScreen(ports.Notes, screens.NavigatorFunc(a.openEditor))
	a.notesView = notes.NewView(s, km, list, searchDebounce(ports))
	a.editorView = editor.NewView(s, km, ports.Notes)
	a.changes, a.unsubscribe = ports.Notes.Subscribe()

	return a, nil
}

// searchDebounce reads the debounce delay from settings, falling back to the default.
func searchDebounce(ports *Ports) time.Duration {
	if ports.Settings != nil {
		settings, err := ports.Settings.Get()
		if err == nil {
			return settings.Search.Debounce()
		}
		logger.Warn("Reading settings: %v", err)
	}
	defaults := domain.DefaultAppSettings()
	return defaults.Search.Debounce()
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.notesView.WithContext(ctx)
	a.editorView.WithContext(ctx)
	return a
}

// openEditor is the list screen's navigator. It runs inside commands, so it
// may block until the update loop receives the note.
func (a *App) openEditor(note domain.Note) {
	select {
	case a.navigation <- note:
	case <-a.ctx.Done():
	}
}

// waitForNavigation waits for the list screen to open a note.
func (a *App) waitForNavigation() tea.Cmd {
	ch := a.navigation
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case note := <-ch:
			return messages.OpenEditor{Note: note}
		case <-ctx.Done():
			return nil
		}
	}
}

// waitForChange waits for the next note change event.
func (a *App) waitForChange() tea.Cmd {
	ch := a.changes
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return messages.NotesChanged{Event: event}
	}
}

// Init implements tea.Model.
// It loads the notes and starts listening for navigation and changes.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("Inscript"),
		a.notesView.Init(),
		a.waitForNavigation(),
		a.waitForChange(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}

	case messages.OpenEditor:
		a.currentView = messages.ViewEditor
		return a, tea.Batch(a.editorView.Open(msg.Note), a.waitForNavigation())

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.NotesChanged:
		// refresh even while editing so the list is current on return
		a.notesView, cmd = a.notesView.Update(msg)
		return a, tea.Batch(cmd, a.waitForChange())

	case messages.SearchDebounced, messages.NotesLoaded, messages.NoteAdded, messages.NoteDeleted:
		a.notesView, cmd = a.notesView.Update(msg)
		return a, cmd

	case messages.NoteSaved:
		a.editorView, cmd = a.editorView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewNotes:
		a.notesView, cmd = a.notesView.Update(msg)
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewEditor:
		return a.editorView.View()
	default:
		return a.notesView.View()
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	defer a.Close()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close stops listening for note changes.
func (a *App) Close() {
	a.closeOnce.Do(a.unsubscribe)
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.notesView.SetDimensions(width, height)
	a.editorView.SetDimensions(width, height)
}
