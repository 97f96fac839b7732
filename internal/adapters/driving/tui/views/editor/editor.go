// Package editor provides the note editor view for the TUI.
package editor

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/ports/driving"
	"github.com/custodia-labs/inscript/internal/core/screens"
)

// Field identifies which input has focus.
type Field int

const (
	FieldTitle Field = iota
	FieldContent
)

// View edits the title and content of one note.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	service   driving.NoteService
	screen    *screens.EditorScreen
	title     textinput.Model
	content   textarea.Model
	focus     Field
	statusbar *status.Bar
	ctx       context.Context

	width  int
	height int
	ready  bool
}

// NewView creates an editor view. Call Open before showing it.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.NoteService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 0
	title.Prompt = ""

	content := textarea.New()
	content.Placeholder = "Write something..."
	content.ShowLineNumbers = false
	content.CharLimit = 0

	return &View{
		styles:    s,
		keymap:    km,
		service:   service,
		title:     title,
		content:   content,
		statusbar: status.NewBar(s, km.EditorHelp()),
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context saves run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Open starts editing note, discarding any previous editor state.
func (v *View) Open(note domain.Note) tea.Cmd {
	v.screen = screens.NewEditorScreen(v.service, note)
	v.title.SetValue(note.Title)
	v.content.SetValue(note.Content)
	v.statusbar.Clear()
	return v.focusField(FieldTitle)
}

// Update handles messages for the editor.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.NoteSaved:
		if v.screen != nil && msg.ID == v.screen.ID() {
			v.syncNotice()
		}
		return v, nil

	case tea.KeyMsg:
		if v.screen == nil {
			return v, nil
		}
		return v.handleKeyMsg(msg)
	}

	return v, v.updateFocused(msg)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Save):
		return v, v.save()
	case keymap.Matches(msg.String(), v.keymap.NextField):
		if v.focus == FieldTitle {
			return v, v.focusField(FieldContent)
		}
		return v, v.focusField(FieldTitle)
	case keymap.Matches(msg.String(), v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewNotes}
		}
	}

	cmd := v.updateFocused(msg)
	v.screen.SetTitle(v.title.Value())
	v.screen.SetContent(v.content.Value())
	return v, cmd
}

func (v *View) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if v.focus == FieldTitle {
		v.title, cmd = v.title.Update(msg)
	} else {
		v.content, cmd = v.content.Update(msg)
	}
	return cmd
}

func (v *View) focusField(field Field) tea.Cmd {
	v.focus = field
	if field == FieldTitle {
		v.content.Blur()
		return v.title.Focus()
	}
	v.title.Blur()
	return v.content.Focus()
}

func (v *View) save() tea.Cmd {
	if v.screen.Saving() {
		return nil
	}

	v.statusbar.SetState(status.StateSaving)
	ctx := v.ctx
	screen := v.screen
	return func() tea.Msg {
		err := screen.Save(ctx)
		return messages.NoteSaved{ID: screen.ID(), Err: err}
	}
}

func (v *View) syncNotice() {
	notice := v.screen.Notice()
	switch {
	case notice == screens.SavedNotice:
		v.statusbar.SetState(status.StateSaved)
	case notice != "":
		v.statusbar.SetState(status.StateError)
	default:
		v.statusbar.SetState(status.StateReady)
	}
	v.statusbar.SetMessage(notice)
}

// View renders the editor.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.screen == nil {
		return v.styles.Muted.Render("No note open")
	}

	header := v.styles.Title.Render("Edit note")
	if v.screen.Dirty() {
		header += v.styles.Muted.Render("  (modified)")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		v.styles.Label.Render("Title"),
		v.styles.InputField.Render(v.title.View()),
		"",
		v.styles.Label.Render("Content"),
		v.styles.InputField.Render(v.content.View()),
		"",
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	fieldWidth := width - 4
	if fieldWidth < 20 {
		fieldWidth = 20
	}
	v.title.Width = fieldWidth
	v.content.SetWidth(fieldWidth)

	// header, title field, labels, borders and status bar
	contentHeight := height - 13
	if contentHeight < 3 {
		contentHeight = 3
	}
	v.content.SetHeight(contentHeight)
	v.statusbar.SetWidth(width)
}

// Screen returns the editor screen for the open note.
func (v *View) Screen() *screens.EditorScreen {
	return v.screen
}

// Focus returns the focused field.
func (v *View) Focus() Field {
	return v.focus
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Ready reports whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}
