// Package list provides the two-column note grid for the TUI.
package list

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/inscript/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/screens"
)

// previewLines is how many lines of content a card shows.
const previewLines = 3

// NoteGrid lays notes out as cards in two columns.
// Note i is in the left column when i is even and in the right column when odd.
type NoteGrid struct {
	notes    []domain.Note
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewNoteGrid creates an empty grid.
func NewNoteGrid(s *styles.Styles) *NoteGrid {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &NoteGrid{
		styles: s,
		width:  80,
		height: 20,
	}
}

// SetNotes replaces the notes and keeps the selection in range.
func (g *NoteGrid) SetNotes(notes []domain.Note) {
	g.notes = notes
	g.clamp()
}

// Notes returns the notes in the grid.
func (g *NoteGrid) Notes() []domain.Note {
	return g.notes
}

// Selected returns the selected note, if any.
func (g *NoteGrid) Selected() (domain.Note, bool) {
	if len(g.notes) == 0 {
		return domain.Note{}, false
	}
	return g.notes[g.selected], true
}

// SelectedIndex returns the position of the selected note.
func (g *NoteGrid) SelectedIndex() int {
	return g.selected
}

// MoveUp selects the card above in the same column.
func (g *NoteGrid) MoveUp() {
	if g.selected >= 2 {
		g.selected -= 2
	}
}

// MoveDown selects the card below in the same column.
func (g *NoteGrid) MoveDown() {
	if g.selected+2 < len(g.notes) {
		g.selected += 2
	}
}

// MoveLeft selects the card to the left.
func (g *NoteGrid) MoveLeft() {
	if g.selected%2 == 1 {
		g.selected--
	}
}

// MoveRight selects the card to the right.
func (g *NoteGrid) MoveRight() {
	if g.selected%2 == 0 && g.selected+1 < len(g.notes) {
		g.selected++
	}
}

// SetDimensions sets the space available to the grid.
func (g *NoteGrid) SetDimensions(width, height int) {
	g.width = width
	g.height = height
}

// View renders both columns side by side.
func (g *NoteGrid) View() string {
	if len(g.notes) == 0 {
		return ""
	}

	cardWidth := g.width/2 - 2
	if cardWidth < 16 {
		cardWidth = 16
	}

	// each card is a title, a preview and a two line border
	perColumn := g.height / (previewLines + 3)
	if perColumn < 1 {
		perColumn = 1
	}
	firstRow := 0
	if row := g.selected / 2; row >= perColumn {
		firstRow = row - perColumn + 1
	}

	left, right := screens.SplitColumns(g.notes)
	leftCol := g.renderColumn(left, 0, firstRow, perColumn, cardWidth)
	rightCol := g.renderColumn(right, 1, firstRow, perColumn, cardWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)
}

func (g *NoteGrid) renderColumn(notes []domain.Note, parity, firstRow, rows, width int) string {
	end := firstRow + rows
	if end > len(notes) {
		end = len(notes)
	}
	if firstRow >= end {
		return ""
	}

	cards := make([]string, 0, end-firstRow)
	for row := firstRow; row < end; row++ {
		index := row*2 + parity
		cards = append(cards, g.renderCard(notes[row], index == g.selected, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (g *NoteGrid) renderCard(note domain.Note, selected bool, width int) string {
	inner := width - 4
	title := g.styles.CardTitle.Render(truncate(note.DisplayTitle(), inner))

	lines := strings.Split(note.Content, "\n")
	if len(lines) > previewLines {
		lines = lines[:previewLines]
	}
	for i, line := range lines {
		lines[i] = truncate(line, inner)
	}
	preview := g.styles.Normal.Render(strings.Join(lines, "\n"))

	style := g.styles.Card
	if selected {
		style = g.styles.CardSelected
	}
	return style.Width(width - 2).Render(title + "\n" + preview)
}

func (g *NoteGrid) clamp() {
	if g.selected >= len(g.notes) {
		g.selected = len(g.notes) - 1
	}
	if g.selected < 0 {
		g.selected = 0
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
