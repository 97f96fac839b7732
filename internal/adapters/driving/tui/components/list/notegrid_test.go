package list

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inscript/internal/core/domain"
)

func testNotes(n int) []domain.Note {
	notes := make([]domain.Note, n)
	for i := range notes {
		notes[i] = domain.Note{
			ID:      fmt.Sprint(i + 1),
			Title:   fmt.Sprintf("Note %d", i+1),
			Content: fmt.Sprintf("body %d", i+1),
		}
	}
	return notes
}

func TestNewNoteGrid(t *testing.T) {
	g := NewNoteGrid(nil)

	require.NotNil(t, g)
	assert.NotNil(t, g.styles)
	_, ok := g.Selected()
	assert.False(t, ok)
	assert.Equal(t, "", g.View())
}

func TestNoteGrid_Navigation(t *testing.T) {
	g := NewNoteGrid(nil)
	g.SetNotes(testNotes(5))

	// layout:  0 1
	//          2 3
	//          4
	g.MoveRight()
	assert.Equal(t, 1, g.SelectedIndex())
	g.MoveRight()
	assert.Equal(t, 1, g.SelectedIndex(), "already in right column")

	g.MoveDown()
	assert.Equal(t, 3, g.SelectedIndex())
	g.MoveDown()
	assert.Equal(t, 3, g.SelectedIndex(), "nothing below in right column")

	g.MoveLeft()
	assert.Equal(t, 2, g.SelectedIndex())
	g.MoveDown()
	assert.Equal(t, 4, g.SelectedIndex())
	g.MoveRight()
	assert.Equal(t, 4, g.SelectedIndex(), "no card to the right")

	g.MoveUp()
	g.MoveUp()
	g.MoveUp()
	assert.Equal(t, 0, g.SelectedIndex())

	note, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", note.ID)
}

func TestNoteGrid_SetNotesClampsSelection(t *testing.T) {
	g := NewNoteGrid(nil)
	g.SetNotes(testNotes(4))
	g.MoveRight()
	g.MoveDown()
	require.Equal(t, 3, g.SelectedIndex())

	g.SetNotes(testNotes(2))
	assert.Equal(t, 1, g.SelectedIndex())

	g.SetNotes(nil)
	assert.Equal(t, 0, g.SelectedIndex())
}

func TestNoteGrid_View(t *testing.T) {
	g := NewNoteGrid(nil)
	g.SetDimensions(100, 40)
	notes := testNotes(3)
	notes[2].Title = ""
	g.SetNotes(notes)

	view := g.View()

	assert.Contains(t, view, "Note 1")
	assert.Contains(t, view, "Note 2")
	assert.Contains(t, view, "(Untitled)")
	assert.Contains(t, view, "body 3")
}

func TestNoteGrid_ViewScrollsToSelection(t *testing.T) {
	g := NewNoteGrid(nil)
	g.SetDimensions(100, 6)
	g.SetNotes(testNotes(6))
	g.MoveDown()
	g.MoveDown()

	view := g.View()

	assert.Contains(t, view, "Note 5")
	assert.NotContains(t, view, "Note 1")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdef...", truncate("abcdefghijkl", 9))
	assert.Equal(t, "abc", truncate("abc", 2))
}
