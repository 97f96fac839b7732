package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Back.Keys(), "esc")
	assert.Contains(t, km.Open.Keys(), "enter")
	assert.Contains(t, km.Add.Keys(), "ctrl+n")
	assert.Contains(t, km.Delete.Keys(), "ctrl+d")
	assert.Contains(t, km.Save.Keys(), "ctrl+s")
	assert.Contains(t, km.NextField.Keys(), "tab")
}

func TestDefaultKeyMap_NoLetterKeys(t *testing.T) {
	km := DefaultKeyMap()

	all := []key.Binding{
		km.Quit, km.Back, km.Up, km.Down, km.Left, km.Right,
		km.Open, km.Add, km.Delete, km.Save, km.NextField,
	}
	for _, b := range all {
		for _, k := range b.Keys() {
			assert.Greater(t, len(k), 1, "binding %q would swallow typed text", k)
		}
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ListHelp(), 4)
	assert.Len(t, km.EditorHelp(), 3)
	assert.Equal(t, "save", km.EditorHelp()[0].Help().Desc)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		key     string
		binding key.Binding
		want    bool
	}{
		{"ctrl+n adds", "ctrl+n", km.Add, true},
		{"enter opens", "enter", km.Open, true},
		{"letter is not delete", "d", km.Delete, false},
		{"esc is back", "esc", km.Back, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.key, tt.binding))
		})
	}
}
