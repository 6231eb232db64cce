package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"quit", km.Quit, "ctrl+c"},
		{"help", km.Help, "?"},
		{"back", km.Back, "esc"},
		{"up", km.Up, "up"},
		{"down", km.Down, "down"},
		{"select", km.Select, "enter"},
		{"cancel", km.Cancel, "ctrl+x"},
		{"clear", km.Clear, "ctrl+u"},
		{"reload", km.Reload, "ctrl+r"},
		{"next page", km.NextPage, "pgdown"},
		{"prev page", km.PrevPage, "pgup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Matches(tt.key, tt.binding))
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestDefaultKeyMap_NoPrintableListKeys(t *testing.T) {
	km := DefaultKeyMap()

	// Letters typed into the query must never move the cursor.
	for _, b := range []key.Binding{km.Up, km.Down, km.Cancel, km.Clear, km.Reload} {
		for _, k := range b.Keys() {
			assert.Greater(t, len(k), 1, "binding %q is a single printable key", k)
		}
	}
}

func TestMatches(t *testing.T) {
	binding := key.NewBinding(key.WithKeys("a", "b"))

	assert.True(t, Matches("a", binding))
	assert.True(t, Matches("b", binding))
	assert.False(t, Matches("c", binding))
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Contains(t, km.PDFHelp(), km.Reload)
	assert.Contains(t, km.LocationHelp(), km.Clear)
	assert.Len(t, km.FullHelp(), 4)
}
