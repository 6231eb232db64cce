package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/styles"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), "briefing.pdf")

	require.NotNil(t, view)
	assert.Len(t, view.items, 4)
	assert.Equal(t, 0, view.selected)
	assert.Equal(t, "briefing.pdf", view.items[0].Hint)
}

func TestNewView_Defaults(t *testing.T) {
	view := NewView(nil, "")

	assert.NotNil(t, view.styles)
	assert.Equal(t, "no document open", view.items[0].Hint)
}

func TestView_NotReady(t *testing.T) {
	view := NewView(nil, "")

	assert.Equal(t, "Initialising...", view.View())
}

func TestView_Navigate(t *testing.T) {
	view := NewView(nil, "")

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 3, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.Selected())
}

func TestView_EnterChangesView(t *testing.T) {
	tests := []struct {
		index    int
		expected messages.ViewType
	}{
		{0, messages.ViewPDFSearch},
		{1, messages.ViewLocationSearch},
		{2, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			view := NewView(nil, "")
			view.selected = tt.index

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.expected}, cmd())
		})
	}
}

func TestView_QuitItem(t *testing.T) {
	view := NewView(nil, "")
	view.selected = 3

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_Render(t *testing.T) {
	view := NewView(nil, "notams.pdf")
	view.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	out := view.View()

	assert.Contains(t, out, "Briefing")
	assert.Contains(t, out, "Search document")
	assert.Contains(t, out, "notams.pdf")
	assert.Contains(t, out, "Weather")
}

func TestView_DigitShortcut(t *testing.T) {
	view := NewView(nil, "")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})

	require.NotNil(t, cmd)
	assert.Equal(t, 1, view.Selected())
	assert.Equal(t, messages.ViewChanged{View: messages.ViewLocationSearch}, cmd())
}

func TestView_DigitOutOfRangeIgnored(t *testing.T) {
	view := NewView(nil, "")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, view.Selected())
}
