// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view. documentHint names the open PDF, if any.
func NewView(s *styles.Styles, documentHint string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if documentHint == "" {
		documentHint = "no document open"
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Search document", Hint: documentHint, View: messages.ViewPDFSearch},
			{Label: "Weather", Hint: "place search and forecast", View: messages.ViewLocationSearch},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.selected = max(v.selected-1, 0)
		case "down", "j":
			v.selected = min(v.selected+1, len(v.items)-1)
		case "enter":
			return v, v.choose(v.selected)
		case "q":
			return v, tea.Quit
		default:
			// Digits jump straight to an item.
			if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(v.items) {
				v.selected = n - 1
				return v, v.choose(v.selected)
			}
		}
	}

	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	lines := []string{
		v.styles.Title.Render("Briefing"),
		"",
		v.styles.Muted.Render("Document and weather search"),
		"",
	}
	for i, item := range v.items {
		lines = append(lines, v.renderItem(i, item))
	}
	lines = append(lines, "", v.styles.Help.Render("[j/k] Navigate  [1-4/Enter] Select  [q] Quit"))

	return strings.Join(lines, "\n")
}

func (v *View) renderItem(i int, item Item) string {
	label := fmt.Sprintf("%d. %s", i+1, item.Label)
	line := "  " + v.styles.Normal.Render(label)
	if i == v.selected {
		line = "> " + v.styles.Subtitle.Render(label)
	}
	if item.Hint != "" {
		line += "  " + v.styles.Muted.Render(item.Hint)
	}
	return line
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
