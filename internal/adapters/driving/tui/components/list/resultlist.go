// Package list provides list display components for the TUI.
package list

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/styles"
)

// Row is one entry of a ResultList.
type Row struct {
	// Title is the main line.
	Title string

	// Detail is shown muted after the title.
	Detail string

	// Aside is rendered to the right of the row, e.g. a page thumbnail.
	Aside string

	// Lines are shown under the title.
	Lines []string

	// Busy shows the spinner in front of the title.
	Busy bool
}

// ResultList displays search results in a navigable list.
type ResultList struct {
	rows     []Row
	selected int
	spinner  string
	empty    string
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		empty:  "No results",
		width:  80,
		height: 10,
	}
}

// View renders the visible part of the list.
func (r *ResultList) View() string {
	if len(r.rows) == 0 {
		return r.styles.Muted.Render(r.empty)
	}

	start, end := r.visibleRange()
	blocks := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		blocks = append(blocks, r.renderRow(i, &r.rows[i]))
	}
	return strings.Join(blocks, "\n")
}

// visibleRange keeps the selection on screen, assuming rowHeight lines per row.
func (r *ResultList) visibleRange() (start, end int) {
	visible := r.height / r.rowHeight()
	if visible < 1 {
		visible = 1
	}
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end = min(start+visible, len(r.rows))
	return start, end
}

func (r *ResultList) rowHeight() int {
	h := 1
	for i := range r.rows {
		n := 1 + len(r.rows[i].Lines)
		if a := lipgloss.Height(r.rows[i].Aside); r.rows[i].Aside != "" && a > n {
			n = a
		}
		h = max(h, n)
	}
	return h
}

func (r *ResultList) renderRow(index int, row *Row) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}
	if row.Busy && r.spinner != "" {
		indicator = r.styles.Spinner.Render(r.spinner) + " "
	}

	title := row.Title
	if index == r.selected {
		title = r.styles.Selected.Render(title)
	} else {
		title = r.styles.Normal.Render(title)
	}
	if row.Detail != "" {
		title += "  " + r.styles.Muted.Render(row.Detail)
	}

	lines := make([]string, 0, 1+len(row.Lines))
	lines = append(lines, indicator+title)
	for _, l := range row.Lines {
		lines = append(lines, r.styles.Forecast.Render(l))
	}
	text := strings.Join(lines, "\n")

	if row.Aside == "" {
		return text
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, text, "  ", r.styles.Thumbnail.Render(row.Aside))
}

// SetRows replaces the rows, keeping the cursor within range.
func (r *ResultList) SetRows(rows []Row) {
	r.rows = rows
	if r.selected >= len(rows) {
		r.selected = max(len(rows)-1, 0)
	}
}

// Rows returns the current rows.
func (r *ResultList) Rows() []Row {
	return r.rows
}

// SetSpinner sets the frame drawn in front of busy rows.
func (r *ResultList) SetSpinner(frame string) {
	r.spinner = frame
}

// SetEmptyText sets the text shown when there are no rows.
func (r *ResultList) SetEmptyText(text string) {
	r.empty = text
}

// Selected returns the index of the selected row.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.rows) {
		r.selected = index
	}
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.rows)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of rows.
func (r *ResultList) Count() int {
	return len(r.rows)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.rows) == 0
}
