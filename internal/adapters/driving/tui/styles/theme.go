// Package styles provides the colour theme and lipgloss styles shared by the views.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette. Accent marks the focused surface; Highlight
// marks secondary information such as forecasts and menu selections.
type Theme struct {
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Panel     lipgloss.Color
	Rule      lipgloss.Color
	Alert     lipgloss.Color
}

// DefaultTheme is a dark slate palette with blue and amber accents.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#3B82F6"),
		Highlight: lipgloss.Color("#F59E0B"),
		Text:      lipgloss.Color("#E2E8F0"),
		Dim:       lipgloss.Color("#64748B"),
		Panel:     lipgloss.Color("#1E293B"),
		Rule:      lipgloss.Color("#334155"),
		Alert:     lipgloss.Color("#EF4444"),
	}
}

// Styles holds the rendered styles built from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style

	// InputField frames the query box.
	InputField lipgloss.Style

	// StatusBar sits under the result list.
	StatusBar lipgloss.Style

	// Thumbnail is the page crop shown beside a PDF hit.
	Thumbnail lipgloss.Style

	// Forecast indents the weather lines under a location row.
	Forecast lipgloss.Style

	Spinner lipgloss.Style

	// Footer carries the data attribution.
	Footer lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when theme is nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Highlight).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Dim),
		Selected: fg(theme.Text).Background(theme.Accent).Bold(true),
		Error:    fg(theme.Alert),
		Help:     fg(theme.Dim),
		InputField: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Rule).
			Padding(0, 1),
		StatusBar: fg(theme.Dim).Background(theme.Panel).Padding(0, 1),
		Thumbnail: fg(theme.Dim).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Rule).
			PaddingLeft(1),
		Forecast: fg(theme.Highlight).PaddingLeft(6),
		Spinner:  fg(theme.Accent),
		Footer:   fg(theme.Dim).Italic(true),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
