// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewPDFSearch is the PDF text search view.
	ViewPDFSearch
	// ViewLocationSearch is the location search and forecast view.
	ViewLocationSearch
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewPDFSearch:
		return "pdf_search"
	case ViewLocationSearch:
		return "location_search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// PDFStateChanged signals that the PDF search session published a new state.
type PDFStateChanged struct{}

// LocationStateChanged signals that the location search or forecast state changed.
type LocationStateChanged struct{}

// DocumentReloaded carries the outcome of re-reading the PDF.
type DocumentReloaded struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
