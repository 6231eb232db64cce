package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/views/locationsearch"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/views/pdfsearch"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView     *menu.View
	pdfView      *pdfsearch.View
	locationView *locationsearch.View

	// started records views whose subscriptions are running.
	started map[messages.ViewType]bool

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s, ports.DocumentName),
		pdfView:      pdfsearch.NewView(s, km, ports.PDF),
		locationView: locationsearch.NewView(s, km, ports.Locations),
		started:      make(map[messages.ViewType]bool),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.pdfView.WithContext(ctx)
	a.locationView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("briefing"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, a.start(msg.View)

	// Session changes keep flowing while another view is active.
	case messages.PDFStateChanged, messages.DocumentReloaded:
		a.pdfView, cmd = a.pdfView.Update(msg)
		return a, cmd

	case messages.LocationStateChanged:
		a.locationView, cmd = a.locationView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewPDFSearch:
		a.pdfView, cmd = a.pdfView.Update(msg)
	case messages.ViewLocationSearch:
		a.locationView, cmd = a.locationView.Update(msg)
	case messages.ViewHelp:
	}

	return a, cmd
}

// start initialises a view the first time it is shown.
func (a *App) start(view messages.ViewType) tea.Cmd {
	if a.started[view] {
		return nil
	}
	a.started[view] = true

	switch view {
	case messages.ViewPDFSearch:
		return a.pdfView.Init()
	case messages.ViewLocationSearch:
		return a.locationView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewPDFSearch:
		return a.pdfView.View()
	case messages.ViewLocationSearch:
		return a.locationView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option

Search document:
  (type)      Search after one second without typing
  ↑/↓         Navigate pages found
  enter       Go to page
  pgup/pgdn   Previous / next page
  ctrl+r      Update: reload the PDF
  ctrl+u      Clear the query

Weather:
  (type)      Search after three seconds without typing
  ↑/↓         Navigate locations
  enter       Show forecast
  ctrl+x      Stop the search
  ctrl+u      Clear the query and forecast

Weather API provided by Open-Meteo (https://open-meteo.com/en)

[esc] back to menu`
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.pdfView.SetDimensions(width, height)
	a.locationView.SetDimensions(width, height)
}
