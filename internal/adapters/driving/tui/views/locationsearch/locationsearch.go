// Package locationsearch provides the place search and forecast view for the TUI.
package locationsearch

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/briefing/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
)

// Attribution is required by the Open-Meteo terms of use.
const Attribution = "Weather API provided by Open-Meteo (https://open-meteo.com/en)"

// View shows the place input, the matching locations and the forecast
// under the location it belongs to.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar
	spinner   spinner.Model

	service driving.LocationSearchService
	ctx     context.Context

	locations []domain.Location
	forecast  domain.ForecastSnapshot
	revision  uint64

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new location search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.LocationSearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetBindings(km.LocationHelp())
	bar.SetNoun("locations")

	l := list.NewResultList(s)
	l.SetEmptyText("No locations")

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchInput(s, "Location", "city or town"),
		list:      l,
		statusbar: bar,
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(s.Spinner)),
		service:   service,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for change subscriptions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor blink, the spinner and the change subscription.
func (v *View) Init() tea.Cmd {
	if v.service == nil {
		v.err = ErrNoLocationService
		return nil
	}
	v.sync()
	return tea.Batch(v.input.Init(), v.spinner.Tick, v.waitForChange())
}

// waitForChange delivers the next search or forecast change as a message.
func (v *View) waitForChange() tea.Cmd {
	if v.service == nil {
		return nil
	}
	changes := v.service.Changes()
	ctx := v.ctx
	return func() tea.Msg {
		select {
		case <-changes:
			return messages.LocationStateChanged{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update handles messages for the location search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.LocationStateChanged:
		v.sync()
		return v, v.waitForChange()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.list.SetSpinner(v.spinner.View())
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Back) {
		if v.service != nil {
			v.service.Cancel()
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	if v.service == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Select):
		if loc, ok := v.SelectedLocation(); ok {
			v.service.SelectLocation(loc)
		}
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Cancel):
		v.service.Cancel()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Clear):
		v.input.Reset()
		v.service.QueryChanged("")
		return v, nil
	}

	var cmd tea.Cmd
	var changed bool
	v.input, cmd, changed = v.input.Update(msg)
	if changed {
		v.service.QueryChanged(v.input.Value())
	}
	return v, cmd
}

// sync redraws from the latest search and forecast snapshots.
func (v *View) sync() {
	snap := v.service.Snapshot()
	v.forecast = v.service.Forecast()
	if snap.Revision >= v.revision {
		v.revision = snap.Revision
		v.locations = snap.Results

		v.statusbar.Clear()
		switch {
		case snap.HasError():
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(snap.LastError.Error())
		case snap.InFlight:
			v.statusbar.SetState(status.StateSearching)
		case snap.RawQuery != "" && !snap.IsEmpty():
			v.statusbar.SetState(status.StateResults)
			v.statusbar.SetResultCount(len(snap.Results))
		}
	}

	if v.forecast.LastError != nil && !v.statusbar.IsError() {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage("forecast: " + v.forecast.LastError.Error())
	}

	rows := make([]list.Row, len(v.locations))
	for i, loc := range v.locations {
		rows[i] = v.row(loc)
	}
	v.list.SetRows(rows)
}

// row renders a location with its forecast when that location's weather is loaded.
func (v *View) row(loc domain.Location) list.Row {
	r := list.Row{
		Title:  loc.Name,
		Detail: detail(loc),
	}
	if v.forecast.InFlight != nil && v.forecast.InFlight.ID == loc.ID {
		r.Busy = true
	}
	if v.forecast.Weather != nil && v.forecast.Weather.LocationID == loc.ID {
		r.Lines = v.forecast.Weather.Lines()
	}
	return r
}

func detail(loc domain.Location) string {
	if loc.Admin1 != "" && loc.Admin1 != loc.Name {
		return fmt.Sprintf("%s, %s", loc.Admin1, loc.Country)
	}
	return loc.Country
}

// View renders the location search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Weather"), "", v.input.View(), "")

	if v.service == nil {
		sections = append(sections, v.styles.Error.Render(ErrNoLocationService.Error()))
	} else {
		sections = append(sections, v.list.View())
	}

	sections = append(sections,
		"",
		v.styles.Footer.Render(Attribution),
		v.statusbar.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, max(height-9, 3))
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// Locations returns the locations on display.
func (v *View) Locations() []domain.Location {
	return v.locations
}

// SelectedLocation returns the highlighted location.
func (v *View) SelectedLocation() (domain.Location, bool) {
	i := v.list.Selected()
	if i < 0 || i >= len(v.locations) {
		return domain.Location{}, false
	}
	return v.locations[i], true
}

// Forecast returns the forecast state on display.
func (v *View) Forecast() domain.ForecastSnapshot {
	return v.forecast
}

// Err returns the last error shown.
func (v *View) Err() error {
	return v.err
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}
