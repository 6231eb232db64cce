// Package pdfsearch provides the PDF text search view for the TUI.
// The view forwards every edit to the search session and redraws from
// its snapshots; it never searches on its own.
package pdfsearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
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

// View shows the query input, the page hits and the current page.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar
	spinner   spinner.Model
	page      viewport.Model

	service driving.PDFSearchService
	ctx     context.Context

	matches  []domain.PageMatch
	revision uint64
	shown    int
	inFlight bool

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new PDF search view. service may be nil when no document is open.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.PDFSearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetBindings(km.PDFHelp())
	bar.SetNoun("pages")

	l := list.NewResultList(s)
	l.SetEmptyText("No matching pages")

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchInput(s, "Find", "text in the document"),
		list:      l,
		statusbar: bar,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Spinner)),
		page:      viewport.New(80, 16),
		service:   service,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for reloads and change subscriptions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor blink, the spinner and the change subscription.
func (v *View) Init() tea.Cmd {
	if v.service == nil {
		v.err = ErrNoDocument
		return nil
	}
	v.sync()
	return tea.Batch(v.input.Init(), v.spinner.Tick, v.waitForChange())
}

// waitForChange delivers the next session change as a message.
func (v *View) waitForChange() tea.Cmd {
	if v.service == nil {
		return nil
	}
	changes := v.service.Changes()
	ctx := v.ctx
	return func() tea.Msg {
		select {
		case <-changes:
			return messages.PDFStateChanged{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update handles messages for the PDF search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.PDFStateChanged:
		v.sync()
		return v, v.waitForChange()

	case messages.DocumentReloaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.sync()
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
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
		if m, ok := v.SelectedMatch(); ok {
			v.service.Select(m)
			v.input.Reset()
		}
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.NextPage):
		v.service.GoToPage(v.service.CurrentPage() + 1)
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.PrevPage):
		v.service.GoToPage(v.service.CurrentPage() - 1)
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Cancel):
		v.service.Cancel()
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Clear):
		v.input.Reset()
		v.service.QueryChanged("")
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Reload):
		return v, v.reload()
	}

	var cmd tea.Cmd
	var changed bool
	v.input, cmd, changed = v.input.Update(msg)
	if changed {
		v.service.QueryChanged(v.input.Value())
	}
	return v, cmd
}

// reload re-reads the document off the UI goroutine.
func (v *View) reload() tea.Cmd {
	service := v.service
	ctx := v.ctx
	v.statusbar.SetMessage("Updating...")
	return func() tea.Msg {
		return messages.DocumentReloaded{Err: service.Reload(ctx)}
	}
}

// sync redraws from the latest snapshot.
func (v *View) sync() {
	snap := v.service.Snapshot()
	if snap.Revision < v.revision {
		return
	}
	v.revision = snap.Revision
	v.matches = snap.Results
	v.inFlight = snap.InFlight

	// The session clears the query itself on select and reload.
	if snap.RawQuery != v.input.Value() {
		v.input.SetValue(snap.RawQuery)
	}

	rows := make([]list.Row, len(snap.Results))
	for i, m := range snap.Results {
		rows[i] = list.Row{
			Title:  fmt.Sprintf("Page %d", m.Page),
			Detail: m.Snippet,
			Aside:  m.Thumbnail,
		}
	}
	v.list.SetRows(rows)

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

	v.showPage(v.service.CurrentPage())
}

// showPage refreshes the page pane; the text may change on reload.
func (v *View) showPage(page int) {
	text, err := v.service.PageText(page)
	if err != nil {
		text = v.styles.Muted.Render(err.Error())
	}
	v.page.SetContent(text)
	if page != v.shown {
		v.page.GotoTop()
		v.shown = page
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the PDF search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.renderHeader(), "", v.input.View(), "")

	switch {
	case v.service == nil:
		sections = append(sections, v.styles.Error.Render(ErrNoDocument.Error()))
	case v.input.Value() != "" || len(v.matches) > 0:
		sections = append(sections, v.list.View())
	default:
		sections = append(sections, v.page.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderHeader() string {
	header := v.styles.Title.Render("Document")
	if v.service == nil {
		return header
	}
	pos := fmt.Sprintf("page %d of %d", v.service.CurrentPage(), v.service.PageCount())
	if v.inFlight {
		pos += " " + v.spinner.View()
	}
	return header + "  " + v.styles.Muted.Render(pos)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	body := max(height-8, 3)
	v.input.SetWidth(width)
	v.list.SetDimensions(width, body)
	v.page.Width = width
	v.page.Height = body
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

// Matches returns the page hits on display.
func (v *View) Matches() []domain.PageMatch {
	return v.matches
}

// SelectedMatch returns the highlighted hit.
func (v *View) SelectedMatch() (domain.PageMatch, bool) {
	i := v.list.Selected()
	if i < 0 || i >= len(v.matches) {
		return domain.PageMatch{}, false
	}
	return v.matches[i], true
}

// PageContent returns the text of the page on display.
func (v *View) PageContent() string {
	return strings.TrimSpace(v.page.View())
}

// Err returns the last error shown.
func (v *View) Err() error {
	return v.err
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}
