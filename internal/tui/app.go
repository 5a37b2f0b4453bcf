// Package tui is the terminal renderer for the restaurant directory.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/tiffin/internal/card"
	"github.com/mmcdole/tiffin/internal/controller"
	"github.com/mmcdole/tiffin/internal/styles"
)

const (
	tickInterval      = 100 * time.Millisecond
	statusDuration    = 3 * time.Second
	defaultColumns    = 3
	defaultCardWidth  = 30
	minCardWidth      = 16
	cardChrome        = 4 // Border plus horizontal padding
	headerHeight      = 4
	footerHeight      = 1
	shimmerPlaceholds = 6
)

// Options configure the terminal UI
type Options struct {
	Columns       int
	CardWidth     int
	ImageBaseURL  string
	Probe         Refresher // nil disables periodic connectivity checks
	ProbeInterval time.Duration
	StateChanges  <-chan StateChange // Fed by a ChannelObserver on the controller
	Logger        *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	ctrl   *controller.Controller
	keys   KeyMap
	logger *slog.Logger
	ctx    context.Context

	probe         Refresher
	probeInterval time.Duration
	changes       <-chan StateChange

	// Search box
	Search    textinput.Model
	Searching bool

	// Grid
	Cursor    int
	RowOffset int
	Columns   int
	CardWidth int

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	statusSeq    int
	SpinnerFrame int
	ShowHelp     bool

	wantColumns  int
	imageBaseURL string
}

// NewModel creates the application model around a controller. The
// controller's base unit is replaced with the styled card.
func NewModel(ctx context.Context, ctrl *controller.Controller, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Columns < 1 {
		opts.Columns = defaultColumns
	}
	if opts.CardWidth < minCardWidth {
		opts.CardWidth = defaultCardWidth
	}

	ti := textinput.New()
	ti.Placeholder = "Search restaurants"
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.CharLimit = 64

	m := Model{
		ctrl:          ctrl,
		keys:          DefaultKeyMap(),
		logger:        opts.Logger,
		ctx:           ctx,
		probe:         opts.Probe,
		probeInterval: opts.ProbeInterval,
		changes:       opts.StateChanges,
		Search:        ti,
		Columns:       opts.Columns,
		CardWidth:     opts.CardWidth,
		wantColumns:   opts.Columns,
		imageBaseURL:  opts.ImageBaseURL,
	}
	m.installBaseUnit()
	return m
}

func (m *Model) installBaseUnit() {
	ctrl := m.ctrl
	m.ctrl.SetBaseUnit(card.Base(card.Options{
		Width:        m.CardWidth,
		ImageBaseURL: m.imageBaseURL,
		Title: func(name string) string {
			return HighlightTitle(name, ctrl.SearchText())
		},
	}))
}

// Init starts the first fetch and the UI timers
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		FetchListingCmd(m.ctrl.StartFetch(m.ctx)),
		TickCmd(tickInterval),
	}
	if m.probe != nil && m.probeInterval > 0 {
		cmds = append(cmds, CheckConnectivityCmd(m.probe, m.probeInterval))
	}
	if m.changes != nil {
		cmds = append(cmds, WaitForStateChangeCmd(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case ListingFetchedMsg:
		if m.ctrl.Apply(msg.Result) {
			m.clampCursor()
		}
		return m, nil

	case TickMsg:
		m.SpinnerFrame++
		cmds := []tea.Cmd{TickCmd(tickInterval)}
		// Render samples connectivity and may flag a reconnect refetch
		m.ctrl.Render()
		if m.ctrl.NeedsRefetch() {
			m.logger.Info("refetching listing after reconnect")
			cmds = append(cmds, FetchListingCmd(m.ctrl.StartFetch(m.ctx)))
		}
		return m, tea.Batch(cmds...)

	case ConnectivityCheckedMsg:
		return m, CheckConnectivityCmd(m.probe, m.probeInterval)

	case StateChangedMsg:
		next := WaitForStateChangeCmd(m.changes)
		switch {
		case msg.To == controller.StateOffline:
			cmd := m.setStatus("Connection lost", true)
			return m, tea.Batch(next, cmd)
		case msg.From == controller.StateOffline:
			cmd := m.setStatus("Back online", false)
			return m, tea.Batch(next, cmd)
		}
		return m, next

	case StatusMsg:
		cmd := m.setStatus(msg.Message, msg.IsError)
		return m, cmd

	case ClearStatusMsg:
		// A newer status owns the bar until its own timer fires
		if msg.Seq != m.statusSeq {
			return m, nil
		}
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.ctrl.OnStop()
		return m, tea.Quit
	}

	if m.Searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.OnStop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.Searching = true
		return m, m.Search.Focus()

	case key.Matches(msg, m.keys.TopRated):
		m.ctrl.TriggerTopRatedFilter()
		m.Cursor, m.RowOffset = 0, 0
		return m, nil

	case key.Matches(msg, m.keys.ShowAll):
		m.ctrl.ShowAll()
		m.Search.SetValue("")
		m.Cursor, m.RowOffset = 0, 0
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = !m.ShowHelp
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m, m.openSelected()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.Columns)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.Columns)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Home):
		m.Cursor = 0
		m.ensureCursorVisible()
	case key.Matches(msg, m.keys.End):
		m.Cursor = len(m.ctrl.Displayed()) - 1
		m.clampCursor()
	}
	return m, nil
}

// handleSearchKey feeds the search box; every edit re-runs the search
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.Searching = false
		m.Search.Blur()
		return m, nil
	}

	before := m.Search.Value()
	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	if after := m.Search.Value(); after != before {
		m.ctrl.SetSearchQuery(after)
		m.Cursor, m.RowOffset = 0, 0
	}
	return m, cmd
}

func (m Model) openSelected() tea.Cmd {
	shown := m.ctrl.Displayed()
	if m.Cursor < 0 || m.Cursor >= len(shown) {
		return nil
	}
	r := shown[m.Cursor]
	path := controller.NavPath(r.ID)
	m.logger.Info("restaurant selected", "id", r.ID, "path", path)
	return func() tea.Msg {
		return StatusMsg{Message: r.Name + " → " + path}
	}
}

// setStatus shows a status message and schedules clearing it
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, statusDuration)
}

// Controller exposes the underlying controller
func (m Model) Controller() *controller.Controller { return m.ctrl }
