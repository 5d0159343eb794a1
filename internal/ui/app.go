package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/sheetdash/internal/config"
	"github.com/five82/sheetdash/internal/dashboard"
	"github.com/five82/sheetdash/internal/logging"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *dashboard.Controller
	Board      *dashboard.Board
	Config     *config.Config
	ThemeName  string
	PrefsPath  string
	// Tick is how often the board is checked for changes made outside the
	// UI, such as auto refresh.
	Tick time.Duration
	// SkipStartup disables the refresh normally run when the UI starts.
	SkipStartup bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	ctrl      *dashboard.Controller
	board     *dashboard.Board
	config    *config.Config
	prefsPath string
	tick      time.Duration
	startup   bool
	log       *logrus.Entry

	theme Theme
	keys  keyMap
	help  help.Model

	table   table.Model
	search  textinput.Model
	spinner spinner.Model

	// Last board state applied to the view.
	state   dashboard.BoardState
	applied uint64
	total   int

	searching bool
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = defaultTick
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = config.DefaultPrefsPath()
	}

	search := textinput.New()
	search.Placeholder = "Search rows..."
	search.Prompt = "/ "
	search.CharLimit = searchCharLimit

	tbl := table.New(table.WithFocused(true))

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		board:     opts.Board,
		config:    opts.Config,
		prefsPath: prefsPath,
		tick:      tick,
		startup:   !opts.SkipStartup,
		log:       logging.NewLogger("ui"),
		theme:     GetTheme(themeName),
		keys:      defaultKeys(),
		help:      help.New(),
		table:     tbl,
		search:    search,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.applyTheme()
	if m.board != nil {
		m.state = m.board.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.tick),
		m.spinner.Tick,
	}
	if m.startup && m.ctrl != nil {
		cmds = append(cmds, refreshCmd(m.ctx, m.ctrl, dashboard.TriggerStartup))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-8, 10)
		m.layoutTable()
		return m, nil

	case tickMsg:
		m.syncBoard()
		return m, tickCmd(m.tick)

	case refreshDoneMsg:
		m.syncBoard()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		if err := config.SavePrefs(m.prefsPath, config.Prefs{Theme: m.theme.Name}); err != nil {
			m.log.WithError(err).Warn("save prefs failed")
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.ctrl == nil {
			return m, nil
		}
		return m, refreshCmd(m.ctx, m.ctrl, dashboard.TriggerManual)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Clear):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applyFilter()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleSearchKey edits the query. Every change filters the table.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *Model) applyFilter() {
	if m.ctrl == nil {
		return
	}
	m.ctrl.Filter(m.search.Value())
	m.syncBoard()
}

// syncBoard pulls the board state when it changed since the last redraw.
func (m *Model) syncBoard() {
	if m.board == nil {
		return
	}
	st := m.board.Snapshot()
	if st.Version == m.applied {
		return
	}
	m.state = st
	m.applied = st.Version
	if m.ctrl != nil {
		if body := len(m.ctrl.Store().Dataset()) - 1; body > 0 {
			m.total = body
		} else {
			m.total = 0
		}
	}
	m.layoutTable()
}

// Messages

type tickMsg time.Time

type refreshDoneMsg struct {
	outcome dashboard.Outcome
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func refreshCmd(ctx context.Context, ctrl *dashboard.Controller, trigger dashboard.Trigger) tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{outcome: ctrl.Refresh(ctx, trigger)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
