package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/roster/internal/debounce"
	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/roster"
	"github.com/five82/roster/internal/state"
)

// Loader runs the single people load of a session.
type Loader interface {
	Load(ctx context.Context) state.Snapshot
}

// Options configures the UI.
type Options struct {
	Context        context.Context
	Loader         Loader
	Logger         *zap.Logger
	Prefs          prefs.Prefs
	PrefsPath      string
	FilterDebounce time.Duration
}

const (
	defaultFilterDebounce = 500 * time.Millisecond
	prefsSaveDelay        = 300 * time.Millisecond
	noCityLabel           = "(no city)"
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	loader    Loader
	logger    *zap.Logger
	prefsPath string
	saver     *debounce.Debouncer
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	showHelp bool

	// Data state
	snapshot state.Snapshot
	spinner  spinner.Model

	// Name filter input, applied after the debounce settles
	nameInput textinput.Model
	nameGate  *debounce.Gate
	debounce  time.Duration

	// Derived view state
	filter    roster.Filter
	cityIndex int // 0 = any city
	highlight bool
	sort      roster.Sort
	view      []roster.Record
	selected  int
	offset    int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ui")

	wait := opts.FilterDebounce
	if wait <= 0 {
		wait = defaultFilterDebounce
	}

	theme := GetTheme(opts.Prefs.Theme)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "any name"
	input.CharLimit = 64
	input.Width = 20

	var sort roster.Sort
	if col := roster.ParseColumn(opts.Prefs.SortBy); col != roster.ColumnNone {
		sort = roster.Sort{Column: col}
		if opts.Prefs.SortDesc {
			sort.Direction = roster.Descending
		}
	}

	m := Model{
		ctx:       ctx,
		loader:    opts.Loader,
		logger:    logger,
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		theme:     theme,
		snapshot:  state.Snapshot{Phase: state.PhaseLoading},
		spinner:   sp,
		nameInput: input,
		nameGate:  &debounce.Gate{},
		debounce:  wait,
		highlight: opts.Prefs.Highlight,
		sort:      sort,
	}
	if m.prefsPath != "" {
		m.saver = debounce.New(prefsSaveDelay)
	}
	m.applyInputTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.loader))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampSelection()
		return m, nil

	case loadedMsg:
		m.snapshot = state.Snapshot(msg)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.snapshot.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case nameSettledMsg:
		if m.nameGate.Fire(msg.token) {
			m.applyName()
		}
		return m, nil
	}

	// Cursor blink and other input internals.
	if m.nameInput.Focused() {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	switch m.snapshot.Phase {
	case state.PhaseLoading:
		return m.renderLoading()
	case state.PhaseError:
		return m.renderError()
	default:
		return m.renderMain()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && (msg.String() == "ctrl+c" || !m.nameInput.Focused()) {
		return m.quit()
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.snapshot.Phase != state.PhaseReady {
		return m, nil
	}

	if m.nameInput.Focused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.applyInputTheme()
		m.persist()

	case key.Matches(msg, m.keys.FocusName):
		return m, m.nameInput.Focus()

	case key.Matches(msg, m.keys.NextCity):
		m.cycleCity(1)

	case key.Matches(msg, m.keys.PrevCity):
		m.cycleCity(-1)

	case key.Matches(msg, m.keys.ResetCity):
		m.setCity(0)

	case key.Matches(msg, m.keys.ClearFilters):
		m.clearFilters()

	case key.Matches(msg, m.keys.ToggleOldest):
		m.highlight = !m.highlight
		m.persist()

	case key.Matches(msg, m.keys.SortName):
		m.toggleSort(roster.ColumnName)

	case key.Matches(msg, m.keys.SortCity):
		m.toggleSort(roster.ColumnCity)

	case key.Matches(msg, m.keys.SortBirthday):
		m.toggleSort(roster.ColumnBirthday)

	case key.Matches(msg, m.keys.SortClear):
		m.sort = m.sort.Clear()
		m.refresh()
		m.persist()

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.clampSelection()

	case key.Matches(msg, m.keys.Bottom):
		m.selected = len(m.view) - 1
		m.clampSelection()

	case key.Matches(msg, m.keys.PageDown):
		m.move(m.pageSize())

	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.pageSize())
	}
	return m, nil
}

// handleInputKey edits the name filter. Every change re-arms the debounce.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.nameGate.Cancel()
		m.applyName()
		m.nameInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.LeaveInput):
		m.nameInput.Blur()
		return m, nil
	}

	before := m.nameInput.Value()
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	if m.nameInput.Value() == before {
		return m, cmd
	}
	tok := m.nameGate.Arm()
	return m, tea.Batch(cmd, settleCmd(m.debounce, tok))
}

// handleMouse sorts on header clicks and selects rows on body clicks.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.snapshot.Phase != state.PhaseReady || m.showHelp {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.move(-1)
	case tea.MouseButtonWheelDown:
		m.move(1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		if msg.Y == tableHeaderRow {
			if col := layoutColumns(m.viewWidth()).columnAt(msg.X); col != roster.ColumnNone {
				m.toggleSort(col)
			}
			return m, nil
		}
		if row := msg.Y - tableFirstRow; row >= 0 && row < m.pageSize() && m.offset+row < len(m.view) {
			m.selected = m.offset + row
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.nameGate.Cancel()
	if m.saver != nil {
		m.saver.Flush()
	}
	return m, tea.Quit
}

// refresh re-derives the visible records from the loaded set.
func (m *Model) refresh() {
	if m.snapshot.Phase != state.PhaseReady {
		m.view = nil
		return
	}
	m.view = roster.Derive(m.snapshot.Records, m.filter, m.sort)
	m.clampSelection()
}

func (m *Model) applyName() {
	m.filter.Name = m.nameInput.Value()
	m.selected = 0
	m.refresh()
}

func (m *Model) cycleCity(delta int) {
	n := len(m.snapshot.Cities) + 1
	m.setCity(((m.cityIndex+delta)%n + n) % n)
}

func (m *Model) setCity(index int) {
	if index <= 0 || index > len(m.snapshot.Cities) {
		m.cityIndex = 0
		m.filter.City = ""
		m.filter.CityMode = roster.CityContains
	} else {
		m.cityIndex = index
		m.filter.City = m.snapshot.Cities[index-1]
		m.filter.CityMode = roster.CityExact
	}
	m.selected = 0
	m.refresh()
}

func (m *Model) clearFilters() {
	m.nameGate.Cancel()
	m.nameInput.SetValue("")
	m.filter = roster.Filter{}
	m.cityIndex = 0
	m.selected = 0
	m.refresh()
}

func (m *Model) toggleSort(col roster.Column) {
	m.sort = m.sort.Toggle(col)
	m.refresh()
	m.persist()
}

func (m *Model) move(delta int) {
	m.selected += delta
	m.clampSelection()
}

// clampSelection keeps the selection inside the view and scrolls it into sight.
func (m *Model) clampSelection() {
	if m.selected >= len(m.view) {
		m.selected = len(m.view) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	page := m.pageSize()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+page {
		m.offset = m.selected - page + 1
	}
	if maxOffset := len(m.view) - page; m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) applyInputTheme() {
	m.nameInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
	m.nameInput.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
	m.nameInput.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
}

// persist schedules a coalesced write of the current preferences.
func (m Model) persist() {
	if m.saver == nil {
		return
	}
	p := m.prefs()
	path := m.prefsPath
	logger := m.logger
	m.saver.Debounce(func() {
		if err := prefs.Save(path, p); err != nil {
			logger.Warn("save prefs failed", zap.String("path", path), zap.Error(err))
		}
	})
}

func (m Model) prefs() prefs.Prefs {
	return prefs.Prefs{
		Theme:     m.theme.Name,
		Highlight: m.highlight,
		SortBy:    strings.ToLower(m.sort.Column.String()),
		SortDesc:  m.sort.Active() && m.sort.Direction == roster.Descending,
	}
}

func (m Model) cityLabel() string {
	if m.cityIndex == 0 || m.cityIndex > len(m.snapshot.Cities) {
		return "Any city"
	}
	if city := m.snapshot.Cities[m.cityIndex-1]; city != "" {
		return city
	}
	return noCityLabel
}

func (m Model) viewWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m Model) viewHeight() int {
	if m.height <= 0 {
		return 24
	}
	return m.height
}

// pageSize is the number of table rows that fit on screen.
func (m Model) pageSize() int {
	if rows := m.viewHeight() - chromeLines; rows > 1 {
		return rows
	}
	return 1
}

// Messages

type loadedMsg state.Snapshot

type nameSettledMsg struct {
	token debounce.Token
}

// Commands

func loadCmd(ctx context.Context, loader Loader) tea.Cmd {
	return func() tea.Msg {
		if loader == nil {
			return loadedMsg(state.Snapshot{Phase: state.PhaseError, Error: "no people source configured"})
		}
		return loadedMsg(loader.Load(ctx))
	}
}

func settleCmd(d time.Duration, tok debounce.Token) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return nameSettledMsg{token: tok} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return nameSettledMsg{token: tok}
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx ends.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
		opts.Context = ctx
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok && fm.saver != nil {
		fm.saver.Flush()
	}
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
