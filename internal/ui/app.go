package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mosaic/internal/config"
	"github.com/five82/mosaic/internal/delivery"
	"github.com/five82/mosaic/internal/imagedata"
	"github.com/five82/mosaic/internal/logger"
	"github.com/five82/mosaic/internal/prefs"
	"github.com/five82/mosaic/internal/state"
)

// Options configures the UI.
type Options struct {
	Store     *state.Store
	Generator *imagedata.Generator
	Tracker   *delivery.Tracker
	Config    config.Config
	ThemeName string
	PrefsPath string
	Chrome    bool
	LogPath   string
	Title     string
	Bridge    *Bridge
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store     *state.Store
	gen       *imagedata.Generator
	tracker   *delivery.Tracker
	cfg       config.Config
	prefsPath string
	logPath   string

	// UI state
	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	width   int
	height  int
	ready   bool
	title   string

	grid   *gridView
	viewer *viewerView

	// Overlay (help or log); nil when none is shown
	modal Modal
}

// TitleMsg carries the route of the current state for the terminal title.
type TitleMsg struct {
	Path string
}

// PictureMsg reports a picture status change from the delivery tracker.
type PictureMsg delivery.Event

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg.BatchSize == 0 {
		cfg = config.Default()
	}

	gen := opts.Generator
	if gen == nil {
		gen = imagedata.NewGenerator(cfg.Seed)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	logPath := opts.LogPath
	if logPath == "" {
		logPath = logger.Path()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		store:     opts.Store,
		gen:       gen,
		tracker:   opts.Tracker,
		cfg:       cfg,
		prefsPath: opts.PrefsPath,
		logPath:   logPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		title:     opts.Title,
		grid:      newGridView(opts.Store, gen, opts.Tracker, cfg),
		viewer:    newViewerView(opts.Store, gen, opts.Tracker, cfg.ThumbnailNeighbors, opts.Chrome),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.title != "" {
		cmds = append(cmds, tea.SetWindowTitle(windowTitle(m.title)))
	}
	return tea.Batch(cmds...)
}

func windowTitle(path string) string {
	return "mosaic " + path
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.grid.resize(msg.Width, max(msg.Height-HeaderHeight-FooterHeight, 0))
		m.viewer.resize(msg.Width, max(msg.Height-FooterHeight, 0))
		m.help.Width = msg.Width

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TitleMsg:
		m.title = msg.Path
		cmd = tea.SetWindowTitle(windowTitle(msg.Path))

	case PictureMsg:
		// The relayout below picks up the new status.

	case logTickMsg:
		if m.modal != msg.owner {
			return m, nil
		}
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)

	case logBatchMsg:
		if m.modal != nil {
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		}

	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	m.refresh()
	return m, cmd
}

// refresh lays out whichever view is active so hit areas and the delivery
// tracker follow the latest state.
func (m Model) refresh() {
	if !m.ready || m.store == nil {
		return
	}
	if m.store.Read().IsViewerOpen {
		m.viewer.sync()
		return
	}
	m.grid.layout(m.theme)
}

// handleKey processes keyboard input. It reports whether the program should
// quit.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return cmd, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true

	case key.Matches(msg, m.keys.Help):
		return m.openModal(newHelpModal(m.keys)), false

	case key.Matches(msg, m.keys.Logs):
		return m.openModal(newLogModal(m.logPath)), false

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return nil, false
	}

	if m.store.Read().IsViewerOpen {
		if m.viewer.handleKey(msg, m.keys) {
			m.savePrefs()
		}
		return nil, false
	}

	if id := m.grid.handleKey(msg, m.keys); id >= 0 {
		m.viewer.open(id)
	}
	return nil, false
}

// handleMouse routes mouse input to the active view.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.modal != nil {
		m.modal, _, _ = m.modal.Update(msg, m.keys)
		return
	}
	if m.store.Read().IsViewerOpen {
		m.viewer.handleMouse(msg)
		return
	}
	if id := m.grid.handleMouse(msg, msg.X, msg.Y-HeaderHeight); id >= 0 {
		m.viewer.open(id)
	}
}

// savePrefs persists the theme and the viewer chrome setting.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name}.WithChrome(m.viewer.chrome)
	if err := prefs.Save(m.prefsPath, p); err != nil {
		logger.Component("ui").Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	var b strings.Builder
	if m.store.Read().IsViewerOpen {
		b.WriteString(m.viewer.view(m.theme))
	} else {
		b.WriteString(m.renderHeader())
		b.WriteString("\n")
		b.WriteString(m.grid.view(m.theme))
	}
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())

	return lipgloss.NewStyle().MaxHeight(m.height).Render(b.String())
}

// close releases the store subscriptions held by the model.
func (m Model) close() {
	m.grid.close()
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	defer m.close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if opts.Bridge != nil {
		opts.Bridge.attach(p)
		defer opts.Bridge.detach()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
