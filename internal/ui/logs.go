package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mosaic/internal/logtail"
)

// levelFilters is the cycle order of the minimum level filter.
var levelFilters = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// logModal shows the tail of the session log.
type logModal struct {
	path     string
	entries  []logtail.Entry
	visible  []logtail.Entry
	levelIdx int
	follow   bool
	err      error

	viewport viewport.Model

	// Search
	searchActive   bool
	searchInput    textinput.Model
	searchRegex    *regexp.Regexp
	searchMatches  []int // indices into visible
	searchMatchIdx int
	scrollTarget   int // line to centre on next render, -1 for none
}

type logBatchMsg struct {
	lines []string
	err   error
}

// logTickMsg asks owner to reread the log file. Ticks of a closed overlay
// are dropped, which ends their chain.
type logTickMsg struct {
	owner *logModal
}

func newLogModal(path string) *logModal {
	ti := textinput.New()
	ti.Placeholder = "Search logs..."
	ti.CharLimit = 100
	return &logModal{
		path:         path,
		follow:       true,
		searchInput:  ti,
		viewport:     viewport.New(0, 0),
		scrollTarget: -1,
	}
}

// Init loads the log file and starts the refresh ticker.
func (l *logModal) Init() tea.Cmd {
	return tea.Batch(readLogCmd(l.path), l.tickCmd())
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logBatchMsg{lines: lines, err: err}
	}
}

func (l *logModal) tickCmd() tea.Cmd {
	return tea.Tick(LogRefreshInterval, func(time.Time) tea.Msg {
		return logTickMsg{owner: l}
	})
}

// Update handles log batches, ticks and input. The bool result asks the
// caller to close the overlay.
func (l *logModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case logBatchMsg:
		l.handleBatch(msg)
	case logTickMsg:
		return l, tea.Batch(readLogCmd(l.path), l.tickCmd()), false
	case tea.KeyMsg:
		return l.handleKey(msg, keys)
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			l.viewport.ScrollUp(WheelStep)
			l.follow = false
		case tea.MouseButtonWheelDown:
			l.viewport.ScrollDown(WheelStep)
		}
	}
	return l, nil, false
}

func (l *logModal) handleBatch(msg logBatchMsg) {
	l.err = msg.err
	if msg.err != nil {
		return
	}
	l.entries = logtail.ParseAll(msg.lines)
	l.applyFilter()
}

func (l *logModal) applyFilter() {
	l.visible = logtail.FilterLevel(l.entries, levelFilters[l.levelIdx])
	l.findSearchMatches()
}

func (l *logModal) handleKey(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	if l.searchActive {
		return l.handleSearchInput(msg, keys)
	}

	switch {
	case key.Matches(msg, keys.Escape):
		if l.searchRegex != nil {
			l.clearSearch()
			return l, nil, false
		}
		return l, nil, true
	case key.Matches(msg, keys.Logs), msg.String() == "q":
		return l, nil, true
	case key.Matches(msg, keys.ToggleFollow):
		l.follow = !l.follow
		if l.follow {
			l.viewport.GotoBottom()
		}
	case key.Matches(msg, keys.CycleLevel):
		l.levelIdx = (l.levelIdx + 1) % len(levelFilters)
		l.applyFilter()
	case key.Matches(msg, keys.Search):
		l.searchActive = true
		l.searchInput.SetValue("")
		return l, l.searchInput.Focus(), false
	case key.Matches(msg, keys.NextMatch):
		l.stepMatch(1)
	case key.Matches(msg, keys.PrevMatch):
		l.stepMatch(-1)
	case key.Matches(msg, keys.Top):
		l.viewport.GotoTop()
		l.follow = false
	case key.Matches(msg, keys.Bottom):
		l.viewport.GotoBottom()
		l.follow = true
	case key.Matches(msg, keys.Down):
		l.viewport.ScrollDown(1)
		l.follow = false
	case key.Matches(msg, keys.Up):
		l.viewport.ScrollUp(1)
		l.follow = false
	case key.Matches(msg, keys.HalfPageDown):
		l.viewport.HalfPageDown()
		l.follow = false
	case key.Matches(msg, keys.HalfPageUp):
		l.viewport.HalfPageUp()
		l.follow = false
	case key.Matches(msg, keys.PageDown):
		l.viewport.PageDown()
		l.follow = false
	case key.Matches(msg, keys.PageUp):
		l.viewport.PageUp()
		l.follow = false
	}
	return l, nil, false
}

// handleSearchInput handles keyboard input during log search.
func (l *logModal) handleSearchInput(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Confirm):
		query := l.searchInput.Value()
		if query == "" {
			l.searchActive = false
			l.searchInput.Blur()
			return l, nil, false
		}
		re, err := regexp.Compile("(?i)" + query)
		if err != nil {
			// Invalid regex - stay in search mode
			return l, nil, false
		}
		l.searchRegex = re
		l.searchActive = false
		l.searchInput.Blur()
		l.findSearchMatches()
		l.searchMatchIdx = 0
		l.scrollToMatch()
		return l, nil, false

	case key.Matches(msg, keys.Escape):
		l.searchActive = false
		l.searchInput.Blur()
		l.searchInput.SetValue("")
		return l, nil, false
	}

	var cmd tea.Cmd
	l.searchInput, cmd = l.searchInput.Update(msg)
	return l, cmd, false
}

func (l *logModal) clearSearch() {
	l.searchRegex = nil
	l.searchMatches = nil
	l.searchMatchIdx = 0
}

func (l *logModal) findSearchMatches() {
	l.searchMatches = nil
	if l.searchRegex == nil {
		return
	}
	for i, e := range l.visible {
		if l.searchRegex.MatchString(e.Raw) {
			l.searchMatches = append(l.searchMatches, i)
		}
	}
	if l.searchMatchIdx >= len(l.searchMatches) {
		l.searchMatchIdx = 0
	}
}

func (l *logModal) stepMatch(delta int) {
	n := len(l.searchMatches)
	if n == 0 {
		return
	}
	l.searchMatchIdx = (l.searchMatchIdx + delta + n) % n
	l.scrollToMatch()
}

func (l *logModal) scrollToMatch() {
	if len(l.searchMatches) == 0 {
		return
	}
	l.follow = false
	l.scrollTarget = l.searchMatches[l.searchMatchIdx]
}

// View renders the log overlay into width by height cells.
func (l *logModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	l.viewport.Width = max(width-4, 0)
	l.viewport.Height = max(height-4, 0)
	l.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(theme.Overlay))
	l.viewport.SetContent(l.renderContent(theme, l.viewport.Width))
	switch {
	case l.scrollTarget >= 0:
		l.viewport.SetYOffset(max(l.scrollTarget-l.viewport.Height/2, 0))
		l.scrollTarget = -1
	case l.follow:
		l.viewport.GotoBottom()
	}

	title := styles.AccentText.Bold(true).Render("Session log") + " " +
		styles.FaintText.Render(truncateMiddle(l.path, max(width-20, 8)))
	box := styles.LogBox.Width(max(width-2, 0))

	return lipgloss.JoinVertical(lipgloss.Left,
		box.Render(title+"\n"+l.viewport.View()),
		l.renderStatus(theme, width),
	)
}

func (l *logModal) renderStatus(theme Theme, width int) string {
	styles := theme.Styles()
	bg := NewBgStyle(theme.Surface)

	if l.searchActive {
		return bg.FillLine(bg.Render("/", styles.AccentText)+l.searchInput.View(), width)
	}

	followStyle := styles.WarningText
	if l.follow {
		followStyle = styles.SuccessText
	}
	parts := []string{
		bg.Render("level≥"+levelFilters[l.levelIdx], styles.MutedText),
		bg.Render(fmt.Sprintf("%d lines", len(l.visible)), styles.MutedText),
		bg.Render(ternary(l.follow, "following", "paused"), followStyle),
	}
	if l.searchRegex != nil {
		match := "no matches"
		if len(l.searchMatches) > 0 {
			match = fmt.Sprintf("match %d/%d", l.searchMatchIdx+1, len(l.searchMatches))
		}
		parts = append(parts, bg.Render(match, styles.AccentText))
	}
	if l.err != nil {
		parts = append(parts, bg.Render(truncate(l.err.Error(), 40), styles.DangerText))
	}
	return bg.FillLine(bg.Space()+bg.Join(parts, " · "), width)
}

func (l *logModal) renderContent(theme Theme, width int) string {
	if len(l.visible) == 0 {
		if l.err != nil {
			return "log unavailable: " + l.err.Error()
		}
		return "no log entries"
	}
	styles := theme.Styles()
	bg := NewBgStyle(theme.Overlay)

	current := -1
	if len(l.searchMatches) > 0 {
		current = l.searchMatches[l.searchMatchIdx]
	}

	var b strings.Builder
	for i, e := range l.visible {
		var line string
		switch {
		case i == current:
			line = styles.LogMatch.Render(truncate(e.Raw, width))
		case l.searchRegex != nil && l.searchRegex.MatchString(e.Raw):
			line = bg.Render(truncate(e.Raw, width), styles.AccentText)
		default:
			line = truncate(colorizeEntry(e, styles, bg), width)
		}
		b.WriteString(bg.FillLine(line, width))
		if i < len(l.visible)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// colorizeEntry renders a parsed entry as time, level, message and attrs.
func colorizeEntry(e logtail.Entry, styles Styles, bg BgStyle) string {
	if e.Message == "" && e.Level == "" {
		return bg.Render(e.Raw, styles.Text)
	}
	var b strings.Builder
	if ts := shortTime(e.Time); ts != "" {
		b.WriteString(bg.Render(ts, styles.FaintText))
		b.WriteString(bg.Space())
	}
	b.WriteString(bg.Render(fmt.Sprintf("%-5s", e.Level), levelStyle(e.Level, styles).Bold(true)))
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(e.Message, styles.Text))
	for _, a := range e.Attrs {
		if a.Key == "session" {
			continue
		}
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(a.Key+"=", styles.FaintText))
		b.WriteString(bg.Render(a.Value, styles.AccentText))
	}
	return b.String()
}

func shortTime(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

// levelStyle returns the style for a log level.
func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR":
		return styles.DangerText
	case "DEBUG":
		return styles.InfoText
	default:
		return styles.Text
	}
}
