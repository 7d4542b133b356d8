package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mosaic/internal/delivery"
)

// renderHeader renders the status bar above the grid.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < m.cfg.Breakpoints.MD

	parts := []string{bg.Render("mosaic", styles.Logo)}

	if m.grid.perRow == 0 {
		parts = append(parts, bg.Render("Measuring terminal...", styles.WarningText.Bold(true)))
		return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
	}

	if !compact {
		parts = append(parts, bg.Pair("seed", styles.MutedText, truncate(m.gen.Seed(), 16), styles.Text))
	}
	parts = append(parts,
		bg.Pair(m.grid.class.String(), styles.AccentText, fmt.Sprintf("%d/row", m.grid.perRow), styles.MutedText),
		bg.Pair("items", styles.MutedText, fmt.Sprintf("%d", m.grid.count), styles.Text),
		bg.Pair("focus", styles.MutedText, fmt.Sprintf("#%d", m.grid.focus), styles.Text),
	)

	loading, failed := m.visibleStatusCounts()
	if loading > 0 {
		parts = append(parts, bg.Pair(m.spinner.View(), styles.InfoText, fmt.Sprintf("%d loading", loading), styles.InfoText))
	}
	if failed > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d failed", failed), styles.DangerText))
	}

	content := bg.Join(parts, "  ")
	if m.title != "" && !compact {
		title := bg.Render(m.title, styles.FaintText)
		if gap := m.width - lipgloss.Width(content) - lipgloss.Width(title) - 2; gap > 0 {
			content += bg.Spaces(gap) + title
		}
	}
	return styles.Header.Width(m.width).Render(truncate(content, m.width-2))
}

// visibleStatusCounts counts loading and failed pictures among the tiles on
// screen.
func (m Model) visibleStatusCounts() (loading, failed int) {
	if m.tracker == nil {
		return 0, 0
	}
	for _, h := range m.grid.hits {
		switch m.tracker.Picture(h.id).Status {
		case delivery.Loading:
			loading++
		case delivery.Failed:
			failed++
		}
	}
	return loading, failed
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.store.Read().IsViewerOpen {
		m.help.Width = m.width
		return styles.Footer.Width(m.width).Render(m.help.View(viewerHelp{k: m.keys}))
	}

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"hjkl", "Move"},
		{"enter", "Open"},
		{"pgup/pgdn", "Scroll"},
		{"g/G", "Top/End"},
		{"L", "Log"},
		{"?", "More"},
	}
	if m.width < m.cfg.Breakpoints.SM {
		commands = []cmd{{"enter", "Open"}, {"?", "More"}}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
