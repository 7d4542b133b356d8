package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// helpSectionTitles names the groups returned by keyMap.FullHelp.
var helpSectionTitles = []string{"Grid", "Scrolling", "Viewer", "Logs", "General"}

// helpModal is the keyboard shortcut overlay.
type helpModal struct {
	keys keyMap
}

func newHelpModal(keys keyMap) *helpModal {
	return &helpModal{keys: keys}
}

// Init implements Modal.
func (h *helpModal) Init() tea.Cmd { return nil }

// Update closes the overlay on help, escape or quit-like keys.
func (h *helpModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil, false
	}
	if key.Matches(km, keys.Help, keys.Escape) || km.String() == "q" {
		return h, nil, true
	}
	return h, nil, false
}

// View renders the help overlay.
func (h *helpModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder

	// Title
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := h.keys.FullHelp()
	for i, group := range groups {
		title := "More"
		if i < len(helpSectionTitles) {
			title = helpSectionTitles[i]
		}
		b.WriteString(styles.AccentText.Bold(true).Render(title))
		b.WriteString("\n")

		for _, binding := range group {
			if !binding.Enabled() {
				continue
			}
			b.WriteString(styles.HelpKey.Render(binding.Help().Key))
			b.WriteString(styles.Text.Render(binding.Help().Desc))
			b.WriteString("\n")
		}

		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	modal := styles.Modal.Width(44)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
