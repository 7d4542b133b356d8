package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is a full-screen overlay (help, session log). While one is shown it
// receives every key and mouse event; the grid and viewer stay frozen
// underneath.
type Modal interface {
	// Init returns the overlay's startup command, if any.
	Init() tea.Cmd
	// Update handles msg. The bool result asks the model to drop the overlay.
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// openModal shows md and starts it.
func (m *Model) openModal(md Modal) tea.Cmd {
	m.modal = md
	return md.Init()
}
