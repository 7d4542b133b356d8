package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Logs       key.Binding
	Escape     key.Binding

	// Grid
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Open         key.Binding

	// Viewer
	Previous      key.Binding
	Next          key.Binding
	ToggleChrome  key.Binding
	CloseViewer   key.Binding
	ToggleInfo    key.Binding
	FirstNeighbor key.Binding
	LastNeighbor  key.Binding

	// Logs
	ToggleFollow key.Binding
	CycleLevel   key.Binding
	Search       key.Binding
	NextMatch    key.Binding
	PrevMatch    key.Binding

	// Search/input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Session log"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		// Grid
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Move right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Open photo"),
		),

		// Viewer
		Previous: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("h/left", "Previous photo"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("l/right", "Next photo"),
		),
		ToggleChrome: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("up/down", "Toggle chrome"),
		),
		CloseViewer: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "Close viewer"),
		),
		ToggleInfo: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Toggle details"),
		),
		FirstNeighbor: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Jump to first thumbnail"),
		),
		LastNeighbor: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Jump to last thumbnail"),
		),

		// Logs
		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
		CycleLevel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle level filter"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search logs"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Previous match"),
		),

		// Search/input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Logs, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Grid
		{k.Up, k.Down, k.Left, k.Right, k.Open},
		{k.Top, k.Bottom, k.PageUp, k.PageDown, k.HalfPageUp, k.HalfPageDown},
		// Viewer
		{k.Previous, k.Next, k.ToggleChrome, k.ToggleInfo, k.FirstNeighbor, k.LastNeighbor, k.CloseViewer},
		// Logs
		{k.ToggleFollow, k.CycleLevel, k.Search, k.NextMatch, k.PrevMatch},
		// General
		{k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}

// viewerHelp is the short help shown while the viewer is open.
type viewerHelp struct{ k keyMap }

func (v viewerHelp) ShortHelp() []key.Binding {
	return []key.Binding{v.k.Previous, v.k.Next, v.k.ToggleChrome, v.k.CloseViewer, v.k.Help}
}

func (v viewerHelp) FullHelp() [][]key.Binding { return v.k.FullHelp() }
