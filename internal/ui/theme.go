package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Tiles draw their placeholders from
// imagedata.Item.Tint, so a theme only colours the chrome around them.
type Theme struct {
	Name string

	Background string // behind overlays
	Surface    string // header and command bar
	Overlay    string // log overlay body

	TileBorder string
	TileFocus  string // focused tile border and label

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Picture status colors, keyed by delivery.Status names
	StatusColors map[string]string
}

// StatusColor returns the color for a picture status, falling back to the
// muted text color.
func (t Theme) StatusColor(status string) string {
	if c, ok := t.StatusColors[status]; ok {
		return c
	}
	return t.Muted
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Bars
	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style

	// Gallery
	Tile             lipgloss.Style // bordered thumbnail
	TileFocused      lipgloss.Style
	TileLabel        lipgloss.Style
	TileLabelFocused lipgloss.Style
	Chevron          lipgloss.Style
	ThumbMarker      lipgloss.Style // underline of the current thumbnail
	Placeholder      lipgloss.Style // "measuring terminal" and empty states

	// Overlays
	Modal    lipgloss.Style
	HelpKey  lipgloss.Style
	LogBox   lipgloss.Style
	LogMatch lipgloss.Style // current search match

	statusColors map[string]string
	background   string
	muted        string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Logo: fg(t.Warning).Bold(true),

		Tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.TileBorder)),
		TileFocused: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(t.TileFocus)),
		TileLabel:        fg(t.Text),
		TileLabelFocused: fg(t.TileFocus).Bold(true),
		Chevron:          fg(t.Accent).Bold(true),
		ThumbMarker:      fg(t.Accent),
		Placeholder:      fg(t.Muted),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(1, 2),
		HelpKey: fg(t.Warning).Width(12),
		LogBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.TileFocus)).
			Padding(0, 1),
		LogMatch: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Warning)).
			Foreground(lipgloss.Color(t.Background)),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// StatusStyle returns a badge style for a picture status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles whose text and bar styles carry
// bgColor explicitly, so segments joined on a bar do not leave gaps.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Footer, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, Nightfox when the name is unknown.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:       "Nightfox",
		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		Overlay:    "#29394f", // bg3
		TileBorder: "#39506d", // bg4
		TileFocus:  "#719cd6", // blue
		Text:       "#cdcecf", // fg1
		Muted:      "#738091", // comment
		Faint:      "#71839b", // fg3
		Accent:     "#719cd6", // blue
		Success:    "#81b29a", // green
		Warning:    "#dbc074", // yellow
		Danger:     "#c94f6d", // red
		Info:       "#63cdcf", // cyan
		StatusColors: map[string]string{
			"preload":   "#738091",
			"loading":   "#63cdcf",
			"loaded":    "#81b29a",
			"failed":    "#c94f6d",
			"cancelled": "#71839b",
		},
	}
}

func kanagawaTheme() Theme {
	// https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:       "Kanagawa",
		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		Overlay:    "#2A2A37", // sumiInk4
		TileBorder: "#54546D", // sumiInk6
		TileFocus:  "#7E9CD8", // crystalBlue
		Text:       "#DCD7BA", // fujiWhite
		Muted:      "#C8C093", // oldWhite
		Faint:      "#727169", // fujiGray
		Accent:     "#7E9CD8", // crystalBlue
		Success:    "#98BB6C", // springGreen
		Warning:    "#E6C384", // carpYellow
		Danger:     "#E46876", // waveRed
		Info:       "#7FB4CA", // springBlue
		StatusColors: map[string]string{
			"preload":   "#727169",
			"loading":   "#7FB4CA",
			"loaded":    "#98BB6C",
			"failed":    "#E46876",
			"cancelled": "#C8C093",
		},
	}
}

func slateTheme() Theme {
	// Tailwind slate/sky
	return Theme{
		Name:       "Slate",
		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		Overlay:    "#1e293b", // slate-800
		TileBorder: "#334155", // slate-700
		TileFocus:  "#38bdf8", // sky-400
		Text:       "#f1f5f9", // slate-100
		Muted:      "#94a3b8", // slate-400
		Faint:      "#64748b", // slate-500
		Accent:     "#38bdf8", // sky-400
		Success:    "#22c55e", // green-500
		Warning:    "#f59e0b", // amber-500
		Danger:     "#ef4444", // red-500
		Info:       "#06b6d4", // cyan-500
		StatusColors: map[string]string{
			"preload":   "#64748b",
			"loading":   "#38bdf8",
			"loaded":    "#22c55e",
			"failed":    "#dc2626",
			"cancelled": "#94a3b8",
		},
	}
}
