package ui

import "time"

// Screen chrome.
const (
	// HeaderHeight is the status line above the content.
	HeaderHeight = 1

	// FooterHeight is the command bar below the content.
	FooterHeight = 1

	// CellAspect is the height of a terminal cell divided by its width.
	CellAspect = 2.0
)

// Tile sizing in the grid.
const (
	tileMinImageRows = 3
	tileMaxImageRows = 18
	tileLabelRows    = 1
	tileBorder       = 2
	tileGap          = 1
)

// Viewer sizing.
const (
	thumbWidth     = 4
	thumbStripRows = 3
	chevronWidth   = 3
)

// Log display limits.
const (
	// LogTailLines is the number of log lines loaded into the overlay.
	LogTailLines = 2000
)

// Timing constants.
const (
	// LogRefreshInterval is how often the log overlay rereads the file.
	LogRefreshInterval = 2 * time.Second

	// WheelStep is how many lines one wheel notch scrolls.
	WheelStep = 3
)
