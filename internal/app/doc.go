// Package app is the composition root of Mosaic.
//
// Run loads the configuration and preferences, opens the session log, turns
// the initial route into a store bootstrap and wires the pieces together:
//
//	route.Parse ──> state.Store <── history.Sync ──> window title
//	                    │
//	                    ├──> ui.Model (grid, viewer)
//	                    │        │
//	                    │        └──> delivery.Tracker ──> PictureMsg
//	                    │
//	imagedata.Generator ┘
//
// Background goroutines (history timers, picture loads) never touch the
// model directly. They reach the running program through ui.Bridge.
//
// An unknown route is not fatal: it is logged and the grid is shown.
// Configuration errors are returned before the terminal is taken over.
//
// Teardown runs in reverse: history, tracker, store, then the log file.
package app
