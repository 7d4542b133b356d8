// Package ui provides the Bubble Tea terminal interface for Mosaic.
//
// # Architecture Overview
//
// Model is the root tea.Model. It owns two views that both read the shared
// state.Store and never talk to each other directly:
//
//   - gridView: the virtualised thumbnail grid. Rows are planned by
//     internal/layout from the terminal width, positioned by a
//     virtual.Virtualizer, rendered with lipgloss and measured back into
//     the virtualizer after every layout pass. Reaching the last row
//     extends the store's LastImageIndex, which grows the grid.
//   - viewerView: the full-screen viewer. It renders whatever the store
//     cursor points at and turns keys, clicks and mouse drags into
//     viewer.Navigator calls.
//
// Closing the viewer is observed by the grid's store subscription, which
// scrolls the row holding the cursor back into view.
//
// # Package Structure
//
//   - app.go: Model, Update/View, and Run
//   - grid.go / viewer.go: the two views
//   - header.go: status line and command bar
//   - help.go / logs.go / modal.go: overlays (shortcuts, session log)
//   - bridge.go: delivery of background messages into the program
//   - keys.go / theme.go / style_helpers.go / strings.go / layout.go
//
// # Event Flow
//
//  1. app.Run builds the store, tracker and history sync, then calls Run
//  2. Every Update ends with a layout pass of the active view
//  3. The grid hands its visible ids to the delivery tracker; status
//     changes come back as PictureMsg through the Bridge
//  4. The history sync reports the debounced route as TitleMsg, which sets
//     the terminal title
//
// # Key Bindings
//
//   - h/j/k/l or arrows: move the focused tile (grid), previous/next (viewer)
//   - enter or space: open the focused tile
//   - pgup/pgdown, ctrl+u/ctrl+d, g/G: scroll the grid
//   - up/down in the viewer: toggle the header and thumbnail strip
//   - esc or q: close the viewer
//   - L: session log, ?: help, T: cycle theme, e or ctrl+c: quit
package ui
