// Package state holds the shared navigation state of a Mosaic session.
//
// # Overview
//
// The grid, the viewer and the history sync never reference each other.
// They all read and write one Store, and every coupling between them (the
// grid realigning after the viewer closes, the title following the cursor)
// goes through a mutation and the notifications it produces.
//
//	Grid ──Mutate──┐                 ┌──► Grid (realign on close)
//	               ├──► Store ──────►├──► Viewer (redraw current item)
//	Viewer ─Mutate─┘                 └──► history.Sync (terminal title)
//
// # Core Types
//
// AppState:
//   - CurrentImageIndex: the cursor, -1 when nothing is selected
//   - LastImageIndex: furthest item the grid has observed
//   - IsViewerOpen: viewer visibility
//
// Bootstrap:
//   - Partial initial state supplied by the route parser
//   - Unset fields keep their Default values
//
// Store:
//   - Read returns the current value
//   - Mutate copies, applies, validates, publishes and notifies
//   - Subscribe registers a callback scoped to the caller's lifetime
//
// # Mutation Semantics
//
// A mutator receives a pointer to a draft copy. It must only modify the
// draft, because the store may run it twice:
//
//	store := state.New(state.Bootstrap{}, state.WithStrictMutations())
//	store.Mutate(func(s *state.AppState) {
//		s.CurrentImageIndex = 42
//		s.IsViewerOpen = true
//	})
//
// With WithStrictMutations each mutator is applied to two independent
// drafts and the results are compared. A mismatch, or a result that breaks
// an invariant, is a programmer error and panics out of Mutate. The store
// resets its dispatch state first, so it keeps working afterwards; only the
// failing mutator is lost and mutations still queued run on the next Mutate.
//
// # Ordering
//
// Only one notification round runs at a time. A Mutate issued during a
// round (typically by a subscriber reacting to a change) is queued and
// applied after the round, by the goroutine that is already dispatching.
// Subscribers therefore observe values in the order mutations were applied,
// and no mutation is dropped.
//
// # Subscriptions
//
// Each subscription remembers the last value it saw and is only called when
// the published value differs from it. A liveness flag is checked before
// every delivery: after Unsubscribe or Store.Close the callback never runs,
// even if a round that started earlier is still iterating.
//
// Unsubscribe is idempotent and safe to call after Close.
//
// # Concurrency
//
// The Store is safe for concurrent use. In practice all mutations happen on
// the Bubble Tea update goroutine; the mutex exists for the debounced
// history timer and the image loaders, which read from other goroutines.
package state
