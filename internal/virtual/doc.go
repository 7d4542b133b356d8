// Package virtual implements the row virtualizer behind the gallery grid.
//
// # Overview
//
// The grid can hold far more rows than fit on screen, and the row count
// keeps growing while the user scrolls. A Virtualizer keeps the per-row
// offset table and answers one question per frame: which rows intersect
// the viewport (plus an overscan margin) right now.
//
// # Offsets
//
// Row i starts at PaddingStart plus the sizes of rows 0..i-1. A row's size
// is its measured height once the grid has rendered it, and the current
// estimate before that. The prefix sums are cached; Measure invalidates
// the cache from the row after the measured one, and the next query
// recomputes only that suffix. A change of estimate invalidates from the
// first unmeasured row.
//
//	starts:  [pad][row0][row1][row2] ... [rowN-1][padEnd]
//	          ^    ^     ^     ^
//	          |    valid prefix |  recomputed on demand
//
// # Windowing
//
// VisibleWindow binary-searches for the first row whose end is past
// scroll-overscan and walks forward while rows start at or before
// scroll+height+overscan. With no rows or a zero-height viewport the
// window is empty and the grid draws nothing.
//
// # Addressable Range
//
// Cumulative offsets are capped at MaxSafeOffset. The row count is limited
// to floor(MaxSafeOffset / estimate) and ScrollToRow rejects rows past
// that limit with ErrAddressableRangeExceeded instead of scrolling.
//
// # Growth
//
// An EndObserver fires when the last row enters the window, once per
// entry. The callback decides how much to grow; calling SetCount from it
// is allowed and re-evaluates the window after the callback returns.
// Disconnect turns the observer off permanently.
package virtual
