// Package delivery loads pictures for the items the grid is showing.
//
// The gallery core never fetches anything; it only reports which ids are
// visible. A Tracker turns that visibility feed into load requests:
//
//	visible ids ──► Tracker.Update ──► Loader.Load (one goroutine per id)
//	                     │                     │
//	                     └── cancel when ──────┘
//	                         scrolled away
//
// Each picture moves through preload → loading → loaded (or failed), and
// to cancelled when it leaves the window before its load completes. A
// cancelled picture starts over if it becomes visible again.
//
// Two loaders are provided. PlaceholderLoader completes immediately without
// touching the network; the grid then draws the item's tint. ChafaLoader
// downloads the best-fitting source and renders it to terminal symbols with
// the chafa binary.
package delivery
