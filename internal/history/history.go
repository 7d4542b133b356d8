// Package history mirrors the store's cursor into a displayed path.
//
// In the terminal the "address bar" is the window title. Updates are
// debounced on the trailing edge so that holding an arrow key in the viewer
// produces one title change, not hundreds.
package history

import (
	"sync"
	"time"

	"github.com/five82/mosaic/internal/logger"
	"github.com/five82/mosaic/internal/route"
	"github.com/five82/mosaic/internal/state"
)

// DefaultDelay is the trailing debounce interval.
const DefaultDelay = 300 * time.Millisecond

// Sink receives the path to display.
type Sink func(path string)

// Sync follows a store and publishes its route to a Sink.
type Sync struct {
	store *state.Store
	sink  Sink
	delay time.Duration
	sub   *state.Subscription

	mu      sync.Mutex
	timer   *time.Timer
	last    string
	stopped bool
}

// Start subscribes to store. A zero delay publishes synchronously.
func Start(store *state.Store, delay time.Duration, sink Sink) *Sync {
	h := &Sync{store: store, sink: sink, delay: max(delay, 0)}
	h.sub = store.Subscribe(func(state.AppState) { h.schedule() })
	h.schedule()
	return h
}

func (h *Sync) schedule() {
	if h.delay == 0 {
		h.publish()
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(h.delay, h.publish)
}

// Flush publishes the current route immediately, dropping any pending timer.
func (h *Sync) Flush() {
	h.mu.Lock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.mu.Unlock()
	h.publish()
}

func (h *Sync) publish() {
	current := h.store.Read()
	if current.CurrentImageIndex < 0 {
		return
	}
	path := route.Path(current)

	h.mu.Lock()
	if h.stopped || path == h.last {
		h.mu.Unlock()
		return
	}
	h.last = path
	h.mu.Unlock()

	logger.Component("history").Debug("publish path", "path", path)
	h.sink(path)
}

// Last returns the most recently published path.
func (h *Sync) Last() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Stop unsubscribes and cancels any pending publish.
func (h *Sync) Stop() {
	h.sub.Unsubscribe()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}
