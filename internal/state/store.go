package state

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/five82/mosaic/internal/logger"
)

// AppState is the navigation state shared by the grid, the viewer and the
// history sync.
type AppState struct {
	CurrentImageIndex int64 // -1 means no selection
	LastImageIndex    int64
	IsViewerOpen      bool
}

// Default is the state of a session with no route bootstrap.
var Default = AppState{CurrentImageIndex: -1, LastImageIndex: -1}

// Validate checks the AppState invariants.
func (s AppState) Validate() error {
	if s.CurrentImageIndex < -1 {
		return fmt.Errorf("current image index %d below -1", s.CurrentImageIndex)
	}
	if s.IsViewerOpen && s.CurrentImageIndex < 0 {
		return fmt.Errorf("viewer open without a current image")
	}
	return nil
}

// Bootstrap is a partial initial state, usually derived from the route.
type Bootstrap struct {
	CurrentImageIndex *int64
	IsViewerOpen      *bool
	LastImageIndex    *int64
}

// Apply overlays the set fields of b onto s.
func (b Bootstrap) Apply(s AppState) AppState {
	if b.CurrentImageIndex != nil {
		s.CurrentImageIndex = *b.CurrentImageIndex
	}
	if b.IsViewerOpen != nil {
		s.IsViewerOpen = *b.IsViewerOpen
	}
	if b.LastImageIndex != nil {
		s.LastImageIndex = *b.LastImageIndex
	}
	return s
}

// ImageCount is the number of grid items materialised for s: everything up
// to the furthest index seen plus one batch.
func ImageCount(s AppState, batch int) int64 {
	n := max(s.CurrentImageIndex, s.LastImageIndex, 0)
	return n + int64(batch)
}

// Option configures a Store.
type Option func(*Store)

// WithStrictMutations runs every mutator twice on independent drafts and
// panics when the results differ.
func WithStrictMutations() Option {
	return func(s *Store) { s.strict = true }
}

// Store holds the single AppState of a session.
type Store struct {
	mu          sync.Mutex
	value       AppState
	subs        []*Subscription
	pending     []func(*AppState)
	dispatching bool
	closed      bool
	strict      bool
	mutations   uint64
}

// New creates a Store seeded with initial on top of Default. An initial
// state that breaks an invariant falls back to Default.
func New(initial Bootstrap, opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	value := initial.Apply(Default)
	if err := value.Validate(); err != nil {
		logger.Component("state").Warn("rejected bootstrap", "error", err)
		value = Default
	}
	s.value = value
	return s
}

// Read returns the current value.
func (s *Store) Read() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Mutations returns how many mutators have been applied.
func (s *Store) Mutations() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutations
}

// Mutate applies fn to a copy of the current value, publishes the result
// and notifies subscribers before returning.
//
// A Mutate issued while a notification round is running (from a subscriber,
// or from another goroutine) is queued and applied by the dispatching call
// once the current round finishes, so notifications follow mutation order.
// Mutate on a closed Store does nothing.
func (s *Store) Mutate(fn func(*AppState)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = append(s.pending, fn)
	if s.dispatching {
		s.mu.Unlock()
		return
	}
	s.dispatching = true
	s.mu.Unlock()

	finished := false
	defer func() {
		if finished {
			return
		}
		// fn or a subscriber panicked. Only the failing mutator is lost;
		// anything still queued is applied by the next Mutate.
		s.mu.Lock()
		s.dispatching = false
		s.mu.Unlock()
	}()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 || s.closed {
			s.pending = nil
			s.dispatching = false
			s.mu.Unlock()
			finished = true
			return
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		current := s.value
		s.mu.Unlock()

		updated := s.apply(current, next)

		s.mu.Lock()
		s.value = updated
		s.mutations++
		subs := append([]*Subscription(nil), s.subs...)
		s.mu.Unlock()

		for _, sub := range subs {
			sub.deliver(updated)
		}
	}
}

func (s *Store) apply(current AppState, fn func(*AppState)) AppState {
	draft := current
	fn(&draft)
	if s.strict {
		again := current
		fn(&again)
		if again != draft {
			panic(fmt.Sprintf("state: mutator is not idempotent: %+v then %+v", draft, again))
		}
	}
	if err := draft.Validate(); err != nil {
		panic("state: mutator broke invariant: " + err.Error())
	}
	return draft
}

// Subscribe registers fn for every published value that differs from the
// last value fn saw. The current value counts as seen.
func (s *Store) Subscribe(fn func(AppState)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &Subscription{store: s, fn: fn, seen: s.value}
	if s.closed {
		return sub
	}
	sub.alive.Store(true)
	s.subs = append(s.subs, sub)
	return sub
}

// Close ends the session: subscribers are dropped and later mutations are
// ignored.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.alive.Store(false)
	}
	s.subs = nil
	s.pending = nil
}

func (s *Store) remove(target *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub == target {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	store *Store
	fn    func(AppState)
	alive atomic.Bool

	seenMu sync.Mutex
	seen   AppState
}

// Active reports whether the subscription still receives values.
func (sub *Subscription) Active() bool {
	return sub.alive.Load()
}

// Unsubscribe stops delivery. It is idempotent and safe after Close.
func (sub *Subscription) Unsubscribe() {
	if !sub.alive.Swap(false) {
		return
	}
	sub.store.remove(sub)
}

func (sub *Subscription) deliver(v AppState) {
	if !sub.alive.Load() {
		return
	}
	sub.seenMu.Lock()
	if sub.seen == v {
		sub.seenMu.Unlock()
		return
	}
	sub.seen = v
	sub.seenMu.Unlock()
	sub.fn(v)
}
