package delivery

import (
	"context"
	"errors"
	"sync"

	"github.com/five82/mosaic/internal/imagedata"
	"github.com/five82/mosaic/internal/logger"
)

// Status is the load state of one picture.
type Status int

const (
	Preload Status = iota
	Loading
	Loaded
	Failed
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "preload"
	}
}

// Size is the cell area a picture is rendered into.
type Size struct {
	Cols int
	Rows int
}

// Loader produces the terminal rendering of an item.
type Loader interface {
	Load(ctx context.Context, item imagedata.Item, size Size) (string, error)
}

// Event reports a status change.
type Event struct {
	ID     int64
	Status Status
}

// Picture is the tracked state of one id.
type Picture struct {
	ID     int64
	Status Status
	Art    string
	Err    error
}

type entry struct {
	Picture
	size   Size
	gen    uint64
	cancel context.CancelFunc
}

// maxRetained bounds how many finished pictures are kept off-screen.
const maxRetained = 256

// Tracker schedules loads for visible items.
type Tracker struct {
	gen    *imagedata.Generator
	loader Loader
	notify func(Event)

	mu       sync.Mutex
	entries  map[int64]*entry
	visible  map[int64]bool
	nextGen  uint64
	stopped  bool
	inflight sync.WaitGroup
}

// NewTracker returns a Tracker. notify may be nil; it is called from loader
// goroutines.
func NewTracker(gen *imagedata.Generator, loader Loader, notify func(Event)) *Tracker {
	if loader == nil {
		loader = PlaceholderLoader{}
	}
	return &Tracker{
		gen:     gen,
		loader:  loader,
		notify:  notify,
		entries: make(map[int64]*entry),
		visible: make(map[int64]bool),
	}
}

// Update replaces the visible set. New ids start loading at size, ids that
// left the set have their in-flight loads cancelled.
func (t *Tracker) Update(ids []int64, size Size) {
	var events []Event

	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	next := make(map[int64]bool, len(ids))
	for _, id := range ids {
		next[id] = true
	}
	for id := range t.visible {
		if next[id] {
			continue
		}
		if e, ok := t.entries[id]; ok && e.Status == Loading {
			e.cancel()
			e.Status = Cancelled
			e.gen = 0
			events = append(events, Event{ID: id, Status: Cancelled})
		}
	}
	prev := t.visible
	t.visible = next

	for _, id := range ids {
		e, ok := t.entries[id]
		if ok && e.size == size {
			// Failed pictures retry only after leaving and re-entering.
			settled := e.Status == Loading || e.Status == Loaded || (e.Status == Failed && prev[id])
			if settled {
				continue
			}
		}
		if ok && e.Status == Loading {
			e.cancel()
		}
		item, valid := t.gen.Lookup(id)
		if !valid {
			continue
		}
		if !ok {
			e = &entry{Picture: Picture{ID: id, Status: Preload}}
			t.entries[id] = e
		}
		events = append(events, t.start(e, item, size))
	}
	t.prune()
	t.mu.Unlock()

	t.emit(events)
}

// start launches a load for e. Callers hold t.mu.
func (t *Tracker) start(e *entry, item imagedata.Item, size Size) Event {
	t.nextGen++
	gen := t.nextGen
	ctx, cancel := context.WithCancel(context.Background())
	e.Status = Loading
	e.Err = nil
	e.size = size
	e.gen = gen
	e.cancel = cancel

	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		defer cancel()
		art, err := t.loader.Load(ctx, item, size)
		t.finish(item.ID, gen, art, err, ctx.Err() != nil)
	}()
	return Event{ID: e.ID, Status: Loading}
}

func (t *Tracker) finish(id int64, gen uint64, art string, err error, cancelled bool) {
	t.mu.Lock()
	e, ok := t.entries[id]
	if !ok || e.gen != gen || t.stopped {
		t.mu.Unlock()
		return
	}
	switch {
	case cancelled || errors.Is(err, context.Canceled):
		e.Status = Cancelled
	case err != nil:
		e.Status = Failed
		e.Err = err
		logger.Component("delivery").Warn("load failed", "id", id, "error", err)
	default:
		e.Status = Loaded
		e.Art = art
	}
	ev := Event{ID: id, Status: e.Status}
	t.mu.Unlock()

	t.emit([]Event{ev})
}

func (t *Tracker) prune() {
	if len(t.entries) <= maxRetained {
		return
	}
	for id, e := range t.entries {
		if len(t.entries) <= maxRetained {
			return
		}
		if !t.visible[id] && e.Status != Loading {
			delete(t.entries, id)
		}
	}
}

func (t *Tracker) emit(events []Event) {
	if t.notify == nil {
		return
	}
	for _, ev := range events {
		t.notify(ev)
	}
}

// Picture returns the state of id. Untracked ids report Preload.
func (t *Tracker) Picture(id int64) Picture {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[id]; ok {
		return e.Picture
	}
	return Picture{ID: id, Status: Preload}
}

// Stop cancels every in-flight load and waits for the loaders to return.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	for _, e := range t.entries {
		if e.Status == Loading {
			e.cancel()
			e.Status = Cancelled
		}
	}
	t.mu.Unlock()
	t.inflight.Wait()
}
