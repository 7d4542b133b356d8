package delivery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/mosaic/internal/imagedata"
)

// gateLoader blocks each load until released or cancelled.
type gateLoader struct {
	mu      sync.Mutex
	started map[int64]chan error
	calls   map[int64]int
}

func newGateLoader() *gateLoader {
	return &gateLoader{started: make(map[int64]chan error), calls: make(map[int64]int)}
}

func (g *gateLoader) Load(ctx context.Context, item imagedata.Item, _ Size) (string, error) {
	g.mu.Lock()
	ch := make(chan error, 1)
	g.started[item.ID] = ch
	g.calls[item.ID]++
	g.mu.Unlock()

	select {
	case err := <-ch:
		if err != nil {
			return "", err
		}
		return "art", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *gateLoader) release(t *testing.T, id int64, err error) {
	t.Helper()
	g.mu.Lock()
	ch, ok := g.started[id]
	g.mu.Unlock()
	if !ok {
		t.Fatalf("load for %d never started", id)
	}
	ch <- err
}

func (g *gateLoader) callCount(id int64) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[id]
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
	signal chan struct{}
}

func newEventLog() *eventLog { return &eventLog{signal: make(chan struct{}, 64)} }

func (l *eventLog) record(ev Event) {
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
	l.signal <- struct{}{}
}

func waitStatus(t *testing.T, tr *Tracker, id int64, want Status) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if tr.Picture(id).Status == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("picture %d status = %s, want %s", id, tr.Picture(id).Status, want)
}

func TestTracker_LoadsVisibleItems(t *testing.T) {
	loader := newGateLoader()
	log := newEventLog()
	tr := NewTracker(imagedata.NewGenerator("test"), loader, log.record)
	defer tr.Stop()

	size := Size{Cols: 20, Rows: 8}
	tr.Update([]int64{1, 2}, size)
	if got := tr.Picture(1).Status; got != Loading {
		t.Fatalf("status = %s, want loading", got)
	}

	waitStarted(t, loader, 1)
	loader.release(t, 1, nil)
	waitStatus(t, tr, 1, Loaded)
	if got := tr.Picture(1).Art; got != "art" {
		t.Fatalf("Art = %q, want art", got)
	}

	// Repeated updates with the same window do not restart loads.
	tr.Update([]int64{1, 2}, size)
	if loader.callCount(1) != 1 || loader.callCount(2) != 1 {
		t.Fatalf("calls = %d/%d, want 1/1", loader.callCount(1), loader.callCount(2))
	}
}

func TestTracker_CancelsOnScrollAway(t *testing.T) {
	loader := newGateLoader()
	tr := NewTracker(imagedata.NewGenerator("test"), loader, nil)
	defer tr.Stop()

	size := Size{Cols: 20, Rows: 8}
	tr.Update([]int64{5}, size)
	waitStarted(t, loader, 5)
	tr.Update([]int64{6}, size)

	if got := tr.Picture(5).Status; got != Cancelled {
		t.Fatalf("status = %s, want cancelled", got)
	}

	// Coming back restarts the load.
	tr.Update([]int64{5}, size)
	if got := tr.Picture(5).Status; got != Loading {
		t.Fatalf("status = %s after return, want loading", got)
	}
	if loader.callCount(5) < 1 {
		t.Fatal("load not restarted")
	}
}

func TestTracker_FailedLoadRetriesOnlyAfterReentry(t *testing.T) {
	loader := newGateLoader()
	tr := NewTracker(imagedata.NewGenerator("test"), loader, nil)
	defer tr.Stop()

	size := Size{Cols: 10, Rows: 4}
	tr.Update([]int64{3}, size)
	waitStarted(t, loader, 3)
	loader.release(t, 3, errors.New("status 500"))
	waitStatus(t, tr, 3, Failed)
	if tr.Picture(3).Err == nil {
		t.Fatal("Err = nil for failed picture")
	}

	tr.Update([]int64{3}, size)
	if got := loader.callCount(3); got != 1 {
		t.Fatalf("calls = %d while still visible, want 1", got)
	}
	tr.Update(nil, size)
	tr.Update([]int64{3}, size)
	if got := tr.Picture(3).Status; got != Loading {
		t.Fatalf("status = %s after re-entry, want loading", got)
	}
}

func TestTracker_SkipsInvalidIDs(t *testing.T) {
	tr := NewTracker(imagedata.NewGenerator("test"), newGateLoader(), nil)
	defer tr.Stop()
	tr.Update([]int64{-1}, Size{Cols: 4, Rows: 2})
	if got := tr.Picture(-1).Status; got != Preload {
		t.Fatalf("status = %s, want preload", got)
	}
}

func TestTracker_StopCancelsInflight(t *testing.T) {
	loader := newGateLoader()
	tr := NewTracker(imagedata.NewGenerator("test"), loader, nil)
	tr.Update([]int64{7, 8}, Size{Cols: 4, Rows: 2})
	waitStarted(t, loader, 7)
	waitStarted(t, loader, 8)

	tr.Stop()
	tr.Stop()
	if got := tr.Picture(7).Status; got != Cancelled {
		t.Fatalf("status = %s after Stop, want cancelled", got)
	}
	tr.Update([]int64{9}, Size{Cols: 4, Rows: 2})
	if loader.callCount(9) != 0 {
		t.Fatal("Update after Stop started a load")
	}
}

func TestTracker_PlaceholderLoader(t *testing.T) {
	log := newEventLog()
	tr := NewTracker(imagedata.NewGenerator("test"), nil, log.record)
	defer tr.Stop()

	tr.Update([]int64{0}, Size{Cols: 4, Rows: 2})
	waitStatus(t, tr, 0, Loaded)
	if art := tr.Picture(0).Art; art != "" {
		t.Fatalf("placeholder art = %q, want empty", art)
	}
}

func waitStarted(t *testing.T, g *gateLoader, id int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		g.mu.Lock()
		_, ok := g.started[id]
		g.mu.Unlock()
		if ok {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("load for %d never started", id)
}
