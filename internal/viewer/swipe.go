package viewer

import (
	"math"
	"time"
)

// SwipeConfidenceThreshold is the minimum |offset| * velocity for a drag to
// count as a swipe.
const SwipeConfidenceThreshold = 1000

// DefaultCellWidthPx approximates a terminal cell width in pixels.
const DefaultCellWidthPx = 8

// Swipe is the outcome of a drag.
type Swipe int

const (
	SwipeNone Swipe = iota
	SwipeNext
	SwipePrevious
)

func (s Swipe) String() string {
	switch s {
	case SwipeNext:
		return "next"
	case SwipePrevious:
		return "previous"
	default:
		return "none"
	}
}

// SwipePower is |offset| * velocity; its sign follows the velocity.
func SwipePower(offset, velocity float64) float64 {
	return math.Abs(offset) * velocity
}

// ClassifySwipe maps a drag on item id to a navigation. Dragging left with
// enough power moves to the next item; dragging right moves back unless id
// is already 0.
func ClassifySwipe(offset, velocity float64, id int64) Swipe {
	power := SwipePower(offset, velocity)
	switch {
	case power < -SwipeConfidenceThreshold:
		return SwipeNext
	case power > SwipeConfidenceThreshold && id > 0:
		return SwipePrevious
	default:
		return SwipeNone
	}
}

// Gesture turns a mouse press/release pair into a horizontal drag.
type Gesture struct {
	CellWidthPx float64

	active  bool
	startX  int
	startAt time.Time
}

// Press starts a drag at column x.
func (g *Gesture) Press(x int, at time.Time) {
	g.active = true
	g.startX = x
	g.startAt = at
}

// Active reports whether a drag is in progress.
func (g *Gesture) Active() bool { return g.active }

// Cancel drops an in-progress drag.
func (g *Gesture) Cancel() { g.active = false }

// Release ends the drag at column x and returns the offset in px and the
// velocity in px/s. ok is false without a matching Press.
func (g *Gesture) Release(x int, at time.Time) (offset, velocity float64, ok bool) {
	if !g.active {
		return 0, 0, false
	}
	g.active = false

	cell := g.CellWidthPx
	if cell <= 0 {
		cell = DefaultCellWidthPx
	}
	offset = float64(x-g.startX) * cell
	elapsed := at.Sub(g.startAt).Seconds()
	if elapsed <= 0 {
		// Same-tick release; treat as one millisecond.
		elapsed = 0.001
	}
	return offset, offset / elapsed, true
}
