// Package viewer holds the navigation logic of the full-screen viewer.
//
// Everything here works through a state.Store; the viewer view in
// internal/ui only renders and forwards input.
package viewer

import (
	"fmt"

	"github.com/five82/mosaic/internal/imagedata"
	"github.com/five82/mosaic/internal/state"
)

// Direction is the last navigation direction, used for presentation only.
type Direction int

const (
	None Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Arrow returns a glyph for d.
func (d Direction) Arrow() string {
	switch d {
	case Left:
		return "←"
	case Right:
		return "→"
	default:
		return "·"
	}
}

// Navigator moves the cursor of a Store.
type Navigator struct {
	store     *state.Store
	direction Direction
}

// NewNavigator returns a Navigator bound to store.
func NewNavigator(store *state.Store) *Navigator {
	return &Navigator{store: store}
}

// Direction returns the direction of the last cursor move.
func (n *Navigator) Direction() Direction {
	return n.direction
}

// Next advances the cursor, stopping at MaxSafeInteger.
func (n *Navigator) Next() bool {
	cur := n.store.Read().CurrentImageIndex
	if cur >= imagedata.MaxSafeInteger {
		return false
	}
	n.direction = Right
	n.store.Mutate(func(s *state.AppState) {
		if s.CurrentImageIndex < imagedata.MaxSafeInteger {
			s.CurrentImageIndex++
		}
	})
	return true
}

// Previous moves the cursor back; at 0 it does nothing.
func (n *Navigator) Previous() bool {
	cur := n.store.Read().CurrentImageIndex
	if cur <= 0 {
		return false
	}
	n.direction = Left
	n.store.Mutate(func(s *state.AppState) {
		if s.CurrentImageIndex > 0 {
			s.CurrentImageIndex--
		}
	})
	return true
}

// JumpTo sets the cursor to id. Moving to the current id is a no-op.
func (n *Navigator) JumpTo(id int64) error {
	if !imagedata.Valid(id) {
		return fmt.Errorf("jump to %d: %w", id, imagedata.ErrInvalidIndex)
	}
	cur := n.store.Read().CurrentImageIndex
	if id == cur {
		return nil
	}
	if id > cur {
		n.direction = Right
	} else {
		n.direction = Left
	}
	n.store.Mutate(func(s *state.AppState) { s.CurrentImageIndex = id })
	return nil
}

// Open shows the viewer on id.
func (n *Navigator) Open(id int64) error {
	if !imagedata.Valid(id) {
		return fmt.Errorf("open %d: %w", id, imagedata.ErrInvalidIndex)
	}
	n.direction = None
	n.store.Mutate(func(s *state.AppState) {
		s.CurrentImageIndex = id
		s.IsViewerOpen = true
	})
	return nil
}

// Close hides the viewer. The grid realigns itself from the resulting
// notification.
func (n *Navigator) Close() {
	n.store.Mutate(func(s *state.AppState) { s.IsViewerOpen = false })
}
