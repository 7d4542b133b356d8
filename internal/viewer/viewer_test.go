package viewer

import (
	"errors"
	"testing"
	"time"

	"github.com/five82/mosaic/internal/imagedata"
	"github.com/five82/mosaic/internal/state"
)

func newStore(cursor int64, open bool) *state.Store {
	return state.New(state.Bootstrap{CurrentImageIndex: &cursor, IsViewerOpen: &open}, state.WithStrictMutations())
}

func TestNext_ClampsAtMaxSafeInteger(t *testing.T) {
	store := newStore(imagedata.MaxSafeInteger-1, true)
	nav := NewNavigator(store)

	for i := 0; i < 5; i++ {
		nav.Next()
		if got := store.Read().CurrentImageIndex; got > imagedata.MaxSafeInteger {
			t.Fatalf("cursor = %d, exceeds MaxSafeInteger", got)
		}
	}
	if got := store.Read().CurrentImageIndex; got != imagedata.MaxSafeInteger {
		t.Fatalf("cursor = %d, want %d", got, imagedata.MaxSafeInteger)
	}
	if nav.Next() {
		t.Fatal("Next() = true at MaxSafeInteger")
	}
}

func TestPrevious_StopsAtZero(t *testing.T) {
	store := newStore(1, true)
	nav := NewNavigator(store)

	for i := 0; i < 5; i++ {
		nav.Previous()
		if got := store.Read().CurrentImageIndex; got < 0 {
			t.Fatalf("cursor = %d, went negative", got)
		}
	}
	if got := store.Read().CurrentImageIndex; got != 0 {
		t.Fatalf("cursor = %d, want 0", got)
	}
	if nav.Direction() != Left {
		t.Fatalf("Direction() = %s, want left", nav.Direction())
	}
}

func TestJumpTo_RecordsDirection(t *testing.T) {
	store := newStore(10, true)
	nav := NewNavigator(store)

	if err := nav.JumpTo(14); err != nil {
		t.Fatalf("JumpTo(14): %v", err)
	}
	if nav.Direction() != Right || store.Read().CurrentImageIndex != 14 {
		t.Fatalf("after JumpTo(14): direction=%s cursor=%d", nav.Direction(), store.Read().CurrentImageIndex)
	}
	if err := nav.JumpTo(3); err != nil {
		t.Fatalf("JumpTo(3): %v", err)
	}
	if nav.Direction() != Left {
		t.Fatalf("Direction() = %s, want left", nav.Direction())
	}

	before := store.Mutations()
	if err := nav.JumpTo(3); err != nil {
		t.Fatalf("JumpTo(3) again: %v", err)
	}
	if store.Mutations() != before {
		t.Fatal("JumpTo to the current id mutated the store")
	}
}

func TestJumpTo_RejectsInvalidIDs(t *testing.T) {
	store := newStore(5, true)
	nav := NewNavigator(store)
	for _, id := range []int64{-1, imagedata.MaxSafeInteger + 1} {
		if err := nav.JumpTo(id); !errors.Is(err, imagedata.ErrInvalidIndex) {
			t.Fatalf("JumpTo(%d) error = %v, want ErrInvalidIndex", id, err)
		}
		if err := nav.Open(id); !errors.Is(err, imagedata.ErrInvalidIndex) {
			t.Fatalf("Open(%d) error = %v, want ErrInvalidIndex", id, err)
		}
	}
	if got := store.Read().CurrentImageIndex; got != 5 {
		t.Fatalf("cursor = %d, want 5", got)
	}
}

func TestOpenClose(t *testing.T) {
	store := newStore(-1, false)
	nav := NewNavigator(store)

	if err := nav.Open(42); err != nil {
		t.Fatalf("Open(42): %v", err)
	}
	want := state.AppState{CurrentImageIndex: 42, LastImageIndex: -1, IsViewerOpen: true}
	if got := store.Read(); got != want {
		t.Fatalf("after Open: %+v, want %+v", got, want)
	}
	nav.Close()
	want.IsViewerOpen = false
	if got := store.Read(); got != want {
		t.Fatalf("after Close: %+v, want %+v", got, want)
	}
}

func TestClassifySwipe(t *testing.T) {
	cases := []struct {
		name     string
		offset   float64
		velocity float64
		id       int64
		want     Swipe
	}{
		{"fast left", -200, -600, 5, SwipeNext},
		{"fast right", 200, 600, 5, SwipePrevious},
		{"fast right at zero", 200, 600, 0, SwipeNone},
		{"slow drag", -10, -50, 5, SwipeNone},
		{"exactly threshold", -10, -100, 5, SwipeNone},
		{"offset sign ignored", 200, -600, 5, SwipeNext},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifySwipe(tc.offset, tc.velocity, tc.id); got != tc.want {
				t.Fatalf("ClassifySwipe(%v, %v, %d) = %s, want %s (power %v)",
					tc.offset, tc.velocity, tc.id, got, tc.want, SwipePower(tc.offset, tc.velocity))
			}
		})
	}
}

func TestGesture_Release(t *testing.T) {
	g := Gesture{CellWidthPx: 8}
	if _, _, ok := g.Release(10, time.Now()); ok {
		t.Fatal("Release without Press returned ok")
	}

	start := time.Unix(100, 0)
	g.Press(40, start)
	offset, velocity, ok := g.Release(30, start.Add(100*time.Millisecond))
	if !ok {
		t.Fatal("Release after Press returned !ok")
	}
	if offset != -80 {
		t.Fatalf("offset = %v, want -80", offset)
	}
	if velocity != -800 {
		t.Fatalf("velocity = %v, want -800", velocity)
	}
	if ClassifySwipe(offset, velocity, 3) != SwipeNext {
		t.Fatal("quick left drag did not classify as next")
	}
	if g.Active() {
		t.Fatal("Active() = true after Release")
	}
}

func TestThumbnails(t *testing.T) {
	thumbs := Thumbnails(2, 3)
	if len(thumbs) != 7 {
		t.Fatalf("len = %d, want 7", len(thumbs))
	}
	if thumbs[0].ID != -1 || thumbs[0].Valid {
		t.Fatalf("thumbs[0] = %+v, want invalid -1", thumbs[0])
	}
	if !thumbs[3].Current || thumbs[3].ID != 2 {
		t.Fatalf("thumbs[3] = %+v, want current id 2", thumbs[3])
	}
	for i, th := range thumbs {
		if th.Current != (i == 3) {
			t.Fatalf("thumbs[%d].Current = %v", i, th.Current)
		}
	}

	top := Thumbnails(imagedata.MaxSafeInteger, 1)
	if !top[1].Valid || top[2].Valid {
		t.Fatalf("thumbnails at MaxSafeInteger = %+v", top)
	}
}

func TestFitRect(t *testing.T) {
	cases := []struct {
		w, h         int
		aspect, cell float64
		wantW, wantH int
	}{
		// Tall image in a wide container fills the height.
		{100, 20, 0.8, 2, 32, 20},
		// Wide image in a narrow container fills the width.
		{40, 30, 2.5, 2, 40, 8},
		{0, 10, 1, 2, 0, 0},
	}
	for _, tc := range cases {
		gotW, gotH := FitRect(tc.w, tc.h, tc.aspect, tc.cell)
		if gotW != tc.wantW || gotH != tc.wantH {
			t.Fatalf("FitRect(%d, %d, %v, %v) = %dx%d, want %dx%d",
				tc.w, tc.h, tc.aspect, tc.cell, gotW, gotH, tc.wantW, tc.wantH)
		}
	}
}
