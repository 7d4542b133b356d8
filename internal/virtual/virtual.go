package virtual

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrAddressableRangeExceeded is returned by ScrollToRow for rows past the
// offset cap. The scroll request is dropped.
var ErrAddressableRangeExceeded = errors.New("row beyond addressable range")

// DefaultMaxSafeOffset is the largest cumulative offset rows may reach.
const DefaultMaxSafeOffset = 16777200

// Options configures a Virtualizer.
type Options struct {
	Count         int
	EstimateSize  func() float64
	PaddingStart  float64
	PaddingEnd    float64
	Overscan      float64
	MaxSafeOffset float64 // <= 0 disables the cap

	// ScrollTo is asked to move the host viewport to offset.
	ScrollTo func(offset float64)
	// OnEndReached is registered as an end observer when set.
	OnEndReached func(lastRow int)
}

// Row is one virtualised row.
type Row struct {
	Index    int
	Start    float64
	Size     float64
	Measured bool
}

// End is the offset just past the row.
func (r Row) End() float64 { return r.Start + r.Size }

// Virtualizer tracks row offsets and the rows intersecting the viewport.
// It is not safe for concurrent use; the grid owns one instance.
type Virtualizer struct {
	opts Options

	count    int
	measured map[int]float64
	estimate float64

	// starts[i] is the offset of row i, starts[n] the end of the last row.
	// Only starts[:valid] is current.
	starts []float64
	valid  int

	scroll float64
	height float64

	observers []*EndObserver
	notifying bool
	recheck   bool
}

// New returns a Virtualizer for opts.
func New(opts Options) *Virtualizer {
	v := &Virtualizer{
		opts:     opts,
		count:    max(opts.Count, 0),
		measured: make(map[int]float64),
	}
	v.estimate = v.currentEstimate()
	if opts.OnEndReached != nil {
		v.ObserveEnd(opts.OnEndReached)
	}
	return v
}

func (v *Virtualizer) currentEstimate() float64 {
	if v.opts.EstimateSize == nil {
		return 1
	}
	est := v.opts.EstimateSize()
	if est <= 0 || math.IsNaN(est) || math.IsInf(est, 0) {
		return 1
	}
	return est
}

// AddressableRows is floor(MaxSafeOffset / estimate), the most rows the
// virtualizer will expose.
func (v *Virtualizer) AddressableRows() int {
	if v.opts.MaxSafeOffset <= 0 {
		return math.MaxInt
	}
	return int(math.Floor(v.opts.MaxSafeOffset / v.currentEstimate()))
}

// Count is the requested row count capped to AddressableRows.
func (v *Virtualizer) Count() int {
	return min(v.count, v.AddressableRows())
}

// SetCount changes the requested row count.
func (v *Virtualizer) SetCount(n int) {
	n = max(n, 0)
	if n == v.count {
		return
	}
	old := v.count
	v.count = n
	for i := range v.measured {
		if i >= n {
			delete(v.measured, i)
		}
	}
	v.invalidate(min(old, n) + 1)
	v.checkEnd()
}

// SetViewport records the host scroll offset and visible height.
func (v *Virtualizer) SetViewport(scrollOffset, height float64) {
	v.scroll = max(scrollOffset, 0)
	v.height = max(height, 0)
	v.checkEnd()
}

// ScrollOffset returns the last recorded scroll offset.
func (v *Virtualizer) ScrollOffset() float64 { return v.scroll }

// ViewportHeight returns the last recorded viewport height.
func (v *Virtualizer) ViewportHeight() float64 { return v.height }

// Measure records the laid-out height of row index.
func (v *Virtualizer) Measure(index int, height float64) {
	if index < 0 || index >= v.Count() || height <= 0 {
		return
	}
	if prev, ok := v.measured[index]; ok && prev == height {
		return
	}
	v.measured[index] = height
	v.invalidate(index + 1)
	v.checkEnd()
}

// IsMeasured reports whether row index has a measured height.
func (v *Virtualizer) IsMeasured(index int) bool {
	_, ok := v.measured[index]
	return ok
}

func (v *Virtualizer) invalidate(from int) {
	v.valid = min(v.valid, from)
}

// refresh brings starts up to date for the current count and estimate,
// recomputing only from the lowest invalidated entry.
func (v *Virtualizer) refresh() int {
	if est := v.currentEstimate(); est != v.estimate {
		v.estimate = est
		for i := 0; i < v.valid-1; i++ {
			if _, ok := v.measured[i]; !ok {
				v.invalidate(i + 1)
				break
			}
		}
	}

	n := v.Count()
	if cap(v.starts) < n+1 {
		grown := make([]float64, n+1, max(2*cap(v.starts), n+1))
		copy(grown, v.starts[:v.valid])
		v.starts = grown
	} else {
		v.starts = v.starts[:n+1]
	}
	v.valid = min(v.valid, n+1)

	if v.valid == 0 {
		v.starts[0] = v.opts.PaddingStart
		v.valid = 1
	}
	for i := v.valid; i <= n; i++ {
		v.starts[i] = v.starts[i-1] + v.Size(i-1)
	}
	v.valid = n + 1
	return n
}

// Size returns the measured height of row index, or the estimate.
func (v *Virtualizer) Size(index int) float64 {
	if h, ok := v.measured[index]; ok {
		return h
	}
	return v.estimate
}

// Start returns the offset of row index. Rows past Count are extrapolated
// with the estimate.
func (v *Virtualizer) Start(index int) float64 {
	n := v.refresh()
	if index <= 0 {
		return v.starts[0]
	}
	if index <= n {
		return v.starts[index]
	}
	return v.starts[n] + float64(index-n)*v.estimate
}

// Row returns the row descriptor for index.
func (v *Virtualizer) Row(index int) Row {
	start := v.Start(index)
	size, measured := v.measured[index]
	if !measured {
		size = v.estimate
	}
	return Row{Index: index, Start: start, Size: size, Measured: measured}
}

// TotalExtent is the padded height of all rows.
func (v *Virtualizer) TotalExtent() float64 {
	n := v.refresh()
	return v.starts[n] + v.opts.PaddingEnd
}

// VisibleWindow returns, in order, the rows intersecting
// [scroll-overscan, scroll+height+overscan].
func (v *Virtualizer) VisibleWindow() []int {
	n := v.refresh()
	if n == 0 || v.height <= 0 {
		return nil
	}
	lo := v.scroll - v.opts.Overscan
	hi := v.scroll + v.height + v.opts.Overscan

	first := sort.Search(n, func(i int) bool { return v.starts[i+1] > lo })
	var rows []int
	for i := first; i < n && v.starts[i] <= hi; i++ {
		rows = append(rows, i)
	}
	return rows
}

// VirtualRows returns the visible window as Row values.
func (v *Virtualizer) VirtualRows() []Row {
	window := v.VisibleWindow()
	rows := make([]Row, 0, len(window))
	for _, i := range window {
		rows = append(rows, v.Row(i))
	}
	return rows
}

// ScrollToRow moves the viewport to the start of row index. Negative rows
// clamp to 0; rows past AddressableRows are rejected without scrolling.
func (v *Virtualizer) ScrollToRow(index int) error {
	if index >= v.AddressableRows() {
		return fmt.Errorf("scroll to row %d (limit %d): %w", index, v.AddressableRows(), ErrAddressableRangeExceeded)
	}
	index = max(index, 0)
	offset := v.Start(index)
	if v.height > 0 {
		offset = min(offset, max(v.TotalExtent()-v.height, 0))
	}
	v.scroll = offset
	if v.opts.ScrollTo != nil {
		v.opts.ScrollTo(offset)
	}
	v.checkEnd()
	return nil
}

// ScrollBy moves the viewport by delta, clamped to the scrollable range.
func (v *Virtualizer) ScrollBy(delta float64) {
	limit := max(v.TotalExtent()-v.height, 0)
	v.SetViewport(min(max(v.scroll+delta, 0), limit), v.height)
}
