package viewer

import (
	"math"

	"github.com/five82/mosaic/internal/imagedata"
)

// DefaultNeighbors is how many thumbnails are shown on each side of the
// current one.
const DefaultNeighbors = 15

// Thumb is one slot of the thumbnail strip.
type Thumb struct {
	ID      int64
	Valid   bool
	Current bool
}

// Thumbnails returns the strip cursor-n .. cursor+n. Ids outside the
// addressable range are kept as invalid placeholders so the strip stays
// centred.
func Thumbnails(cursor int64, n int) []Thumb {
	n = max(n, 0)
	thumbs := make([]Thumb, 0, 2*n+1)
	for off := -n; off <= n; off++ {
		id := cursor + int64(off)
		thumbs = append(thumbs, Thumb{
			ID:      id,
			Valid:   imagedata.Valid(id),
			Current: off == 0,
		})
	}
	return thumbs
}

// FitRect sizes an image of the given aspect ratio (width/height in pixels)
// to fit inside a container of w by h cells. cellAspect is the height of a
// cell divided by its width.
func FitRect(w, h int, aspect, cellAspect float64) (int, int) {
	if w <= 0 || h <= 0 || aspect <= 0 {
		return 0, 0
	}
	if cellAspect <= 0 {
		cellAspect = 1
	}
	containerAspect := float64(w) / (float64(h) * cellAspect)
	if aspect <= containerAspect {
		return int(math.Floor(float64(h) * cellAspect * aspect)), h
	}
	return w, int(math.Floor(float64(w) / aspect / cellAspect))
}
