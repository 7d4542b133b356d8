// Package imagedata synthesizes gallery items from an integer index.
//
// Generate is a pure function of (seed, id): every call site that asks for
// item N gets the same aspect ratio and the same URLs. Nothing is fetched;
// URLs are formatted strings handed to the image delivery collaborator.
package imagedata

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/five82/mosaic/internal/seedrandom"
)

// MaxSafeInteger is the largest id the gallery addresses (2^53 - 1).
const MaxSafeInteger int64 = 1<<53 - 1

const (
	minAspectRatio = 0.8
	maxAspectRatio = 2.5

	// PlaceholderWidth is the width of the blurred preview image.
	PlaceholderWidth = 4

	urlBase = "https://picsum.photos/seed/random-"
)

// Widths lists the candidate source widths, widest first.
var Widths = []int{3840, 2560, 2048, 1920, 1536, 1280, 1024, 768, 512}

// ErrInvalidIndex reports an id outside [0, MaxSafeInteger].
var ErrInvalidIndex = errors.New("image index out of range")

// Source is one entry of an item's source set.
type Source struct {
	URL   string
	Width int
}

// Item is the synthesized metadata for one gallery image.
type Item struct {
	ID          int64
	AspectRatio float64
	PreviewURL  string
	SourceSet   []Source // descending by Width

	draw float64
}

// Generator builds items for a fixed seed.
type Generator struct {
	seed string
}

// NewGenerator returns a Generator for seed.
func NewGenerator(seed string) *Generator {
	return &Generator{seed: seed}
}

// Seed returns the configured seed.
func (g *Generator) Seed() string {
	return g.seed
}

// Valid reports whether id is addressable.
func Valid(id int64) bool {
	return id >= 0 && id <= MaxSafeInteger
}

// Generate returns the item for id, or ErrInvalidIndex.
func (g *Generator) Generate(id int64) (Item, error) {
	if !Valid(id) {
		return Item{}, fmt.Errorf("generate %d: %w", id, ErrInvalidIndex)
	}

	r := seedrandom.New(g.seed + "-" + strconv.FormatInt(id, 10)).Float64()
	aspect := r*(maxAspectRatio-minAspectRatio) + minAspectRatio

	sources := make([]Source, 0, len(Widths))
	for _, w := range Widths {
		sources = append(sources, Source{URL: g.url(id, w, aspect), Width: w})
	}
	return Item{
		ID:          id,
		AspectRatio: aspect,
		PreviewURL:  g.url(id, PlaceholderWidth, aspect),
		SourceSet:   sources,
		draw:        r,
	}, nil
}

// Lookup is Generate without the error, for call sites that only render.
func (g *Generator) Lookup(id int64) (Item, bool) {
	item, err := g.Generate(id)
	return item, err == nil
}

func (g *Generator) url(id int64, width int, aspect float64) string {
	return urlBase + g.seed + "-" + strconv.FormatInt(id, 10) + "/" +
		strconv.Itoa(width) + "/" + strconv.Itoa(Height(width, aspect)) + ".webp"
}

// Height is floor(width / aspect).
func Height(width int, aspect float64) int {
	return int(math.Floor(float64(width) / aspect))
}

// SrcSet renders the source set in HTML srcset syntax.
func (it Item) SrcSet() string {
	parts := make([]string, len(it.SourceSet))
	for i, s := range it.SourceSet {
		parts[i] = s.URL + " " + strconv.Itoa(s.Width) + "w"
	}
	return strings.Join(parts, ", ")
}

// SourceFor picks the narrowest source at least px wide, falling back to
// the widest source.
func (it Item) SourceFor(px int) Source {
	if len(it.SourceSet) == 0 {
		return Source{}
	}
	best := it.SourceSet[0]
	for _, s := range it.SourceSet {
		if s.Width >= px && s.Width < best.Width {
			best = s
		}
	}
	return best
}

// Tint returns a stable display colour for the item as a hex string.
func (it Item) Tint() string {
	return colorful.Hsv(it.draw*360, 0.45, 0.62).Hex()
}
