// Package route converts between gallery paths and store state.
//
// Paths mirror the web gallery: "/" is the grid and "/p/<id>" opens the
// viewer on item id.
package route

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/mosaic/internal/imagedata"
	"github.com/five82/mosaic/internal/state"
)

// ErrNotFound is returned for paths that name no gallery location.
var ErrNotFound = errors.New("route not found")

const photoPrefix = "/p/"

// Parse turns path into a store bootstrap. Ids above the addressable range
// are clamped to imagedata.MaxSafeInteger.
func Parse(path string) (state.Bootstrap, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return state.Bootstrap{}, nil
	}
	raw, ok := strings.CutPrefix(path, photoPrefix)
	if !ok {
		return state.Bootstrap{}, fmt.Errorf("parse %q: %w", path, ErrNotFound)
	}
	raw = strings.TrimSuffix(raw, "/")
	if raw == "" || strings.Trim(raw, "0123456789") != "" {
		return state.Bootstrap{}, fmt.Errorf("parse %q: %w", path, ErrNotFound)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id > imagedata.MaxSafeInteger {
		// raw is all digits, so a parse error can only be overflow.
		id = imagedata.MaxSafeInteger
	}
	open := true
	return state.Bootstrap{CurrentImageIndex: &id, IsViewerOpen: &open}, nil
}

// Path returns the route for s.
func Path(s state.AppState) string {
	if s.IsViewerOpen && s.CurrentImageIndex >= 0 {
		return photoPrefix + strconv.FormatInt(s.CurrentImageIndex, 10)
	}
	return "/"
}
