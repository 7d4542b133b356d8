package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mosaic/internal/delivery"
	"github.com/five82/mosaic/internal/imagedata"
	"github.com/five82/mosaic/internal/logger"
	"github.com/five82/mosaic/internal/state"
	"github.com/five82/mosaic/internal/viewer"
)

// rect is a screen rectangle, x1/y1 exclusive.
type rect struct{ x0, y0, x1, y1 int }

func (r rect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// viewerView is the full-screen photo viewer. It renders whatever the store
// cursor points at and turns input into Navigator calls.
type viewerView struct {
	store     *state.Store
	gen       *imagedata.Generator
	tracker   *delivery.Tracker
	nav       *viewer.Navigator
	neighbors int

	chrome  bool
	info    bool
	gesture viewer.Gesture
	now     func() time.Time

	width, height int

	// Hit areas of the last render.
	imageArea rect
	closeBox  rect
	prevBox   rect
	nextBox   rect
	thumbs    []hitBox
	imageSize delivery.Size
}

func newViewerView(store *state.Store, gen *imagedata.Generator, tracker *delivery.Tracker, neighbors int, chrome bool) *viewerView {
	return &viewerView{
		store:     store,
		gen:       gen,
		tracker:   tracker,
		nav:       viewer.NewNavigator(store),
		neighbors: neighbors,
		chrome:    chrome,
		gesture:   viewer.Gesture{CellWidthPx: viewer.DefaultCellWidthPx},
		now:       time.Now,
	}
}

func (v *viewerView) resize(width, height int) {
	v.width, v.height = width, height
}

// open shows the viewer on id.
func (v *viewerView) open(id int64) {
	if err := v.nav.Open(id); err != nil {
		logger.Component("viewer").Warn("open rejected", "id", id, "error", err)
		return
	}
	logger.Component("viewer").Debug("viewer opened", "id", id)
}

func (v *viewerView) close() {
	v.gesture.Cancel()
	v.nav.Close()
	logger.Component("viewer").Debug("viewer closed", "id", v.store.Read().CurrentImageIndex)
}

func (v *viewerView) jump(id int64) {
	if !imagedata.Valid(id) {
		return
	}
	if err := v.nav.JumpTo(id); err != nil {
		logger.Component("viewer").Warn("jump rejected", "id", id, "error", err)
	}
}

// visibleNeighbors is the thumbnail count per side that fits the width.
func (v *viewerView) visibleNeighbors() int {
	fit := (v.width/thumbWidth - 1) / 2
	return max(min(v.neighbors, fit), 0)
}

// handleKey applies a viewer key. It reports whether the chrome visibility
// changed.
func (v *viewerView) handleKey(msg tea.KeyMsg, keys keyMap) bool {
	cursor := v.store.Read().CurrentImageIndex
	switch {
	case key.Matches(msg, keys.CloseViewer):
		v.close()
	case key.Matches(msg, keys.Previous):
		v.nav.Previous()
	case key.Matches(msg, keys.Next):
		v.nav.Next()
	case key.Matches(msg, keys.ToggleChrome):
		v.chrome = !v.chrome
		return true
	case key.Matches(msg, keys.ToggleInfo):
		v.info = !v.info
	case key.Matches(msg, keys.FirstNeighbor):
		v.jump(max(cursor-int64(v.visibleNeighbors()), 0))
	case key.Matches(msg, keys.LastNeighbor):
		v.jump(min(cursor+int64(v.visibleNeighbors()), imagedata.MaxSafeInteger))
	}
	return false
}

// handleMouse turns clicks on the chrome into navigation and a drag across
// the picture into a swipe.
func (v *viewerView) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y
	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		v.nav.Next()
		return
	case msg.Button == tea.MouseButtonWheelUp:
		v.nav.Previous()
		return
	case msg.Action == tea.MouseActionRelease:
		offset, velocity, ok := v.gesture.Release(x, v.now())
		if !ok {
			return
		}
		cursor := v.store.Read().CurrentImageIndex
		swipe := viewer.ClassifySwipe(offset, velocity, cursor)
		logger.Component("viewer").Debug("swipe",
			"offset", offset,
			"velocity", velocity,
			"power", viewer.SwipePower(offset, velocity),
			"result", swipe.String(),
		)
		switch swipe {
		case viewer.SwipeNext:
			v.nav.Next()
		case viewer.SwipePrevious:
			v.nav.Previous()
		}
		return
	case msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress:
		return
	}

	cursor := v.store.Read().CurrentImageIndex
	if v.chrome {
		if v.closeBox.contains(x, y) {
			v.close()
			return
		}
		for _, t := range v.thumbs {
			if t.contains(x, y) {
				v.jump(t.id)
				return
			}
		}
	}
	switch {
	case v.prevBox.contains(x, y) && cursor > 0:
		v.nav.Previous()
	case v.nextBox.contains(x, y):
		v.nav.Next()
	case v.imageArea.contains(x, y):
		v.gesture.Press(x, v.now())
	}
}

// view renders the viewer for the current store cursor.
func (v *viewerView) view(theme Theme) string {
	s := v.store.Read()
	if !s.IsViewerOpen || v.width <= 0 || v.height <= 0 {
		return ""
	}
	item, err := v.gen.Generate(s.CurrentImageIndex)
	if err != nil {
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, err.Error())
	}

	var sections []string
	top := 0
	areaH := v.areaHeight()
	if v.chrome {
		sections = append(sections, v.renderHeader(item, theme))
		top = 1
	}
	sections = append(sections, v.renderStage(item, theme, top, areaH))
	v.thumbs = nil
	if v.chrome {
		sections = append(sections, v.renderThumbnails(s.CurrentImageIndex, theme, top+areaH))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *viewerView) renderHeader(item imagedata.Item, theme Theme) string {
	styles := theme.Styles()
	bg := NewBgStyle(theme.Surface)

	closeHint := bg.Render("✕ esc", styles.DangerText)
	v.closeBox = rect{x0: 0, y0: 0, x1: 1 + lipgloss.Width(closeHint), y1: 1}

	status := v.picture(item.ID).Status.String()
	title := bg.Join([]string{
		bg.Render(v.nav.Direction().Arrow(), styles.AccentText),
		bg.Render(fmt.Sprintf("#%d", item.ID), styles.Text.Bold(true)),
		bg.Render(fmt.Sprintf("%.3f", item.AspectRatio), styles.MutedText),
		styles.StatusStyle(status).Render(status),
	}, " ")
	hint := bg.Render("↑/↓ chrome  i details", styles.FaintText)

	left := bg.Space() + closeHint + bg.Spaces(2) + title
	gap := v.width - lipgloss.Width(left) - lipgloss.Width(hint) - 1
	if gap < 1 {
		return bg.FillLine(truncate(left, v.width), v.width)
	}
	return bg.FillLine(left+bg.Spaces(gap)+hint, v.width)
}

// renderStage draws the chevrons and the contain-fitted picture.
func (v *viewerView) renderStage(item imagedata.Item, theme Theme, top, areaH int) string {
	styles := theme.Styles()
	innerW := max(v.width-2*chevronWidth, 1)
	v.imageArea = rect{x0: chevronWidth, y0: top, x1: chevronWidth + innerW, y1: top + areaH}
	v.prevBox = rect{x0: 0, y0: top, x1: chevronWidth, y1: top + areaH}
	v.nextBox = rect{x0: chevronWidth + innerW, y0: top, x1: v.width, y1: top + areaH}

	imgH, w, h := v.fit(item, innerW, areaH)

	picture := v.renderPicture(item, w, h)
	stage := lipgloss.Place(innerW, imgH, lipgloss.Center, lipgloss.Center, picture)
	if v.info {
		stage = lipgloss.JoinVertical(lipgloss.Left, stage, v.renderInfo(item, innerW, w, theme))
	}

	chevron := func(glyph string, show bool) string {
		if !show {
			glyph = " "
		}
		return lipgloss.Place(chevronWidth, areaH, lipgloss.Center, lipgloss.Center,
			styles.Chevron.Render(glyph))
	}
	cursor := item.ID
	return lipgloss.JoinHorizontal(lipgloss.Top,
		chevron("‹", cursor > 0),
		stage,
		chevron("›", cursor < imagedata.MaxSafeInteger),
	)
}

// fit returns the height left for the picture and its contain-fitted size.
func (v *viewerView) fit(item imagedata.Item, innerW, areaH int) (imgH, w, h int) {
	infoRows := 0
	if v.info {
		infoRows = 2
	}
	imgH = max(areaH-infoRows, 1)
	w, h = viewer.FitRect(innerW, imgH, item.AspectRatio, CellAspect)
	return imgH, max(w, 1), max(h, 1)
}

// areaHeight is the height of the stage between the chrome rows.
func (v *viewerView) areaHeight() int {
	if v.chrome {
		return max(v.height-1-thumbStripRows, 1)
	}
	return max(v.height, 1)
}

// sync hands the current picture and its fitted size to the tracker.
func (v *viewerView) sync() {
	s := v.store.Read()
	if v.tracker == nil || !s.IsViewerOpen || v.width <= 0 {
		return
	}
	item, ok := v.gen.Lookup(s.CurrentImageIndex)
	if !ok {
		return
	}
	_, w, h := v.fit(item, max(v.width-2*chevronWidth, 1), v.areaHeight())
	v.imageSize = delivery.Size{Cols: w, Rows: h}
	v.tracker.Update([]int64{item.ID}, v.imageSize)
}

func (v *viewerView) picture(id int64) delivery.Picture {
	if v.tracker == nil {
		return delivery.Picture{ID: id, Status: delivery.Preload}
	}
	return v.tracker.Picture(id)
}

func (v *viewerView) renderPicture(item imagedata.Item, w, h int) string {
	pic := v.picture(item.ID)
	if pic.Status == delivery.Loaded && pic.Art != "" {
		return strings.Join(fitLines(pic.Art, w, h), "\n")
	}
	fill := lipgloss.NewStyle().Background(lipgloss.Color(item.Tint())).Render(strings.Repeat(" ", w))
	lines := make([]string, h)
	for i := range lines {
		lines[i] = fill
	}
	return strings.Join(lines, "\n")
}

// renderInfo shows the source the delivery layer would pick for the fitted
// width and the preview URL.
func (v *viewerView) renderInfo(item imagedata.Item, innerW, cols int, theme Theme) string {
	styles := theme.Styles()
	src := item.SourceFor(cols * viewer.DefaultCellWidthPx)
	lines := []string{
		styles.MutedText.Render(truncate(fmt.Sprintf("source %dw  %s", src.Width, src.URL), innerW)),
		styles.FaintText.Render(truncate(fmt.Sprintf("preview %s  (%d sources)", item.PreviewURL, len(item.SourceSet)), innerW)),
	}
	return lipgloss.NewStyle().Width(innerW).Render(strings.Join(lines, "\n"))
}

// renderThumbnails draws the neighbour strip starting at screen row y.
func (v *viewerView) renderThumbnails(cursor int64, theme Theme, y int) string {
	n := v.visibleNeighbors()
	thumbs := viewer.Thumbnails(cursor, n)
	total := len(thumbs) * thumbWidth
	offset := max((v.width-total)/2, 0)

	rows := make([]strings.Builder, thumbStripRows)
	for i := range rows {
		rows[i].WriteString(strings.Repeat(" ", offset))
	}
	accent := theme.Styles().ThumbMarker
	cellW := thumbWidth - 1
	for i, t := range thumbs {
		blank := strings.Repeat(" ", thumbWidth)
		if !t.Valid {
			for r := range rows {
				rows[r].WriteString(blank)
			}
			continue
		}
		item, ok := v.gen.Lookup(t.ID)
		if !ok {
			for r := range rows {
				rows[r].WriteString(blank)
			}
			continue
		}
		fill := lipgloss.NewStyle().Background(lipgloss.Color(item.Tint())).Render(strings.Repeat(" ", cellW))
		marker := strings.Repeat(" ", cellW)
		if t.Current {
			marker = accent.Render(strings.Repeat("▔", cellW))
		}
		rows[0].WriteString(fill + " ")
		rows[1].WriteString(fill + " ")
		rows[2].WriteString(marker + " ")

		x0 := offset + i*thumbWidth
		v.thumbs = append(v.thumbs, hitBox{x0: x0, x1: x0 + cellW, y0: y, y1: y + 2, id: t.ID})
	}

	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = padRight(rows[i].String(), v.width)
	}
	return strings.Join(lines, "\n")
}
