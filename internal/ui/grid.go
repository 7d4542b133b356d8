package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mosaic/internal/config"
	"github.com/five82/mosaic/internal/delivery"
	"github.com/five82/mosaic/internal/imagedata"
	"github.com/five82/mosaic/internal/layout"
	"github.com/five82/mosaic/internal/logger"
	"github.com/five82/mosaic/internal/state"
	"github.com/five82/mosaic/internal/virtual"
)

// maxLayoutPasses bounds the measure/relayout loop of one frame.
const maxLayoutPasses = 4

// hitBox maps a screen rectangle of the content area to an item id.
type hitBox struct {
	x0, x1, y0, y1 int
	id             int64
}

func (h hitBox) contains(x, y int) bool {
	return x >= h.x0 && x < h.x1 && y >= h.y0 && y < h.y1
}

// gridView is the virtualised thumbnail grid.
type gridView struct {
	store   *state.Store
	gen     *imagedata.Generator
	tracker *delivery.Tracker
	cfg     config.Config

	virt *virtual.Virtualizer
	end  *virtual.EndObserver
	sub  *state.Subscription

	width, height int
	class         layout.Class
	perRow        int // 0 while the layout is unresolved
	count         int
	estimate      float64

	focus      int64
	anchor     int   // row pinned to the top of the viewport, -1 for none
	pending    int64 // cursor waiting for the layout to resolve, -1 for none
	lastOpen   bool
	lastCursor int64
	realigned  int // last row realigned to, -1 before the first realignment

	lines []string
	hits  []hitBox
}

func newGridView(store *state.Store, gen *imagedata.Generator, tracker *delivery.Tracker, cfg config.Config) *gridView {
	s := store.Read()
	g := &gridView{
		store:      store,
		gen:        gen,
		tracker:    tracker,
		cfg:        cfg,
		estimate:   cfg.EstimatedRowHeight,
		focus:      max(s.CurrentImageIndex, 0),
		anchor:     -1,
		pending:    -1,
		lastOpen:   s.IsViewerOpen,
		lastCursor: s.CurrentImageIndex,
		realigned:  -1,
	}
	g.newVirtualizer()
	g.syncCount(s)
	g.sub = store.Subscribe(g.onState)
	return g
}

func (g *gridView) newVirtualizer() {
	if g.end != nil {
		g.end.Disconnect()
	}
	g.virt = virtual.New(virtual.Options{
		EstimateSize:  func() float64 { return g.estimate },
		PaddingStart:  g.cfg.PaddingTop,
		PaddingEnd:    g.cfg.PaddingBottom,
		Overscan:      g.cfg.Overscan,
		MaxSafeOffset: g.cfg.MaxSafeOffset,
		ScrollTo: func(offset float64) {
			logger.Component("grid").Debug("scroll to", "offset", offset)
		},
	})
	g.virt.SetViewport(0, float64(g.height))
	g.end = g.virt.ObserveEnd(g.onEndReached)
}

// close detaches the grid from the store and the virtualizer.
func (g *gridView) close() {
	g.sub.Unsubscribe()
	g.end.Disconnect()
}

// resize reclassifies the terminal width and rebuilds the row model when the
// tile width changes.
func (g *gridView) resize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	widthChanged := width != g.width
	g.width, g.height = width, height

	if !widthChanged {
		g.virt.SetViewport(g.virt.ScrollOffset(), float64(height))
		return
	}

	top := g.topItem()
	g.class = g.cfg.Breakpoints.Classify(width)
	perRow, err := layout.PerRow(g.class)
	if err != nil {
		perRow = 0
	}
	g.perRow = perRow
	g.newVirtualizer()
	g.syncCount(g.store.Read())
	if g.perRow == 0 {
		return
	}
	logger.Component("grid").Debug("layout resolved", "class", g.class.String(), "per_row", g.perRow, "width", width)

	if g.pending >= 0 {
		cursor := g.pending
		g.pending = -1
		g.realign(cursor)
		return
	}
	if top > 0 {
		g.pin(layout.RowOf(top, g.perRow))
	}
}

// topItem returns the first item of the first row at or below the scroll
// offset.
func (g *gridView) topItem() int64 {
	if g.perRow == 0 {
		return 0
	}
	scroll := g.virt.ScrollOffset()
	for _, r := range g.virt.VisibleWindow() {
		if g.virt.Start(r) >= scroll {
			return int64(r) * int64(g.perRow)
		}
	}
	return 0
}

// syncCount feeds the item count for s to the virtualizer.
func (g *gridView) syncCount(s state.AppState) {
	total := min(state.ImageCount(s, g.cfg.BatchSize), imagedata.MaxSafeInteger+1)
	g.count = int(total)
	if g.perRow == 0 {
		return
	}
	plan, err := layout.Compute(g.count, g.class)
	if err != nil {
		return
	}
	g.virt.SetCount(plan.Rows)
}

// onState runs for every published AppState.
func (g *gridView) onState(s state.AppState) {
	g.syncCount(s)

	closed := g.lastOpen && !s.IsViewerOpen
	moved := !s.IsViewerOpen && s.CurrentImageIndex != g.lastCursor
	g.lastOpen, g.lastCursor = s.IsViewerOpen, s.CurrentImageIndex

	if (closed || moved) && s.CurrentImageIndex >= 0 {
		g.focus = s.CurrentImageIndex
		g.realign(s.CurrentImageIndex)
	}
}

// realign scrolls to the row holding cursor.
func (g *gridView) realign(cursor int64) {
	if g.perRow == 0 {
		g.pending = cursor
		return
	}
	row := layout.RowOf(cursor, g.perRow)
	g.realigned = row
	g.pin(row)
}

// pin scrolls to row and keeps it at the top while rows above it are
// measured.
func (g *gridView) pin(row int) {
	if err := g.virt.ScrollToRow(row); err != nil {
		logger.Component("grid").Warn("scroll request dropped", "row", row, "error", err)
		g.anchor = -1
		return
	}
	g.anchor = row
}

// onEndReached extends the materialised range by the last row's items.
func (g *gridView) onEndReached(lastRow int) {
	if g.perRow == 0 {
		return
	}
	if g.store.Read().IsViewerOpen {
		return
	}
	_, end := layout.Plan{PerRow: g.perRow}.Items(lastRow, g.count)
	last := min(int64(end)-1, imagedata.MaxSafeInteger)
	if last < 0 {
		return
	}
	g.store.Mutate(func(s *state.AppState) {
		s.LastImageIndex = max(s.LastImageIndex, last)
	})
}

// tileWidth is the outer width of one tile.
func (g *gridView) tileWidth() int {
	if g.perRow == 0 {
		return 0
	}
	return max((g.width-(g.perRow-1)*tileGap)/g.perRow, tileBorder+1)
}

func imageRows(inner int, aspect float64) int {
	rows := int(math.Round(float64(inner) / aspect / CellAspect))
	return min(max(rows, tileMinImageRows), tileMaxImageRows)
}

// layout renders the visible rows, feeds their heights back to the
// virtualizer and composes the frame.
func (g *gridView) layout(theme Theme) {
	g.lines, g.hits = nil, nil
	if g.perRow == 0 || g.height <= 0 {
		return
	}

	tileW := g.tileWidth()
	rendered := make(map[int]string)
	renderedCount := g.count
	var window []int
	for pass := 0; pass < maxLayoutPasses; pass++ {
		if g.count != renderedCount {
			// The last row may have gained items.
			rendered = make(map[int]string)
			renderedCount = g.count
		}
		if g.anchor >= 0 && g.virt.ScrollToRow(g.anchor) != nil {
			g.anchor = -1
		}
		window = g.virt.VisibleWindow()
		changed := false
		for _, r := range window {
			block, ok := rendered[r]
			if !ok {
				block = g.renderRow(r, tileW, theme)
				rendered[r] = block
			}
			h := float64(lipgloss.Height(block))
			if !g.virt.IsMeasured(r) || g.virt.Size(r) != h {
				g.virt.Measure(r, h)
				g.estimate = h
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	top := int(math.Round(g.virt.ScrollOffset()))
	out := make([]string, g.height)
	var ids []int64
	for _, r := range window {
		block, ok := rendered[r]
		if !ok {
			continue
		}
		start := int(math.Round(g.virt.Start(r)))
		for i, line := range strings.Split(block, "\n") {
			y := start + i - top
			if y >= 0 && y < g.height {
				out[y] = line
			}
		}
		first, end := layout.Plan{PerRow: g.perRow}.Items(r, g.count)
		for id := first; id < end; id++ {
			col := id - first
			x0 := col * (tileW + tileGap)
			g.hits = append(g.hits, hitBox{
				x0: x0, x1: x0 + tileW,
				y0: start - top, y1: start - top + lipgloss.Height(block) - tileGap,
				id: int64(id),
			})
			ids = append(ids, int64(id))
		}
	}
	for i := range out {
		out[i] = padRight(out[i], g.width)
	}
	g.lines = out

	if g.tracker != nil {
		g.tracker.Update(ids, delivery.Size{Cols: tileW - tileBorder, Rows: tileMaxImageRows})
	}
}

// renderRow renders the tiles of row followed by the row gap.
func (g *gridView) renderRow(row, tileW int, theme Theme) string {
	first, end := layout.Plan{PerRow: g.perRow}.Items(row, g.count)
	var tiles []string
	gap := strings.Repeat(" ", tileGap)
	for id := first; id < end; id++ {
		if id > first {
			tiles = append(tiles, gap)
		}
		tiles = append(tiles, g.renderTile(int64(id), tileW, theme))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + strings.Repeat("\n", tileGap)
}

// renderTile draws one thumbnail: the picture or its tint, and a label with
// the id, aspect ratio and load status.
func (g *gridView) renderTile(id int64, tileW int, theme Theme) string {
	inner := tileW - tileBorder
	styles := theme.Styles()
	box, labelStyle := styles.Tile, styles.TileLabel
	if id == g.focus {
		box, labelStyle = styles.TileFocused, styles.TileLabelFocused
	}

	item, ok := g.gen.Lookup(id)
	if !ok {
		return box.Render(strings.Repeat(" ", inner))
	}
	pic := delivery.Picture{ID: id, Status: delivery.Preload}
	if g.tracker != nil {
		pic = g.tracker.Picture(id)
	}

	rows := imageRows(inner, item.AspectRatio)
	var body []string
	if pic.Status == delivery.Loaded && pic.Art != "" {
		body = fitLines(pic.Art, inner, rows)
	} else {
		fill := lipgloss.NewStyle().Background(lipgloss.Color(item.Tint())).Render(strings.Repeat(" ", inner))
		for range rows {
			body = append(body, fill)
		}
	}

	status := pic.Status.String()
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.StatusColor(status)))
	label := fmt.Sprintf("#%d %.2f", id, item.AspectRatio)
	labelWidth := max(inner-len(status)-1, 0)
	labelLine := labelStyle.Render(padRight(truncate(label, labelWidth), labelWidth))
	if inner > len(status) {
		labelLine += " " + statusStyle.Render(status)
	}
	body = append(body, labelLine)

	return box.Render(strings.Join(body, "\n"))
}

// view returns the composed grid frame.
func (g *gridView) view(theme Theme) string {
	if g.perRow == 0 {
		msg := theme.Styles().Placeholder.Render("measuring terminal…")
		return lipgloss.Place(g.width, g.height, lipgloss.Center, lipgloss.Center, msg)
	}
	return strings.Join(g.lines, "\n")
}

// scroll moves the viewport by delta lines and unpins it.
func (g *gridView) scroll(delta float64) {
	g.anchor = -1
	g.virt.ScrollBy(delta)
	g.focusIntoView()
}

// focusIntoView moves the focus to the first fully visible row when it has
// scrolled off screen.
func (g *gridView) focusIntoView() {
	if g.perRow == 0 {
		return
	}
	scroll := g.virt.ScrollOffset()
	bottom := scroll + float64(g.height)
	row := layout.RowOf(g.focus, g.perRow)
	if g.virt.Start(row) >= scroll && g.virt.Start(row)+g.virt.Size(row) <= bottom {
		return
	}
	for _, r := range g.virt.VisibleWindow() {
		if g.virt.Start(r) >= scroll {
			g.focus = int64(r)*int64(g.perRow) + g.focus%int64(g.perRow)
			g.focus = min(g.focus, int64(g.count-1))
			return
		}
	}
}

// moveFocus moves the focus by delta items and scrolls it into view.
func (g *gridView) moveFocus(delta int64) {
	if g.perRow == 0 || g.count == 0 {
		return
	}
	next := g.focus + delta
	if next < 0 || next >= int64(g.count) {
		return
	}
	g.focus = next
	g.anchor = -1

	row := layout.RowOf(g.focus, g.perRow)
	start := g.virt.Start(row)
	end := start + g.virt.Size(row)
	scroll := g.virt.ScrollOffset()
	switch {
	case start < scroll:
		if err := g.virt.ScrollToRow(row); err != nil {
			logger.Component("grid").Warn("scroll request dropped", "row", row, "error", err)
		}
	case end > scroll+float64(g.height):
		g.virt.ScrollBy(end - scroll - float64(g.height))
	}
}

// handleKey applies a grid key. It returns the id to open, or -1.
func (g *gridView) handleKey(msg tea.KeyMsg, keys keyMap) int64 {
	page := float64(g.height)
	switch {
	case key.Matches(msg, keys.Up):
		g.moveFocus(-int64(g.perRow))
	case key.Matches(msg, keys.Down):
		g.moveFocus(int64(g.perRow))
	case key.Matches(msg, keys.Left):
		g.moveFocus(-1)
	case key.Matches(msg, keys.Right):
		g.moveFocus(1)
	case key.Matches(msg, keys.PageDown):
		g.scroll(page)
	case key.Matches(msg, keys.PageUp):
		g.scroll(-page)
	case key.Matches(msg, keys.HalfPageDown):
		g.scroll(page / 2)
	case key.Matches(msg, keys.HalfPageUp):
		g.scroll(-page / 2)
	case key.Matches(msg, keys.Top):
		g.scroll(-g.virt.TotalExtent())
		g.focus = 0
	case key.Matches(msg, keys.Bottom):
		g.scroll(g.virt.TotalExtent())
	case key.Matches(msg, keys.Open):
		if g.perRow > 0 && g.focus < int64(g.count) {
			return g.focus
		}
	}
	return -1
}

// handleMouse applies a mouse event at content-relative coordinates. It
// returns the id of a clicked tile, or -1.
func (g *gridView) handleMouse(msg tea.MouseMsg, x, y int) int64 {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		g.scroll(-WheelStep)
	case tea.MouseButtonWheelDown:
		g.scroll(WheelStep)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return -1
		}
		for _, h := range g.hits {
			if h.contains(x, y) {
				g.focus = h.id
				return h.id
			}
		}
	}
	return -1
}
