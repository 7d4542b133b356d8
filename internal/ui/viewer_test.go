package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mosaic/internal/imagedata"
	"github.com/five82/mosaic/internal/prefs"
	"github.com/five82/mosaic/internal/viewer"
)

func openViewer(t *testing.T, id int64) (Model, *testEnv) {
	t.Helper()
	m, env := newTestModel(t, 120, 40)
	m.viewer.open(id)
	m = update(t, m, noopMsg{})
	// Hit areas come from the last render.
	_ = m.View()
	return m, env
}

func TestViewerKeysNavigate(t *testing.T) {
	m, env := openViewer(t, 1)

	m = update(t, m, keyPress("right"))
	if got := env.store.Read().CurrentImageIndex; got != 2 {
		t.Fatalf("after right cursor = %d, want 2", got)
	}
	if m.viewer.nav.Direction() != viewer.Right {
		t.Fatalf("direction = %v, want right", m.viewer.nav.Direction())
	}

	for range 3 {
		m = update(t, m, keyPress("left"))
	}
	if got := env.store.Read().CurrentImageIndex; got != 0 {
		t.Fatalf("after left x3 cursor = %d, want 0 (clamped)", got)
	}
	if !env.store.Read().IsViewerOpen {
		t.Fatal("viewer closed by navigation")
	}

	m = update(t, m, keyPress("q"))
	if env.store.Read().IsViewerOpen {
		t.Fatal("q did not close the viewer")
	}
}

func TestViewerGridKeysInactive(t *testing.T) {
	m, env := openViewer(t, 5)
	m = update(t, m, keyPress("G"))
	if got := env.store.Read().LastImageIndex; got != -1 {
		t.Fatalf("LastImageIndex = %d while viewer open, want -1", got)
	}
	if m.grid.focus != 0 {
		t.Fatalf("grid focus = %d, want 0", m.grid.focus)
	}
}

func TestViewerChromeTogglePersists(t *testing.T) {
	m, env := openViewer(t, 4)
	if !strings.Contains(m.View(), "✕ esc") {
		t.Fatal("chrome hidden at start")
	}

	m = update(t, m, keyPress("up"))
	if m.viewer.chrome {
		t.Fatal("up did not hide the chrome")
	}
	if strings.Contains(m.View(), "✕ esc") {
		t.Fatal("header still rendered with chrome hidden")
	}

	p, err := prefs.Load(env.prefs)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if p.Chrome() {
		t.Fatal("saved prefs still show the chrome")
	}

	m = update(t, m, keyPress("j"))
	if !m.viewer.chrome {
		t.Fatal("j did not show the chrome again")
	}
}

func TestViewerInfoPanel(t *testing.T) {
	m, _ := openViewer(t, 42)
	m = update(t, m, keyPress("i"))
	view := m.View()
	if !strings.Contains(view, "source ") || !strings.Contains(view, "preview ") {
		t.Fatalf("info panel missing:\n%s", view)
	}
}

func TestViewerSwipe(t *testing.T) {
	cases := []struct {
		name       string
		from, to   int
		start      int64
		want       int64
		elapsed    time.Duration
	}{
		{"drag left goes next", 60, 40, 10, 11, 100 * time.Millisecond},
		{"drag right goes back", 40, 60, 10, 9, 100 * time.Millisecond},
		{"drag right at zero stays", 40, 60, 0, 0, 100 * time.Millisecond},
		{"slow drag stays", 60, 59, 10, 10, 2 * time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, env := openViewer(t, tc.start)
			now := time.Unix(1000, 0)
			m.viewer.now = func() time.Time { return now }

			m = update(t, m, click(tc.from, 10))
			if !m.viewer.gesture.Active() {
				t.Fatal("press inside the picture did not start a drag")
			}
			now = now.Add(tc.elapsed)
			m = update(t, m, tea.MouseMsg{X: tc.to, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

			if got := env.store.Read().CurrentImageIndex; got != tc.want {
				t.Fatalf("cursor = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestViewerChevronClicks(t *testing.T) {
	m, env := openViewer(t, 10)
	m = update(t, m, click(119, 10))
	if got := env.store.Read().CurrentImageIndex; got != 11 {
		t.Fatalf("after next chevron cursor = %d, want 11", got)
	}
	_ = m.View()
	m = update(t, m, click(0, 10))
	if got := env.store.Read().CurrentImageIndex; got != 10 {
		t.Fatalf("after previous chevron cursor = %d, want 10", got)
	}
}

func TestViewerCloseButton(t *testing.T) {
	m, env := openViewer(t, 10)
	m = update(t, m, click(2, 0))
	if env.store.Read().IsViewerOpen {
		t.Fatal("click on the close hint did not close the viewer")
	}
}

func TestViewerThumbnailClick(t *testing.T) {
	m, env := openViewer(t, 20)
	if len(m.viewer.thumbs) == 0 {
		t.Fatal("no thumbnails rendered")
	}
	first := m.viewer.thumbs[0]
	wantCount := 2*m.viewer.visibleNeighbors() + 1
	if len(m.viewer.thumbs) != wantCount {
		t.Fatalf("thumbnails = %d, want %d", len(m.viewer.thumbs), wantCount)
	}

	m = update(t, m, click(first.x0, first.y0))
	if got := env.store.Read().CurrentImageIndex; got != first.id {
		t.Fatalf("cursor = %d, want %d", got, first.id)
	}
	if m.viewer.nav.Direction() != viewer.Left {
		t.Fatalf("direction = %v, want left", m.viewer.nav.Direction())
	}
}

func TestViewerNeighborKeys(t *testing.T) {
	m, env := openViewer(t, 20)
	n := int64(m.viewer.visibleNeighbors())

	m = update(t, m, keyPress("]"))
	if got := env.store.Read().CurrentImageIndex; got != 20+n {
		t.Fatalf("after ] cursor = %d, want %d", got, 20+n)
	}
	m = update(t, m, keyPress("["))
	if got := env.store.Read().CurrentImageIndex; got != 20 {
		t.Fatalf("after [ cursor = %d, want 20", got)
	}
}

func TestViewerHidesChevronsAtBounds(t *testing.T) {
	m, _ := openViewer(t, 0)
	if strings.Contains(m.View(), "‹") {
		t.Fatal("previous chevron shown at 0")
	}

	m.viewer.jump(imagedata.MaxSafeInteger)
	m = update(t, m, noopMsg{})
	view := m.View()
	if strings.Contains(view, "›") {
		t.Fatal("next chevron shown at the last id")
	}
	if !strings.Contains(view, "‹") {
		t.Fatal("previous chevron missing at the last id")
	}
}

func TestVisibleNeighbors(t *testing.T) {
	v := &viewerView{neighbors: 15}
	cases := []struct{ width, want int }{
		{0, 0},
		{40, 4},
		{120, 14},
		{400, 15},
	}
	for _, tc := range cases {
		v.width = tc.width
		if got := v.visibleNeighbors(); got != tc.want {
			t.Fatalf("visibleNeighbors(width %d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}
