package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kayaglobe/internal/feed"
	"kayaglobe/internal/geo"
	"kayaglobe/internal/globe"
	"kayaglobe/internal/scene"
)

type harness struct {
	tui      *TUI
	screen   tcell.SimulationScreen
	clock    *clockwork.FakeClock
	animator *feed.Animator
	store    *feed.Store
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	clock := clockwork.NewFakeClock()
	screen := tcell.NewSimulationScreen("")
	animator := feed.NewAnimator(clock, feed.DefaultStep, RowHeight)
	store := &feed.Store{}

	opts.Clock = clock
	opts.Logger = zerolog.Nop()
	opts.Location = time.UTC
	tui, err := New(screen, animator, store, opts)
	require.NoError(t, err)
	screen.SetSize(120, 40)
	tui.HandleResize()
	t.Cleanup(tui.Close)

	return &harness{tui: tui, screen: screen, clock: clock, animator: animator, store: store}
}

func (h *harness) row(x, y, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r, _, _, _ := h.screen.GetContent(x+i, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func mouse(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func TestHoverShowsTooltip(t *testing.T) {
	h := newHarness(t, Options{})
	front := scene.NewMarker(0, 0, "Midwest Hub", geo.RGB{R: 6, G: 182, B: 212})
	front.Detail = "3 pcs"
	back := scene.NewMarker(0, 180, "Far Side", geo.RGB{R: 255})
	h.tui.Apply(scene.Scene{Markers: []*scene.Marker{front, back}})

	h.tui.Render()
	assert.True(t, front.Visible())
	assert.False(t, back.Visible(), "markers behind the globe are hidden")

	h.tui.HandleEvent(mouse(36, 19))
	require.True(t, h.tui.Tooltip().Visible())
	assert.Equal(t, "Midwest Hub", h.tui.Tooltip().Content().Title)
	assert.Equal(t, []string{"3 pcs"}, h.tui.Tooltip().Content().Lines)

	h.tui.HandleEvent(mouse(5, 5))
	assert.False(t, h.tui.Tooltip().Visible())

	h.tui.HandleEvent(mouse(36, 19))
	h.tui.HandleEvent(mouse(100, 19))
	assert.False(t, h.tui.Tooltip().Visible(), "pointer over the feed pane")
}

func TestTabCyclesMarkers(t *testing.T) {
	h := newHarness(t, Options{})
	a := scene.NewMarker(0, 0, "A", geo.RGB{R: 255})
	b := scene.NewMarker(20, 20, "B", geo.RGB{G: 255})
	h.tui.Apply(scene.Scene{Markers: []*scene.Marker{a, b}})
	h.tui.Render()

	h.tui.HandleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	first := h.tui.Tooltip().Content().Title
	h.tui.HandleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	second := h.tui.Tooltip().Content().Title

	assert.ElementsMatch(t, []string{"A", "B"}, []string{first, second})

	h.tui.HandleEvent(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone))
	assert.Equal(t, first, h.tui.Tooltip().Content().Title)
}

func TestTooltipHiddenWhenMarkerRotatesAway(t *testing.T) {
	h := newHarness(t, Options{})
	m := scene.NewMarker(0, 0, "A", geo.RGB{R: 255})
	h.tui.Apply(scene.Scene{Markers: []*scene.Marker{m}})
	h.tui.Render()
	h.tui.HandleEvent(mouse(36, 19))
	require.True(t, h.tui.Tooltip().Visible())

	h.tui.Renderer().SetCamera(globe.NewCamera(0, 180))
	h.tui.Render()
	assert.False(t, m.Visible())
	assert.False(t, h.tui.Tooltip().Visible())
}

func TestKeys(t *testing.T) {
	h := newHarness(t, Options{})
	h.tui.FeedUpdated(2)
	require.Equal(t, feed.Advancing, h.animator.State())

	assert.False(t, h.tui.HandleEvent(key(' ')))
	assert.True(t, h.tui.State().Paused)
	assert.Equal(t, feed.Idle, h.animator.State())

	h.tui.HandleEvent(key('t'))
	assert.Equal(t, "matrix", h.tui.Theme().Name)

	require.True(t, h.tui.Renderer().ShowArcs())
	h.tui.HandleEvent(key('g'))
	assert.False(t, h.tui.Renderer().ShowArcs())

	h.tui.HandleEvent(key('+'))
	assert.InDelta(t, 270, h.tui.Renderer().Camera().Distance, 1e-9)

	h.tui.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	assert.InDelta(t, 5, h.tui.Renderer().Camera().Lat, 1e-9)

	h.tui.HandleEvent(key(']'))
	assert.InDelta(t, 1.1, h.tui.State().SpinSpeed, 1e-9)

	assert.True(t, h.tui.HandleEvent(key('q')))
	assert.True(t, h.tui.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestFeedPane(t *testing.T) {
	h := newHarness(t, Options{})
	h.tui.Render()
	assert.Equal(t, "Waiting for feed...", h.row(75, 2, 19))
	assert.Equal(t, "-", h.row(118, 0, 1))

	h.store.Set([]feed.Item{
		{ID: "SUB-1", Description: "Curtain walls", Contractor: "Acme", Status: "Released", LeadTime: 4},
		{ID: "SUB-2", Status: "On Site"},
	})
	h.tui.FeedUpdated(2)
	h.tui.Render()

	assert.Equal(t, "+", h.row(118, 0, 1))
	assert.Equal(t, "SUB-1", h.row(75, 2, 5))
	assert.Equal(t, "Curtain walls", h.row(75, 3, 13))
	assert.Equal(t, "SUB-2", h.row(75, 2+RowHeight, 5))

	h.animator.Tick()
	h.tui.Render()
	assert.Equal(t, "SUB-2", h.row(75, 2, 5), "feed scrolled by one card")
}

func TestTooSmall(t *testing.T) {
	h := newHarness(t, Options{})
	h.screen.SetSize(50, 10)
	h.tui.HandleEvent(tcell.NewEventResize(50, 10))
	h.tui.Render()
	assert.Equal(t, "Terminal too small", h.row(16, 5, 18))
}

func TestAutoRotate(t *testing.T) {
	h := newHarness(t, Options{AutoRotate: true, RotateSpeed: 0.5})
	h.clock.Advance(time.Second)
	h.tui.Render()
	assert.InDelta(t, -3, h.tui.Renderer().Camera().Lng, 1e-6)

	h.tui.HandleEvent(key(' '))
	h.clock.Advance(time.Second)
	h.tui.Render()
	assert.InDelta(t, -3, h.tui.Renderer().Camera().Lng, 1e-6, "paused")
}

func TestRunProcessesTasksAndQuits(t *testing.T) {
	h := newHarness(t, Options{})
	done := make(chan error, 1)
	go func() { done <- h.tui.Run(context.Background()) }()

	ran := make(chan struct{})
	h.tui.Do(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}

	h.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after q")
	}

	h.tui.Do(func() { t.Error("task ran after Run returned") })
}
