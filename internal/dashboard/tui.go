// Package dashboard is the terminal view: the globe on the left, the
// procurement feed on the right and a status summary underneath it.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"kayaglobe/internal/feed"
	"kayaglobe/internal/geo"
	"kayaglobe/internal/globe"
	"kayaglobe/internal/scene"
	"kayaglobe/internal/tooltip"
	"kayaglobe/internal/visibility"
)

const (
	minWidth  = 60
	minHeight = 20
	statsRows = 6
)

type Options struct {
	Aspect      float64
	Charset     globe.Charset
	Theme       string
	RefreshRate time.Duration
	AutoRotate  bool
	// RotateSpeed follows orbit-control conventions: 1.0 is six degrees of
	// camera longitude per second.
	RotateSpeed float64
	Camera      globe.Camera
	Lighting    bool
	FeedWidth   int
	RecordPath  string
	Location    *time.Location
	Clock       clockwork.Clock
	Logger      zerolog.Logger
}

func (o *Options) setDefaults() {
	if o.Aspect <= 0 {
		o.Aspect = 2.0
	}
	if o.RefreshRate <= 0 {
		o.RefreshRate = 50 * time.Millisecond
	}
	if o.FeedWidth <= 0 {
		o.FeedWidth = 45
	}
	if o.Camera.Distance == 0 {
		o.Camera = globe.NewCamera(o.Camera.Lat, o.Camera.Lng)
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Location == nil {
		o.Location = time.Local
	}
}

// State holds the interactive toggles.
type State struct {
	Paused       bool
	SpinSpeed    float64
	ThemeIndex   int
	ShowHelp     bool
	ShowCommands bool
}

// TUI owns the screen. Everything except the event poller runs on the Run
// goroutine; other goroutines hand work to it with Do.
type TUI struct {
	screen     tcell.Screen
	width      int
	height     int
	globeWidth int

	renderer *globe.Renderer
	tooltip  *tooltip.Controller
	tracker  *visibility.Tracker[*scene.Marker]
	animator *feed.Animator
	store    *feed.Store
	recorder *Recorder

	state  State
	theme  *Theme
	opts   Options
	clock  clockwork.Clock
	logger zerolog.Logger

	start    time.Time
	lastTick time.Time
	frame    *globe.Frame
	hover    *scene.Marker
	follow   bool
	focus    int
	loaded   bool

	tasks chan func()
	done  chan struct{}
}

// New initializes screen and lays out the panes.
func New(screen tcell.Screen, animator *feed.Animator, store *feed.Store, opts Options) (*TUI, error) {
	opts.setDefaults()

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)

	t := &TUI{
		screen:   screen,
		animator: animator,
		store:    store,
		tracker:  visibility.NewTracker[*scene.Marker](nil),
		state:    State{SpinSpeed: 1.0, ShowCommands: true},
		opts:     opts,
		clock:    opts.Clock,
		logger:   opts.Logger,
		focus:    -1,
		tasks:    make(chan func(), 16),
		done:     make(chan struct{}),
	}

	t.renderer = globe.New(0, 0, opts.Aspect, opts.Charset)
	t.renderer.SetCamera(opts.Camera)
	t.renderer.SetLighting(opts.Lighting)

	th, ok := LookupTheme(opts.Theme)
	if !ok && opts.Theme != "" {
		t.logger.Warn().Str("theme", opts.Theme).Msg("Unknown theme, using default")
	}
	for i, name := range themeOrder {
		if name == th.Name {
			t.state.ThemeIndex = i
		}
	}
	t.tooltip = tooltip.New(tcell.ColorWhite, th.Tooltip)
	t.setTheme(th)

	t.width, t.height = screen.Size()
	t.layout()

	if opts.RecordPath != "" {
		rec, err := OpenRecorder(opts.RecordPath, t.width, t.height, t.clock)
		if err != nil {
			t.logger.Error().Err(err).Msg("Failed to initialize recorder")
		} else {
			t.recorder = rec
		}
	}

	t.start = t.clock.Now()
	t.lastTick = t.start
	return t, nil
}

func (t *TUI) Close() {
	if t.recorder != nil {
		if err := t.recorder.Close(); err != nil {
			t.logger.Error().Err(err).Msg("Closing recording")
		}
	}
	t.screen.Fini()
}

func (t *TUI) Renderer() *globe.Renderer { return t.renderer }

func (t *TUI) State() State { return t.state }

func (t *TUI) Theme() *Theme { return t.theme }

func (t *TUI) Tooltip() *tooltip.Controller { return t.tooltip }

// Apply hands a new scene to the renderer and tracks its markers. It makes
// the TUI a scene.Engine.
func (t *TUI) Apply(s scene.Scene) {
	t.renderer.Apply(s)
	t.tracker.SetTargets(s.Markers)
	t.clearHover()
}

// FeedUpdated is called after the store received n items.
func (t *TUI) FeedUpdated(n int) {
	t.loaded = true
	t.animator.SetCount(n)
}

// Do queues fn to run on the UI goroutine. It is dropped once Run has
// returned.
func (t *TUI) Do(fn func()) {
	select {
	case <-t.done:
		return
	default:
	}
	select {
	case t.tasks <- fn:
	case <-t.done:
	}
}

func (t *TUI) setTheme(th *Theme) {
	t.theme = th
	t.tooltip.SetColors(th.Text, th.Tooltip)
	r, g, b := th.Background.RGB()
	if r < 0 {
		r, g, b = 0, 0, 0
	}
	t.renderer.SetBackground(geo.RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
	t.screen.SetStyle(tcell.StyleDefault.Background(th.Background).Foreground(th.Text))
}

func (t *TUI) layout() {
	t.globeWidth = t.width - t.opts.FeedWidth - 3
	if t.globeWidth < 10 {
		t.globeWidth = 10
	}
	t.renderer.Resize(t.globeWidth, max(t.height-1, 0))
}

func (t *TUI) HandleResize() {
	t.width, t.height = t.screen.Size()
	t.layout()
	t.clearHover()
	t.screen.Clear()
}

// Run drives rendering until ctx is done or the user quits.
func (t *TUI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer close(t.done)

	events := t.pollEvents(ctx)
	go t.animator.Run(ctx)

	ticker := t.clock.NewTicker(t.opts.RefreshRate)
	defer ticker.Stop()

	t.Render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if t.HandleEvent(ev) {
				t.logger.Debug().Msg("Shutting down")
				return nil
			}
		case fn := <-t.tasks:
			fn()
		case <-ticker.Chan():
			t.Render()
		}
	}
}

func (t *TUI) pollEvents(ctx context.Context) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events
}

// HandleEvent applies one input event. It reports whether the user asked to
// quit.
func (t *TUI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.HandleResize()
	case *tcell.EventMouse:
		x, y := ev.Position()
		t.hoverAt(x, y)
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return true
		case tcell.KeyTab:
			t.cycleFocus(1)
		case tcell.KeyBacktab:
			t.cycleFocus(-1)
		case tcell.KeyUp:
			t.orbit(5, 0)
		case tcell.KeyDown:
			t.orbit(-5, 0)
		case tcell.KeyLeft:
			t.orbit(0, -5)
		case tcell.KeyRight:
			t.orbit(0, 5)
		case tcell.KeyRune:
			return t.handleRune(ev.Rune())
		}
	}
	return false
}

func (t *TUI) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q', 'x', 'X':
		return true
	case ' ':
		t.state.Paused = !t.state.Paused
		t.animator.SetPaused(t.state.Paused)
	case '[':
		t.state.SpinSpeed = math.Max(0.1, t.state.SpinSpeed-0.1)
	case ']':
		t.state.SpinSpeed = math.Min(5.0, t.state.SpinSpeed+0.1)
	case '+', '=':
		t.renderer.SetCamera(t.renderer.Camera().Zoom(0.9))
	case '-', '_':
		t.renderer.SetCamera(t.renderer.Camera().Zoom(1.1))
	case 't', 'T':
		t.state.ThemeIndex = (t.state.ThemeIndex + 1) % len(themeOrder)
		th, _ := LookupTheme(themeOrder[t.state.ThemeIndex])
		t.setTheme(th)
		t.logger.Debug().Str("theme", th.Name).Msg("Theme changed")
	case 'g', 'G':
		t.renderer.SetShowArcs(!t.renderer.ShowArcs())
	case 'l', 'L':
		t.renderer.SetLighting(!t.renderer.Lighting())
	case 'c', 'C':
		t.state.ShowCommands = !t.state.ShowCommands
	case '?':
		t.state.ShowHelp = !t.state.ShowHelp
	}
	return false
}

func (t *TUI) orbit(dLat, dLng float64) {
	t.renderer.SetCamera(t.renderer.Camera().Orbit(dLat, dLng))
}

func tooltipContent(m *scene.Marker) tooltip.Content {
	c := tooltip.Content{Title: m.Name, Icon: '⌂', Accent: m.Color}
	if m.Detail != "" {
		c.Lines = []string{m.Detail}
	}
	return c
}

func (t *TUI) hoverAt(x, y int) {
	if t.frame == nil || x >= t.globeWidth {
		t.clearHover()
		return
	}
	m, ok := t.frame.MarkerAt(x, y)
	if !ok || !m.Visible() {
		t.clearHover()
		return
	}
	t.hover, t.follow = m, false
	t.tooltip.Show(tooltipContent(m), x, y)
}

func (t *TUI) cycleFocus(dir int) {
	if t.frame == nil || len(t.frame.Markers) == 0 {
		t.clearHover()
		return
	}
	n := len(t.frame.Markers)
	t.focus = ((t.focus+dir)%n + n) % n
	h := t.frame.Markers[t.focus]
	t.hover, t.follow = h.Marker, true
	t.tooltip.Show(tooltipContent(h.Marker), h.X, h.Y)
}

func (t *TUI) clearHover() {
	t.hover, t.follow = nil, false
	t.focus = -1
	t.tooltip.Hide()
}

// syncTooltip keeps a keyboard-focused tooltip on its marker and drops the
// tooltip once its marker is hidden.
func (t *TUI) syncTooltip() {
	if t.hover == nil {
		return
	}
	if !t.hover.Visible() {
		t.clearHover()
		return
	}
	if !t.follow {
		return
	}
	for _, h := range t.frame.Markers {
		if h.Marker == t.hover {
			t.tooltip.Show(tooltipContent(h.Marker), h.X, h.Y)
			return
		}
	}
	t.clearHover()
}

func (t *TUI) advanceCamera(now time.Time) {
	dt := now.Sub(t.lastTick).Seconds()
	t.lastTick = now
	if !t.opts.AutoRotate || t.state.Paused || dt <= 0 {
		return
	}
	deg := 6 * t.opts.RotateSpeed * t.state.SpinSpeed * dt
	t.orbit(0, -deg)
}

// Render draws one frame.
func (t *TUI) Render() {
	now := t.clock.Now()
	t.advanceCamera(now)

	cam := t.renderer.Camera().Position()
	if n := t.tracker.Tick(&cam, geo.Vec3{}); n > 0 {
		t.logger.Debug().Int("changed", n).Msg("Marker visibility updated")
	}

	t.screen.Clear()
	if t.width < minWidth || t.height < minHeight {
		msg := "Terminal too small"
		t.drawText(max(0, (t.width-len(msg))/2), t.height/2, msg, tcell.StyleDefault.Foreground(t.theme.Text))
		t.screen.Show()
		return
	}

	t.frame = t.renderer.Render(now.Sub(t.start))
	t.renderGlobe()
	t.renderFeed()
	t.renderStats()
	t.renderCommandGuide()
	t.renderHelpPanel()
	t.syncTooltip()
	t.tooltip.Draw(t.screen)
	t.screen.Show()

	if t.recorder != nil {
		if err := t.recorder.RecordFrame(t.screen); err != nil {
			t.logger.Error().Err(err).Msg("Recording frame")
			t.recorder = nil
		}
	}
}

func (t *TUI) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= t.height || x >= t.width {
		return
	}
	for i, r := range []rune(text) {
		if x+i < 0 {
			continue
		}
		if x+i >= t.width {
			break
		}
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *TUI) renderGlobe() {
	f := t.frame
	for y := 0; y < f.Height && y < t.height; y++ {
		for x := 0; x < f.Width && x < t.width; x++ {
			c := f.At(x, y)
			if c.Kind == globe.KindEmpty {
				continue
			}
			t.screen.SetContent(x, y, c.Rune, nil, t.theme.CellStyle(c))
		}
	}
}

func (t *TUI) feedX() int { return t.globeWidth + 3 }

func (t *TUI) renderFeed() {
	separatorX := t.globeWidth + 1
	sepStyle := tcell.StyleDefault.Foreground(t.theme.Separator)
	for y := 0; y < t.height-1; y++ {
		t.screen.SetContent(separatorX, y, '│', nil, sepStyle)
	}

	x := t.feedX()
	width := t.opts.FeedWidth
	headerStyle := tcell.StyleDefault.Foreground(t.theme.Header).Bold(true)

	status, statusStyle := '-', tcell.StyleDefault.Foreground(t.theme.StatusError).Bold(true)
	if t.loaded {
		status, statusStyle = '+', tcell.StyleDefault.Foreground(t.theme.StatusOk).Bold(true)
	}
	title := "PROCUREMENT FEED"
	t.drawText(x, 0, title, headerStyle)
	t.drawText(x+width-3, 0, "[ ]", headerStyle)
	t.screen.SetContent(x+width-2, 0, status, nil, statusStyle)
	t.drawText(x, 1, repeatRune('─', width), tcell.StyleDefault.Foreground(t.theme.Separator))

	paneHeight := t.height - 1 - statsRows - 2
	if paneHeight <= 0 {
		return
	}
	items := t.store.Items()
	if len(items) == 0 {
		t.drawText(x, 2, "Waiting for feed...", tcell.StyleDefault.Foreground(t.theme.Feed))
		return
	}

	lines := FeedLines(items, t.animator.Offset(), width, paneHeight, t.opts.Location)
	textStyle := tcell.StyleDefault.Foreground(t.theme.Feed)
	for i, l := range lines {
		style := textStyle
		if l.Title {
			style = tcell.StyleDefault.Foreground(t.theme.StatusColor(l.Status)).Bold(true)
		}
		t.drawText(x, 2+i, l.Text, style)
	}
}

func (t *TUI) renderStats() {
	x := t.feedX()
	width := t.opts.FeedWidth
	top := t.height - 1 - statsRows

	header := "[ SUBMITTAL STATUS ]"
	headerStyle := tcell.StyleDefault.Foreground(t.theme.Header).Bold(true)
	t.drawText(x+max(0, (width-len(header))/2), top, header, headerStyle)

	counts := feed.Summarize(t.store.Items())
	for i, line := range StatusBars(counts, width) {
		style := tcell.StyleDefault.Foreground(t.theme.StatusColor(counts[i].Status))
		t.drawText(x, top+1+i, line, style)
	}
}

func (t *TUI) renderCommandGuide() {
	if !t.state.ShowCommands {
		return
	}
	y := t.height - 1
	text := "Space:Pause []:Speed +-:Zoom Arrows:Orbit Tab:Marker T:Theme G:Arcs L:Light C:Guide ?:Help Q:Quit"
	if len(text) > t.width {
		text = text[:t.width]
	}
	style := tcell.StyleDefault.Foreground(t.theme.Header).Bold(true)
	t.drawText(max(0, (t.width-len(text))/2), y, text, style)
}

var helpText = []string{
	"╔═══════════════════════════════════════╗",
	"║         KEYBOARD CONTROLS             ║",
	"╠═══════════════════════════════════════╣",
	"║ Space   - Pause/Resume rotation+feed  ║",
	"║ [/]     - Decrease/Increase spin      ║",
	"║ +/-     - Zoom in/out                 ║",
	"║ Arrows  - Orbit the camera            ║",
	"║ Tab     - Focus next contractor       ║",
	"║ Mouse   - Hover a contractor marker   ║",
	"║ T       - Cycle themes                ║",
	"║ G       - Toggle arcs                 ║",
	"║ L       - Toggle lighting             ║",
	"║ C       - Toggle command guide        ║",
	"║ ?       - Toggle this help panel      ║",
	"║ Q/X/Esc - Exit                        ║",
	"╚═══════════════════════════════════════╝",
}

func (t *TUI) renderHelpPanel() {
	if !t.state.ShowHelp {
		return
	}
	startY := (t.height - len(helpText)) / 2
	startX := (t.width - len([]rune(helpText[0]))) / 2
	style := tcell.StyleDefault.Foreground(t.theme.Header).Background(t.theme.Background)
	for i, line := range helpText {
		t.drawText(startX, startY+i, line, style)
	}
}

func repeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
