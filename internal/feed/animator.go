package feed

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultStep is how long each row stays on top before the feed advances.
const DefaultStep = 2 * time.Second

type State int

const (
	Idle State = iota
	Advancing
)

func (s State) String() string {
	if s == Advancing {
		return "advancing"
	}
	return "idle"
}

// Animator cycles an index through the feed rows. It is Idle while there is
// nothing to show (or while paused) and Advancing otherwise.
type Animator struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	step      time.Duration
	rowHeight float64

	index     int
	count     int
	paused    bool
	state     State
	stepStart time.Time
}

func NewAnimator(clock clockwork.Clock, step time.Duration, rowHeight float64) *Animator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if step <= 0 {
		step = DefaultStep
	}
	return &Animator{
		clock:     clock,
		step:      step,
		rowHeight: rowHeight,
		stepStart: clock.Now(),
	}
}

// SetCount changes the number of rows. The index wraps into the new range.
func (a *Animator) SetCount(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n < 0 {
		n = 0
	}
	a.count = n
	if n == 0 {
		a.index = 0
	} else {
		a.index %= n
	}
	a.updateState()
}

// SetPaused stops or resumes advancing without losing the index.
func (a *Animator) SetPaused(p bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = p
	a.updateState()
}

func (a *Animator) updateState() {
	next := Idle
	if a.count > 0 && !a.paused {
		next = Advancing
	}
	if next == Advancing && a.state != Advancing {
		a.stepStart = a.clock.Now()
	}
	a.state = next
}

// Tick moves to the next row. With no rows, or while paused, it does nothing.
func (a *Animator) Tick() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != Advancing {
		return
	}
	a.index = (a.index + 1) % a.count
	a.stepStart = a.clock.Now()
}

func (a *Animator) Index() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.index
}

func (a *Animator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Progress is the fraction of the current step that has elapsed, in [0, 1].
func (a *Animator) Progress() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.progress()
}

func (a *Animator) progress() float64 {
	if a.state != Advancing {
		return 0
	}
	p := float64(a.clock.Since(a.stepStart)) / float64(a.step)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Offset is the scroll position, in rows of rowHeight, that the view should
// be showing right now.
func (a *Animator) Offset() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return (float64(a.index) + a.progress()) * a.rowHeight
}

// Run calls Tick every step until ctx is done.
func (a *Animator) Run(ctx context.Context) {
	ticker := a.clock.NewTicker(a.step)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			a.Tick()
		}
	}
}
