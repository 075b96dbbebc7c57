package feed

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Loader fetches from a Source into a Store. A failed fetch is logged and
// leaves the store as it was.
type Loader struct {
	source   Source
	store    *Store
	clock    clockwork.Clock
	interval time.Duration
	logger   zerolog.Logger
	onUpdate func([]Item)
}

type LoaderOption func(*Loader)

// WithPollInterval re-fetches every d. Zero fetches once.
func WithPollInterval(d time.Duration) LoaderOption {
	return func(l *Loader) { l.interval = d }
}

func WithClock(c clockwork.Clock) LoaderOption {
	return func(l *Loader) { l.clock = c }
}

func WithLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// OnUpdate is called from the fetch goroutine after each successful fetch.
func OnUpdate(fn func([]Item)) LoaderOption {
	return func(l *Loader) { l.onUpdate = fn }
}

func NewLoader(source Source, store *Store, opts ...LoaderOption) *Loader {
	l := &Loader{
		source: source,
		store:  store,
		clock:  clockwork.NewRealClock(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the fetch in the background and returns immediately. The
// returned channel is closed when the loader goroutine exits.
func (l *Loader) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Load(ctx)
		if l.interval <= 0 {
			return
		}

		ticker := l.clock.NewTicker(l.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				l.Load(ctx)
			}
		}
	}()
	return done
}

// Load performs one fetch synchronously.
func (l *Loader) Load(ctx context.Context) {
	items, err := l.source.Fetch(ctx)
	if err != nil {
		l.logger.Warn().Err(err).Msg("feed fetch failed")
		return
	}
	l.store.Set(items)
	l.logger.Debug().Int("items", len(items)).Msg("feed loaded")
	if l.onUpdate != nil {
		l.onUpdate(items)
	}
}
