package app

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/five82/roster/internal/people"
	"github.com/five82/roster/internal/roster"
	"github.com/five82/roster/internal/state"
)

// Loader performs the single people load of a run and publishes its outcome to
// the store.
type Loader struct {
	fetcher people.Fetcher
	store   *state.Store
	delay   time.Duration
	logger  *zap.Logger
	clock   clockwork.Clock

	once   sync.Once
	result state.Snapshot
}

// NewLoader builds a Loader. A negative delay disables the minimum loading time.
func NewLoader(fetcher people.Fetcher, store *state.Store, delay time.Duration, logger *zap.Logger) *Loader {
	if store == nil {
		store = &state.Store{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("loader")
	if delay < 0 {
		delay = 0
	}
	return &Loader{
		fetcher: fetcher,
		store:   store,
		delay:   delay,
		logger:  logger,
		clock:   clockwork.NewRealClock(),
	}
}

// Store returns the store the loader publishes to.
func (l *Loader) Store() *state.Store {
	return l.store
}

// Load fetches and maps the people listing once. Later calls return the first
// result without fetching again. The loading phase is held for the minimum
// delay after the fetch settles, whatever its outcome.
func (l *Loader) Load(ctx context.Context) state.Snapshot {
	l.once.Do(func() {
		l.result = l.load(ctx)
	})
	return l.result
}

func (l *Loader) load(ctx context.Context) state.Snapshot {
	l.store.Begin(l.clock.Now())

	ds, err := l.fetch(ctx)

	l.hold(ctx)

	if err != nil {
		l.store.Fail(err.Error(), l.clock.Now())
		snap := l.store.Snapshot()
		l.logger.Warn("people load failed",
			zap.Error(err),
			zap.Duration("elapsed", snap.Elapsed()))
		return snap
	}

	l.store.Ready(ds, l.clock.Now())
	snap := l.store.Snapshot()
	l.logger.Info("people loaded",
		zap.Int("records", ds.Len()),
		zap.Int("cities", len(ds.Cities)),
		zap.Duration("elapsed", snap.Elapsed()))
	return snap
}

func (l *Loader) fetch(ctx context.Context) (roster.Dataset, error) {
	if l.fetcher == nil {
		return roster.Dataset{}, people.ErrNilClient
	}
	users, err := l.fetcher.FetchUsers(ctx)
	if err != nil {
		return roster.Dataset{}, err
	}
	return roster.Build(users)
}

// hold keeps the loading phase visible for the configured delay. Cancelling ctx
// cuts it short.
func (l *Loader) hold(ctx context.Context) {
	if l.delay <= 0 {
		return
	}
	timer := l.clock.NewTimer(l.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.Chan():
	}
}
