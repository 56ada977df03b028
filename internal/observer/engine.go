// Package observer drives periodic memory observation: a single
// reconfigurable timer samples the current process and publishes each
// snapshot to a broadcast hub.
package observer

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adya/memwatch/internal/broadcast"
	"github.com/adya/memwatch/internal/logging"
	"github.com/adya/memwatch/internal/memstat"
)

// Snapshotter builds one memory snapshot per call.
type Snapshotter interface {
	Build(ctx context.Context) (memstat.Snapshot, error)
}

// session holds the state of one observation run: the armed interval,
// its ticker, and the channels that end the sampling loop. The engine
// holds a session exactly while a timer is armed, so the interval and
// timer always exist together or not at all.
type session struct {
	interval Interval
	ticker   Ticker
	stop     chan struct{}
	done     chan struct{}
}

// Engine samples process memory at a configurable cadence. It is
// created idle; StartObserving arms the timer and StopObserving
// disarms it, any number of times over the engine's life. At most one
// timer is armed at any instant.
//
// Engine is safe for concurrent use from any goroutine.
type Engine struct {
	snapshotter Snapshotter
	hub         *broadcast.Hub
	log         logging.Logger
	newTicker   TickerFactory

	mu      sync.Mutex
	session *session
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger routes the engine's diagnostics through log. Without it
// the engine stays silent.
func WithLogger(log logging.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithTickerFactory replaces the timer source, mainly for tests that
// need a controllable clock.
func WithTickerFactory(f TickerFactory) Option {
	return func(e *Engine) {
		e.newTicker = f
	}
}

// NewEngine creates an idle engine that samples through snapshotter
// and publishes to hub.
//
// Parameters:
//   - snapshotter: The snapshot source, typically a *memstat.Builder.
//   - hub: The broadcast hub snapshots are published to.
//   - opts: Optional engine customizations.
//
// Returns:
//   - *Engine: The engine, in the stopped state.
func NewEngine(snapshotter Snapshotter, hub *broadcast.Hub, opts ...Option) *Engine {
	e := &Engine{
		snapshotter: snapshotter,
		hub:         hub,
		log:         logging.NewZerologAdapter(zerolog.Nop()),
		newTicker:   newRealTicker,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartObserving arms the recurring sampler at the given cadence and
// publishes one baseline snapshot immediately, before the first tick.
// Calling it again with the same interval is a no-op. A different
// interval replaces the running timer: the old one is fully stopped
// before the new one is armed, and no tick from the old cadence is
// published after the switch. A failed baseline build skips its
// publish but the timer still starts.
//
// Parameters:
//   - ctx: Context for the baseline snapshot build.
//   - interval: The observation cadence.
func (e *Engine) StartObserving(ctx context.Context, interval Interval) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		if e.session.interval == interval {
			return
		}
		e.stopSessionLocked()
	}

	s := &session{
		interval: interval,
		ticker:   e.newTicker(interval.Duration()),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	e.session = s

	if snap, err := e.snapshotter.Build(ctx); err == nil {
		e.hub.Publish(snap)
	} else {
		e.log.Debug("baseline snapshot skipped", logging.Err(err))
	}

	go e.observe(s)
	e.log.Info("observation started",
		logging.String("interval", interval.String()),
		logging.String("period", interval.Duration().String()))
}

// StopObserving disarms the sampler. Once it returns, no further
// snapshots are published until the next StartObserving. Stopping an
// idle engine is a no-op.
func (e *Engine) StopObserving() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return
	}
	e.stopSessionLocked()
	e.log.Info("observation stopped")
}

// Observing reports the armed cadence, if any.
//
// Returns:
//   - Interval: The armed interval; meaningful only when active.
//   - bool: Whether a timer is currently armed.
func (e *Engine) Observing() (Interval, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return IntervalDefault, false
	}
	return e.session.interval, true
}

// Snapshot builds and returns one snapshot on the caller's goroutine,
// independent of whether observation is running. Nothing is published.
// Unlike timer ticks, failures are returned to the caller.
//
// Parameters:
//   - ctx: Context for the snapshot build.
//
// Returns:
//   - memstat.Snapshot: The snapshot.
//   - error: The query error, if any record could not be read.
func (e *Engine) Snapshot(ctx context.Context) (memstat.Snapshot, error) {
	return e.snapshotter.Build(ctx)
}

// stopSessionLocked tears down the running session and waits for its
// sampling loop to exit. Callers hold e.mu.
func (e *Engine) stopSessionLocked() {
	s := e.session
	e.session = nil
	close(s.stop)
	<-s.done
}

// observe runs the sampling loop for one session. It exits when the
// session's stop channel closes; the ticker is stopped before done is
// closed, so a waiting StopObserving sees the timer disarmed.
func (e *Engine) observe(s *session) {
	defer close(s.done)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-s.ticker.Chan():
			// Re-check stop so a tick racing the stop signal does
			// not publish after the session ended.
			select {
			case <-s.stop:
				return
			default:
			}
			e.tick()
		}
	}
}

// tick builds and publishes one snapshot. A failed build publishes
// nothing and leaves the loop running; the failure is visible only to
// the debug log.
func (e *Engine) tick() {
	snap, err := e.snapshotter.Build(context.Background())
	if err != nil {
		e.log.Debug("tick skipped", logging.Err(err))
		return
	}
	e.hub.Publish(snap)
}
