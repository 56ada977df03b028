package tui

import (
	"time"

	"github.com/adya/memwatch/internal/memstat"
	"github.com/adya/memwatch/internal/observer"
)

// SnapshotMsg carries one memory snapshot into the update loop, either
// forwarded from the broadcast hub or taken by hand with the sample key.
type SnapshotMsg struct {
	Snapshot memstat.Snapshot
	Manual   bool
}

// QueryErrorMsg reports a failed manual sample. Failures of the
// periodic sampler never reach the TUI; the engine swallows them.
type QueryErrorMsg struct {
	Err error
}

// ObservationArmedMsg confirms that the engine runs at the given
// cadence, sent after the initial arm and after every cadence switch.
type ObservationArmedMsg struct {
	Cadence observer.Interval
}

// StreamClosedMsg signals that the hub subscription was cancelled and
// no further snapshots will arrive.
type StreamClosedMsg struct{}

// ContextCancelledMsg signals that the parent context was cancelled,
// typically by an interrupt signal.
type ContextCancelledMsg struct {
	Err error
}

// TickMsg drives the periodic UI refresh.
type TickMsg time.Time

// RuntimeStatsMsg carries a sample of the watcher's own Go runtime
// accounting for the stats panel.
type RuntimeStatsMsg struct {
	HeapAlloc    uint64
	NumGC        uint32
	NumGoroutine int
}
