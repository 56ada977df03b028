package observer

import "time"

// Ticker abstracts the recurring timer so tests can drive the engine
// with a controllable clock.
type Ticker interface {
	// Chan returns the channel ticks arrive on.
	Chan() <-chan time.Time
	// Stop disarms the ticker. It does not close the channel.
	Stop()
}

// TickerFactory builds the ticker for one observation session.
type TickerFactory func(d time.Duration) Ticker

// realTicker adapts time.Ticker to the Ticker interface.
type realTicker struct {
	t *time.Ticker
}

func (rt *realTicker) Chan() <-chan time.Time {
	return rt.t.C
}

func (rt *realTicker) Stop() {
	rt.t.Stop()
}

// newRealTicker is the default TickerFactory.
func newRealTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}
