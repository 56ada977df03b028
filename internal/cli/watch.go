package cli

import (
	"context"
	"io"

	"github.com/briandowns/spinner"

	"github.com/adya/memwatch/internal/broadcast"
)

// Watch renders snapshots delivered on sub until the context is
// cancelled, the subscription closes, or count snapshots have been
// printed. A count of zero or less means unlimited. In text mode a
// spinner runs until the first snapshot arrives so a slow baseline
// does not look like a hang.
//
// The caller owns the subscription: Watch never unsubscribes, so the
// same hub can keep feeding other consumers after Watch returns.
//
// Parameters:
//   - ctx: Context controlling the watch lifetime.
//   - sub: The subscription to drain.
//   - config: Output configuration for each snapshot.
//   - count: The number of snapshots to render; <= 0 means unlimited.
//   - out: The output writer.
//
// Returns:
//   - int: The number of snapshots rendered.
//   - error: A write error from snapshot encoding, nil otherwise.
func Watch(ctx context.Context, sub *broadcast.Subscription, config OutputConfig, count int, out io.Writer) (int, error) {
	var spin Spinner
	if !config.JSON && !config.Quiet {
		spin = newSpinner(spinner.WithWriter(out))
		spin.UpdateSuffix(" Waiting for first sample...")
		spin.Start()
	}
	stopSpinner := func() {
		if spin != nil {
			spin.Stop()
			spin = nil
		}
	}
	defer stopSpinner()

	rendered := 0
	for {
		select {
		case <-ctx.Done():
			return rendered, nil
		case snap, ok := <-sub.C():
			if !ok {
				return rendered, nil
			}
			stopSpinner()
			if err := DisplaySnapshot(out, snap, config); err != nil {
				return rendered, err
			}
			rendered++
			if count > 0 && rendered >= count {
				return rendered, nil
			}
		}
	}
}
