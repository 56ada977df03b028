package app

import (
	"context"
	"fmt"
	"io"

	"github.com/adya/memwatch/internal/broadcast"
	"github.com/adya/memwatch/internal/cli"
	apperrors "github.com/adya/memwatch/internal/errors"
	"github.com/adya/memwatch/internal/observer"
)

// outputConfig maps the application flags onto the CLI output options.
func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		JSON:    a.Config.JSON,
		Quiet:   a.Config.Quiet,
		Verbose: a.Config.Verbose,
	}
}

// runOnce samples a single snapshot and prints it.
func (a *Application) runOnce(ctx context.Context, engine *observer.Engine, out io.Writer) int {
	snap, err := engine.Snapshot(ctx)
	if err != nil {
		cli.DisplayQueryError(a.ErrWriter, err)
		return apperrors.ExitCodeFor(err)
	}

	if err := cli.DisplaySnapshot(out, snap, a.outputConfig()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing snapshot: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runWatch arms the engine and streams snapshots to out until the
// sample limit is reached or the context ends.
func (a *Application) runWatch(ctx context.Context, engine *observer.Engine, hub *broadcast.Hub, out io.Writer) int {
	outputCfg := a.outputConfig()
	if !outputCfg.JSON && !outputCfg.Quiet {
		cli.DisplayWatchHeader(out, a.Config.Interval, a.Config.Count)
	}

	// Subscribe before arming so the baseline snapshot is not missed.
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	engine.StartObserving(ctx, a.Config.Interval)

	rendered, err := cli.Watch(ctx, sub, outputCfg, a.Config.Count, out)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing samples: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	if !outputCfg.JSON && !outputCfg.Quiet {
		fmt.Fprintf(out, "\nObserved %d samples.\n", rendered)
	}
	return apperrors.ExitSuccess
}

// runConsole hands the terminal to the interactive control console.
func (a *Application) runConsole(engine *observer.Engine, out io.Writer) int {
	console := cli.NewConsole(engine, cli.ConsoleConfig{
		Interval: a.Config.Interval,
		Output:   a.outputConfig(),
	})
	console.SetOutput(out)
	console.Start()
	return apperrors.ExitSuccess
}
