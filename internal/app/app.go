// Package app assembles the watcher from its parts and runs whichever
// mode the configuration selects: a single sample, a streaming watch,
// the interactive console, or the dashboard, each optionally beside the
// HTTP server.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/adya/memwatch/internal/broadcast"
	"github.com/adya/memwatch/internal/cli"
	"github.com/adya/memwatch/internal/config"
	apperrors "github.com/adya/memwatch/internal/errors"
	"github.com/adya/memwatch/internal/logging"
	"github.com/adya/memwatch/internal/memstat"
	"github.com/adya/memwatch/internal/observer"
	"github.com/adya/memwatch/internal/server"
	"github.com/adya/memwatch/internal/taskinfo"
	"github.com/adya/memwatch/internal/tui"
	"github.com/adya/memwatch/internal/ui"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Application represents the memwatch application instance.
type Application struct {
	Config    config.AppConfig
	Querier   taskinfo.Querier
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithQuerier sets a custom kernel querier for the application.
func WithQuerier(q taskinfo.Querier) AppOption {
	return func(a *Application) { a.Querier = q }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "memwatch"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Querier == nil {
		querier, err := taskinfo.NewSystemQuerier()
		if err != nil {
			return nil, err
		}
		app.Querier = querier
	}

	return app, nil
}

// Run executes the application based on the configured mode.
//
// Parameters:
//   - ctx: Parent context; cancellation ends every mode.
//   - out: Destination for user-facing output.
//
// Returns:
//   - int: The process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(a.logLevel())
	ui.InitTheme(a.Config.NoColor)

	logOut := io.Writer(a.ErrWriter)
	if a.Config.TUI {
		// Log lines would tear the alternate screen.
		logOut = io.Discard
	}

	builder := memstat.NewBuilder(a.Querier)
	hub := broadcast.NewHub()
	engine := observer.NewEngine(builder, hub,
		observer.WithLogger(logging.NewLogger(logOut, "observer")))
	defer engine.StopObserving()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Once {
		return a.runOnce(ctx, engine, out)
	}

	// The HTTP surface, when enabled, runs beside the foreground mode
	// and stops with it.
	g, ctx := errgroup.WithContext(ctx)
	if a.Config.HTTPAddr != "" {
		srv := server.NewServer(a.Config.HTTPAddr, engine, hub,
			server.NewMetrics(), logging.NewLogger(logOut, "http"))
		g.Go(func() error { return srv.Run(ctx) })
	}

	var code int
	switch {
	case a.Config.TUI:
		code = tui.Run(ctx, engine, hub, a.Config, Version)
	case a.Config.Interactive:
		code = a.runConsole(engine, out)
	default:
		code = a.runWatch(ctx, engine, hub, out)
	}

	stopSignals()
	if err := g.Wait(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitCodeFor(err)
		}
	}
	return code
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// logLevel maps the verbosity flags onto a zerolog level.
func (a *Application) logLevel() zerolog.Level {
	switch {
	case a.Config.Quiet:
		return zerolog.ErrorLevel
	case a.Config.Verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
