// Package config loads the watcher's runtime configuration from
// command-line flags and environment variables.
// Priority: CLI flags > environment variables > defaults.
package config

import (
	"flag"
	"io"

	apperrors "github.com/adya/memwatch/internal/errors"
	"github.com/adya/memwatch/internal/observer"
)

// EnvPrefix is prepended to every environment variable read by this
// package.
const EnvPrefix = "MEMWATCH_"

// AppConfig carries every runtime setting of the watcher.
type AppConfig struct {
	// Interval is the observation cadence.
	Interval observer.Interval
	// HTTPAddr is the listen address for the metrics and snapshot
	// server. Empty disables the server.
	HTTPAddr string
	// TUI selects the interactive dashboard.
	TUI bool
	// Interactive starts the line-oriented control console.
	Interactive bool
	// Once samples a single snapshot, prints it and exits.
	Once bool
	// JSON switches watch output to one JSON object per line.
	JSON bool
	// Quiet suppresses informational logging.
	Quiet bool
	// Verbose enables debug logging.
	Verbose bool
	// Count stops watch mode after this many samples. Zero keeps
	// sampling until interrupted.
	Count int
	// NoColor disables colored output regardless of terminal support.
	NoColor bool
	// Completion names a shell to emit a completion script for.
	Completion string
}

// ParseConfig parses args into an AppConfig, applying environment
// overrides for any flag not given on the command line.
//
// Parameters:
//   - programName: argv[0], used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: Destination for flag parse errors and usage text.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, or a configuration
//     error for invalid values or combinations.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var (
		cfg          AppConfig
		intervalName string
	)

	fs.StringVar(&intervalName, "interval", "default", "observation cadence: live, frequent, default or deferred")
	fs.StringVar(&cfg.HTTPAddr, "http", "", "listen address for the metrics and snapshot server (empty disables it)")
	fs.BoolVar(&cfg.TUI, "tui", false, "show the interactive dashboard")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "start the interactive control console")
	fs.BoolVar(&cfg.Once, "once", false, "print a single snapshot and exit")
	fs.BoolVar(&cfg.JSON, "json", false, "emit one JSON object per sample instead of text")
	fs.IntVar(&cfg.Count, "count", 0, "stop after this many samples (0 = until interrupted)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress informational logging")
	fs.BoolVar(&cfg.Quiet, "q", false, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", false, "shorthand for -verbose")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.StringVar(&cfg.Completion, "completion", "", "generate a completion script: bash, zsh, fish or powershell")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// A bad value on the command line is a hard error; environment
	// values are applied afterwards and fail soft.
	interval, err := observer.ParseInterval(intervalName)
	if err != nil {
		return AppConfig{}, err
	}
	cfg.Interval = interval

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate rejects flag combinations the watcher cannot honor.
func validate(cfg AppConfig) error {
	if cfg.Count < 0 {
		return apperrors.NewConfigError("count must not be negative, got %d", cfg.Count)
	}
	if cfg.Once && cfg.TUI {
		return apperrors.NewConfigError("-once and -tui are mutually exclusive")
	}
	if cfg.Once && cfg.Interactive {
		return apperrors.NewConfigError("-once and -interactive are mutually exclusive")
	}
	if cfg.TUI && cfg.Interactive {
		return apperrors.NewConfigError("-tui and -interactive are mutually exclusive")
	}
	if cfg.Quiet && cfg.Verbose {
		return apperrors.NewConfigError("-quiet and -verbose are mutually exclusive")
	}
	return nil
}
