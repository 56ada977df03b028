package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/adya/memwatch/internal/observer"
	"github.com/adya/memwatch/internal/ui"
)

// defaultQueryTimeout bounds on-demand samples when the configuration
// names no timeout.
const defaultQueryTimeout = 5 * time.Second

// ConsoleConfig holds configuration for the interactive console session.
type ConsoleConfig struct {
	// Interval is the cadence used when a start command names none.
	Interval observer.Interval
	// QueryTimeout is the maximum duration for each on-demand sample.
	QueryTimeout time.Duration
	// Output controls how sampled snapshots are rendered.
	Output OutputConfig
}

// Console represents an interactive session controlling one
// observation engine.
type Console struct {
	config ConsoleConfig
	engine *observer.Engine
	in     io.Reader
	out    io.Writer
}

// NewConsole creates a new Console instance.
//
// Parameters:
//   - engine: The observation engine the session controls.
//   - config: Console configuration.
//
// Returns:
//   - *Console: A new Console instance.
func NewConsole(engine *observer.Engine, config ConsoleConfig) *Console {
	if config.QueryTimeout <= 0 {
		config.QueryTimeout = defaultQueryTimeout
	}

	return &Console{
		config: config,
		engine: engine,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (c *Console) SetInput(in io.Reader) {
	c.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (c *Console) SetOutput(out io.Writer) {
	c.out = out
}

// Start begins the interactive console session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (c *Console) Start() {
	c.printBanner()
	c.printHelp()
	fmt.Fprintln(c.out)

	reader := bufio.NewReader(c.in)

	for {
		fmt.Fprint(c.out, ui.ColorGreen()+"memwatch> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(c.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !c.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the console welcome banner.
func (c *Console) printBanner() {
	fmt.Fprintf(c.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(c.out, "%s║%s     %s📊 Memory Watcher - Interactive Mode%s                  %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(c.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (c *Console) printHelp() {
	fmt.Fprintf(c.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(c.out, "  %ssample%s           - Take one snapshot right now\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(c.out, "  %sstart [cadence]%s  - Begin periodic observation (%s)\n", ui.ColorYellow(), ui.ColorReset(), c.cadenceList())
	fmt.Fprintf(c.out, "  %sstop%s             - Halt periodic observation\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(c.out, "  %sintervals%s        - List observation cadences\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(c.out, "  %sraw%s              - Toggle raw byte-count output\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(c.out, "  %sruntime%s          - Show Go runtime memory stats\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(c.out, "  %sstatus%s           - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(c.out, "  %shelp%s             - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(c.out, "  %sexit%s / %squit%s      - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// cadences lists the observation intervals from fastest to slowest.
var cadences = []observer.Interval{
	observer.IntervalLive,
	observer.IntervalFrequent,
	observer.IntervalDefault,
	observer.IntervalDeferred,
}

// cadenceList returns a comma-separated list of cadence names.
func (c *Console) cadenceList() string {
	names := make([]string, 0, len(cadences))
	for _, interval := range cadences {
		names = append(names, interval.String())
	}
	return strings.Join(names, ", ")
}

// processCommand parses and executes a user command.
// Returns false if the console should exit.
func (c *Console) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "sample", "s":
		c.cmdSample()
	case "start", "w":
		c.cmdStart(args)
	case "stop":
		c.cmdStop()
	case "intervals", "ls":
		c.cmdIntervals()
	case "raw":
		c.cmdRaw()
	case "runtime", "gc":
		DisplayRuntimeStats(c.out)
	case "status", "st":
		c.cmdStatus()
	case "help", "h", "?":
		c.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(c.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// Try to interpret as a cadence name for a quick start
		if _, err := observer.ParseInterval(cmd); err == nil {
			c.cmdStart([]string{cmd})
		} else {
			fmt.Fprintf(c.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(c.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// cmdSample handles the "sample" command.
func (c *Console) cmdSample() {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.QueryTimeout)
	defer cancel()

	snap, err := c.engine.Snapshot(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	if err := DisplaySnapshot(c.out, snap, c.config.Output); err != nil {
		fmt.Fprintf(c.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
}

// cmdStart handles the "start" command.
func (c *Console) cmdStart(args []string) {
	interval := c.config.Interval
	if len(args) > 0 {
		parsed, err := observer.ParseInterval(strings.ToLower(args[0]))
		if err != nil {
			fmt.Fprintf(c.out, "%sUnknown cadence: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
			fmt.Fprintf(c.out, "Available cadences: %s\n", c.cadenceList())
			return
		}
		interval = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.config.QueryTimeout)
	defer cancel()

	c.engine.StartObserving(ctx, interval)
	c.config.Interval = interval
	fmt.Fprintf(c.out, "Observation running at the %s%s%s cadence (every %s%s%s).\n",
		ui.ColorGreen(), interval, ui.ColorReset(),
		ui.ColorCyan(), interval.Duration(), ui.ColorReset())
}

// cmdStop handles the "stop" command.
func (c *Console) cmdStop() {
	if _, ok := c.engine.Observing(); !ok {
		fmt.Fprintf(c.out, "Observation is not running.\n")
		return
	}

	c.engine.StopObserving()
	fmt.Fprintf(c.out, "Observation %sstopped%s.\n", ui.ColorGreen(), ui.ColorReset())
}

// cmdIntervals handles the "intervals" command.
func (c *Console) cmdIntervals() {
	marked := c.config.Interval
	if armed, ok := c.engine.Observing(); ok {
		marked = armed
	}

	fmt.Fprintf(c.out, "\n%sObservation cadences:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, interval := range cadences {
		marker := "  "
		if interval == marked {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(c.out, "%s%s%-10s%s - every %s\n",
			marker, ui.ColorYellow(), interval, ui.ColorReset(), interval.Duration())
	}
	fmt.Fprintln(c.out)
}

// cmdRaw toggles raw byte-count output mode.
func (c *Console) cmdRaw() {
	c.config.Output.Quiet = !c.config.Output.Quiet
	status := "disabled"
	if c.config.Output.Quiet {
		status = "enabled"
	}
	fmt.Fprintf(c.out, "Raw output: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays current console configuration.
func (c *Console) cmdStatus() {
	observing := "no"
	if armed, ok := c.engine.Observing(); ok {
		observing = fmt.Sprintf("yes (%s, every %s)", armed, armed.Duration())
	}

	rawStatus := "no"
	if c.config.Output.Quiet {
		rawStatus = "yes"
	}

	fmt.Fprintf(c.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(c.out, "  Process:        %s%d%s\n", ui.ColorCyan(), os.Getpid(), ui.ColorReset())
	fmt.Fprintf(c.out, "  Observing:      %s%s%s\n", ui.ColorCyan(), observing, ui.ColorReset())
	fmt.Fprintf(c.out, "  Next cadence:   %s%s%s\n", ui.ColorCyan(), c.config.Interval, ui.ColorReset())
	fmt.Fprintf(c.out, "  Query timeout:  %s%s%s\n", ui.ColorCyan(), c.config.QueryTimeout, ui.ColorReset())
	fmt.Fprintf(c.out, "  Raw output:     %s%s%s\n", ui.ColorCyan(), rawStatus, ui.ColorReset())
	fmt.Fprintln(c.out)
}
