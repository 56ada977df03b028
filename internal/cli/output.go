// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySnapshot], [DisplayWatchHeader].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatSnapshotLine], [FormatQuietSnapshot].
//
//   - Encode* functions write machine-readable output to an [io.Writer].
//     Examples: [EncodeSnapshotJSON].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/adya/memwatch/internal/broadcast"
	"github.com/adya/memwatch/internal/format"
	"github.com/adya/memwatch/internal/memstat"
	"github.com/adya/memwatch/internal/observer"
	"github.com/adya/memwatch/internal/ui"
)

// OutputConfig holds configuration for snapshot output.
type OutputConfig struct {
	// JSON emits one JSON object per snapshot instead of text.
	JSON bool
	// Quiet emits bare numbers suitable for scripting.
	Quiet bool
	// Verbose adds the virtual size to text lines.
	Verbose bool
}

// usageColor picks the color for a used fraction: green while
// comfortable, yellow when elevated, red under pressure.
func usageColor(fraction float64) string {
	switch {
	case fraction >= 0.9:
		return ui.ColorRed()
	case fraction >= 0.7:
		return ui.ColorYellow()
	default:
		return ui.ColorGreen()
	}
}

// FormatSnapshotLine renders one snapshot as a colorized text line:
// capture time, resident and peak sizes, and the footprint against
// total physical memory. Verbose adds the virtual size.
//
// Parameters:
//   - snap: The snapshot to render.
//   - verbose: Whether to include the virtual address space size.
//
// Returns:
//   - string: The formatted line, without a trailing newline.
func FormatSnapshotLine(snap memstat.Snapshot, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s%s%s  ",
		ui.ColorDim(), snap.Taken.Format("15:04:05"), ui.ColorReset())
	fmt.Fprintf(&b, "res %s%s%s  peak %s%s%s  ",
		ui.ColorCyan(), snap.Resident, ui.ColorReset(),
		ui.ColorCyan(), snap.PeakResident, ui.ColorReset())
	if verbose {
		fmt.Fprintf(&b, "virt %s%s%s  ", ui.ColorCyan(), snap.Virtual, ui.ColorReset())
	}

	fraction := snap.UsedFraction()
	color := usageColor(fraction)
	fmt.Fprintf(&b, "used %s%s%s / %s (%s%s%s)",
		color, snap.Used, ui.ColorReset(),
		snap.Total,
		color, format.FormatPercent(fraction), ui.ColorReset())

	return b.String()
}

// FormatQuietSnapshot renders a snapshot as one machine-friendly line:
// resident, peak, virtual, used and total in raw bytes followed by the
// used fraction. Field order is stable for awk-style consumers.
//
// Parameters:
//   - snap: The snapshot to render.
//
// Returns:
//   - string: The formatted line, without a trailing newline.
func FormatQuietSnapshot(snap memstat.Snapshot) string {
	return fmt.Sprintf("%d %d %d %d %d %.6f",
		snap.Resident.Bytes(),
		snap.PeakResident.Bytes(),
		snap.Virtual.Bytes(),
		snap.Used.Bytes(),
		snap.Total.Bytes(),
		snap.UsedFraction())
}

// EncodeSnapshotJSON writes snap as a single JSON line using the same
// event envelope as the HTTP snapshot endpoint.
//
// Parameters:
//   - out: The output writer.
//   - snap: The snapshot to encode.
//
// Returns:
//   - error: An encoding or write error.
func EncodeSnapshotJSON(out io.Writer, snap memstat.Snapshot) error {
	return json.NewEncoder(out).Encode(map[string]any{
		"event":              broadcast.EventName,
		broadcast.PayloadKey: snap,
	})
}

// DisplaySnapshot outputs one snapshot in the mode the configuration
// selects: JSON, quiet numbers, or the colorized text line.
//
// Parameters:
//   - out: The output writer.
//   - snap: The snapshot to display.
//   - config: Output configuration.
//
// Returns:
//   - error: A write error from JSON encoding, nil otherwise.
func DisplaySnapshot(out io.Writer, snap memstat.Snapshot, config OutputConfig) error {
	if config.JSON {
		return EncodeSnapshotJSON(out, snap)
	}
	if config.Quiet {
		fmt.Fprintln(out, FormatQuietSnapshot(snap))
		return nil
	}
	fmt.Fprintln(out, FormatSnapshotLine(snap, config.Verbose))
	return nil
}

// DisplayWatchHeader prints the observation parameters before watch
// mode starts streaming samples.
//
// Parameters:
//   - out: The writer for standard output.
//   - interval: The observation cadence.
//   - count: The sample limit; zero or less means unlimited.
func DisplayWatchHeader(out io.Writer, interval observer.Interval, count int) {
	fmt.Fprintf(out, "--- Observation Configuration ---\n")
	fmt.Fprintf(out, "Watching process %s%d%s at the %s%s%s cadence (every %s%s%s).\n",
		ui.ColorCyan(), os.Getpid(), ui.ColorReset(),
		ui.ColorYellow(), interval, ui.ColorReset(),
		ui.ColorYellow(), interval.Duration(), ui.ColorReset())
	if count > 0 {
		fmt.Fprintf(out, "Stopping after %s%d%s samples.\n",
			ui.ColorCyan(), count, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// DisplayQueryError reports a failed snapshot query.
//
// Parameters:
//   - out: The writer for error output.
//   - err: The query error to report.
func DisplayQueryError(out io.Writer, err error) {
	fmt.Fprintf(out, "%sQuery failed: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}

// DisplayRuntimeStats shows the Go runtime's own memory accounting,
// complementing the kernel-level snapshot with allocator detail.
func DisplayRuntimeStats(out io.Writer) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	fmt.Fprintf(out, "\nGo Runtime Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.ByteSize(m.HeapAlloc))
	fmt.Fprintf(out, "  Heap reserved:   %s\n", format.ByteSize(m.HeapSys))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.ByteSize(m.TotalAlloc))
	fmt.Fprintf(out, "  Goroutines:      %d\n", runtime.NumGoroutine())
	fmt.Fprintf(out, "  GC cycles:       %d\n", m.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(m.PauseTotalNs)/1e6)
}
