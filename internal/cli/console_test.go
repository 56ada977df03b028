package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/adya/memwatch/internal/broadcast"
	apperrors "github.com/adya/memwatch/internal/errors"
	"github.com/adya/memwatch/internal/memstat"
	"github.com/adya/memwatch/internal/observer"
)

// stubSnapshotter returns a fixed snapshot or error from every build.
type stubSnapshotter struct {
	snap memstat.Snapshot
	err  error
}

func (s stubSnapshotter) Build(context.Context) (memstat.Snapshot, error) {
	return s.snap, s.err
}

// newTestConsole wires a console to an engine backed by source and
// captures its output.
func newTestConsole(t *testing.T, source stubSnapshotter) (*Console, *observer.Engine, *bytes.Buffer) {
	t.Helper()

	hub := broadcast.NewHub()
	engine := observer.NewEngine(source, hub)
	t.Cleanup(engine.StopObserving)

	console := NewConsole(engine, ConsoleConfig{})
	var buf bytes.Buffer
	console.SetOutput(&buf)
	return console, engine, &buf
}

// runSession feeds a scripted command sequence to the console and
// returns everything it printed.
func runSession(t *testing.T, source stubSnapshotter, script string) (*observer.Engine, string) {
	t.Helper()

	console, engine, buf := newTestConsole(t, source)
	console.SetInput(strings.NewReader(script))
	console.Start()
	return engine, buf.String()
}

func TestConsole_SampleCommand(t *testing.T) {
	usePlainTheme(t)

	_, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()}, "sample\nexit\n")

	if !strings.Contains(output, "res 1000 B") {
		t.Errorf("Expected a rendered snapshot, got:\n%s", output)
	}
	if !strings.Contains(output, "Goodbye!") {
		t.Errorf("Expected a farewell on exit, got:\n%s", output)
	}
}

func TestConsole_SampleQueryFailure(t *testing.T) {
	usePlainTheme(t)

	source := stubSnapshotter{err: apperrors.NewQueryError("task_basic_info", nil)}
	_, output := runSession(t, source, "sample\nexit\n")

	if !strings.Contains(output, "Error:") {
		t.Errorf("Expected an error report, got:\n%s", output)
	}
	if !strings.Contains(output, "task_basic_info") {
		t.Errorf("Expected the failing record name, got:\n%s", output)
	}
}

func TestConsole_StartStop(t *testing.T) {
	usePlainTheme(t)

	engine, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()},
		"start live\nstatus\nstop\nexit\n")

	if !strings.Contains(output, "Observation running at the live cadence") {
		t.Errorf("Expected a start confirmation, got:\n%s", output)
	}
	if !strings.Contains(output, "yes (live, every 100ms)") {
		t.Errorf("Status should report the armed cadence, got:\n%s", output)
	}
	if !strings.Contains(output, "stopped") {
		t.Errorf("Expected a stop confirmation, got:\n%s", output)
	}
	if _, ok := engine.Observing(); ok {
		t.Error("Engine should be idle after the stop command")
	}
}

func TestConsole_StartUnknownCadence(t *testing.T) {
	usePlainTheme(t)

	engine, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()},
		"start hourly\nexit\n")

	if !strings.Contains(output, "Unknown cadence: hourly") {
		t.Errorf("Expected a cadence error, got:\n%s", output)
	}
	if !strings.Contains(output, "Available cadences: live, frequent, default, deferred") {
		t.Errorf("Expected the valid cadence list, got:\n%s", output)
	}
	if _, ok := engine.Observing(); ok {
		t.Error("A rejected start should leave the engine idle")
	}
}

func TestConsole_BareCadenceShortcut(t *testing.T) {
	usePlainTheme(t)

	engine, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()},
		"frequent\nexit\n")

	if !strings.Contains(output, "Observation running at the frequent cadence") {
		t.Errorf("Bare cadence name should start observation, got:\n%s", output)
	}
	armed, ok := engine.Observing()
	if !ok || armed != observer.IntervalFrequent {
		t.Errorf("Observing() = (%v, %v), want (frequent, true)", armed, ok)
	}
}

func TestConsole_StopWhenIdle(t *testing.T) {
	usePlainTheme(t)

	_, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()}, "stop\nexit\n")

	if !strings.Contains(output, "Observation is not running.") {
		t.Errorf("Idle stop should be reported, got:\n%s", output)
	}
}

func TestConsole_RawToggle(t *testing.T) {
	usePlainTheme(t)

	_, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()},
		"raw\nsample\nraw\nexit\n")

	if !strings.Contains(output, "Raw output: enabled") {
		t.Errorf("Expected the toggle to report enabled, got:\n%s", output)
	}
	if !strings.Contains(output, "1000 2000 5000 500 10000 0.050000") {
		t.Errorf("Raw mode should print bare numbers, got:\n%s", output)
	}
	if !strings.Contains(output, "Raw output: disabled") {
		t.Errorf("Expected the toggle to report disabled, got:\n%s", output)
	}
}

func TestConsole_Intervals(t *testing.T) {
	usePlainTheme(t)

	_, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()}, "intervals\nexit\n")

	for _, s := range []string{"live", "frequent", "default", "deferred", "►"} {
		if !strings.Contains(output, s) {
			t.Errorf("Expected cadence listing to contain %q, got:\n%s", s, output)
		}
	}
}

func TestConsole_RuntimeStats(t *testing.T) {
	usePlainTheme(t)

	_, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()}, "runtime\nexit\n")

	if !strings.Contains(output, "Go Runtime Stats:") {
		t.Errorf("Expected runtime stats output, got:\n%s", output)
	}
}

func TestConsole_Status_Defaults(t *testing.T) {
	usePlainTheme(t)

	_, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()}, "status\nexit\n")

	if !strings.Contains(output, "Observing:      no") {
		t.Errorf("Idle status should report no observation, got:\n%s", output)
	}
	if !strings.Contains(output, "Query timeout:  5s") {
		t.Errorf("Status should report the default query timeout, got:\n%s", output)
	}
}

func TestConsole_UnknownCommand(t *testing.T) {
	usePlainTheme(t)

	_, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()}, "frobnicate\nexit\n")

	if !strings.Contains(output, "Unknown command: frobnicate") {
		t.Errorf("Expected an unknown-command report, got:\n%s", output)
	}
	if !strings.Contains(output, "help") {
		t.Errorf("Expected a help tip, got:\n%s", output)
	}
}

func TestConsole_EOFEndsSession(t *testing.T) {
	usePlainTheme(t)

	_, output := runSession(t, stubSnapshotter{snap: exampleSnapshot()}, "help\n")

	if !strings.Contains(output, "Goodbye!") {
		t.Errorf("EOF should end the session with a farewell, got:\n%s", output)
	}
}
