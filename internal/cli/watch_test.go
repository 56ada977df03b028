package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/adya/memwatch/internal/broadcast"
)

func TestWatch_RendersBufferedSnapshots(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub()
	sub := hub.Subscribe()
	for i := 0; i < 3; i++ {
		hub.Publish(exampleSnapshot())
	}

	var buf bytes.Buffer
	rendered, err := Watch(context.Background(), sub, OutputConfig{Quiet: true}, 3, &buf)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if rendered != 3 {
		t.Errorf("rendered = %d, want 3", rendered)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 output lines, got %d:\n%s", len(lines), buf.String())
	}
}

func TestWatch_CountLimit(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub()
	sub := hub.Subscribe()
	for i := 0; i < 5; i++ {
		hub.Publish(exampleSnapshot())
	}

	var buf bytes.Buffer
	rendered, err := Watch(context.Background(), sub, OutputConfig{Quiet: true}, 2, &buf)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if rendered != 2 {
		t.Errorf("rendered = %d, want 2", rendered)
	}
}

func TestWatch_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub()
	sub := hub.Subscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	done := make(chan struct{})
	var rendered int
	var err error
	go func() {
		defer close(done)
		rendered, err = Watch(ctx, sub, OutputConfig{Quiet: true}, 0, &buf)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after context cancellation")
	}

	if err != nil {
		t.Errorf("Watch() error = %v, want nil", err)
	}
	if rendered != 0 {
		t.Errorf("rendered = %d, want 0", rendered)
	}
}

func TestWatch_StopsWhenSubscriptionCloses(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub()
	sub := hub.Subscribe()
	hub.Publish(exampleSnapshot())
	hub.Unsubscribe(sub)

	// The buffered snapshot is still delivered before the closed
	// channel ends the loop.
	var buf bytes.Buffer
	rendered, err := Watch(context.Background(), sub, OutputConfig{Quiet: true}, 0, &buf)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if rendered != 1 {
		t.Errorf("rendered = %d, want 1", rendered)
	}
}

func TestWatch_SpinnerLifecycle(t *testing.T) {
	usePlainTheme(t)

	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	hub := broadcast.NewHub()
	sub := hub.Subscribe()
	hub.Publish(exampleSnapshot())

	var buf bytes.Buffer
	rendered, err := Watch(context.Background(), sub, OutputConfig{}, 1, &buf)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if rendered != 1 {
		t.Errorf("rendered = %d, want 1", rendered)
	}

	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped before the first line")
	}
	if mockS.suffix == "" {
		t.Error("Spinner should carry a waiting message")
	}
}

func TestWatch_NoSpinnerInMachineModes(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	created := false
	newSpinner = func(options ...spinner.Option) Spinner {
		created = true
		return &MockSpinner{}
	}

	for _, config := range []OutputConfig{{JSON: true}, {Quiet: true}} {
		hub := broadcast.NewHub()
		sub := hub.Subscribe()
		hub.Publish(exampleSnapshot())

		var buf bytes.Buffer
		if _, err := Watch(context.Background(), sub, config, 1, &buf); err != nil {
			t.Fatalf("Watch() error = %v", err)
		}
	}

	if created {
		t.Error("Machine-readable modes should not start a spinner")
	}
}
