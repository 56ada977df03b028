package tui

import (
	"strings"
	"testing"
)

func TestStatsModel_UpdateSnapshot(t *testing.T) {
	m := NewStatsModel()

	snap := chartSnapshot(1000, 2000, 500, 10000)
	m.UpdateSnapshot(snap)
	m.UpdateSnapshot(snap)

	if !m.haveSnap {
		t.Error("expected haveSnap after update")
	}
	if m.snap != snap {
		t.Error("expected the latest snapshot to be stored")
	}
	if m.samples != 2 {
		t.Errorf("expected 2 samples, got %d", m.samples)
	}
}

func TestStatsModel_UpdateRuntime(t *testing.T) {
	m := NewStatsModel()

	m.UpdateRuntime(RuntimeStatsMsg{
		HeapAlloc:    1024 * 1024 * 50,
		NumGC:        10,
		NumGoroutine: 8,
	})

	if m.heapAlloc != 1024*1024*50 {
		t.Errorf("expected heapAlloc %d, got %d", 1024*1024*50, m.heapAlloc)
	}
	if m.goroutines != 8 {
		t.Errorf("expected 8 goroutines, got %d", m.goroutines)
	}
}

func TestStatsModel_View(t *testing.T) {
	m := NewStatsModel()
	m.SetSize(44, 7)

	m.UpdateSnapshot(chartSnapshot(1000, 2000, 500, 10000))
	m.UpdateRuntime(RuntimeStatsMsg{HeapAlloc: 4096, NumGoroutine: 8})

	view := m.View()
	for _, want := range []string{
		"Stats",
		"Used:",
		"500 B / 9.8 KiB",
		"(5.0%)",
		"Resident:",
		"Peak:",
		"Virtual:",
		"Go heap:",
		"Samples:",
		"Goroutines:",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestStatsModel_View_BeforeFirstSnapshot(t *testing.T) {
	m := NewStatsModel()
	m.SetSize(44, 7)

	view := m.View()
	if !strings.Contains(view, "-") {
		t.Error("expected placeholder dashes before the first snapshot")
	}
}

func TestStatsModel_SetSize(t *testing.T) {
	m := NewStatsModel()
	m.SetSize(50, 20)

	if m.width != 50 {
		t.Errorf("expected width 50, got %d", m.width)
	}
	if m.height != 20 {
		t.Errorf("expected height 20, got %d", m.height)
	}
}

func TestFormatMetricCol(t *testing.T) {
	col := formatMetricCol("Resident:", "50.0 MiB", 30)
	if !strings.Contains(col, "Resident") {
		t.Error("expected column to contain label")
	}
	if !strings.Contains(col, "50.0 MiB") {
		t.Error("expected column to contain value")
	}
}
