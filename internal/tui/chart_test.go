package tui

import (
	"strings"
	"testing"

	"github.com/adya/memwatch/internal/format"
	"github.com/adya/memwatch/internal/memstat"
)

func chartSnapshot(resident, peak, used, total uint64) memstat.Snapshot {
	return memstat.Snapshot{
		Resident:     format.ByteSize(resident),
		PeakResident: format.ByteSize(peak),
		Used:         format.ByteSize(used),
		Total:        format.ByteSize(total),
	}
}

func TestChartModel_AddSnapshot(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)

	chart.AddSnapshot(chartSnapshot(1000, 2000, 2500, 10000))
	chart.AddSnapshot(chartSnapshot(1500, 2000, 5000, 10000))

	if got := chart.usedHistory.Last(); got != 0.5 {
		t.Errorf("expected last used fraction 0.5, got %f", got)
	}
	if got := chart.resHistory.Last(); got != 0.75 {
		t.Errorf("expected last resident fraction 0.75, got %f", got)
	}
	if chart.history.Len() != 2 {
		t.Errorf("expected 2 plot samples, got %d", chart.history.Len())
	}
}

func TestChartModel_AddSnapshot_ZeroPeak(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)

	chart.AddSnapshot(chartSnapshot(1000, 0, 500, 10000))

	if got := chart.resHistory.Last(); got != 0 {
		t.Errorf("expected 0 resident fraction for zero peak, got %f", got)
	}
}

func TestChartModel_Reset(t *testing.T) {
	chart := NewChartModel()
	chart.AddSnapshot(chartSnapshot(1000, 2000, 500, 10000))
	chart.AddSnapshot(chartSnapshot(1100, 2000, 600, 10000))

	chart.Reset()

	if chart.history.Len() != 0 {
		t.Error("expected plot history to be empty after reset")
	}
	if chart.resHistory.Len() != 0 {
		t.Error("expected resident history to be empty after reset")
	}
	if chart.usedHistory.Len() != 0 {
		t.Error("expected used history to be empty after reset")
	}
	if chart.haveSnap {
		t.Error("expected haveSnap false after reset")
	}
}

func TestChartModel_View(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)

	chart.AddSnapshot(chartSnapshot(1000, 2000, 3000, 10000))

	view := chart.View()
	if !strings.Contains(view, "Memory Chart") {
		t.Error("expected view to contain 'Memory Chart'")
	}
	if !strings.Contains(view, "Used") {
		t.Error("expected view to contain the usage gauge label")
	}
}

func TestChartModel_RenderUsageGauge(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)
	chart.AddSnapshot(chartSnapshot(1000, 2000, 5000, 10000))

	gauge := chart.renderUsageGauge()
	if !strings.Contains(gauge, "█") {
		t.Error("expected gauge to contain filled block character")
	}
	if !strings.Contains(gauge, "░") {
		t.Error("expected gauge to contain empty block character")
	}
	if !strings.Contains(gauge, "50.0%") {
		t.Error("expected gauge to show 50.0%")
	}
}

func TestChartModel_RenderUsageGauge_Zero(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)
	chart.AddSnapshot(chartSnapshot(1000, 2000, 0, 10000))

	gauge := chart.renderUsageGauge()
	if !strings.Contains(gauge, "░") {
		t.Error("expected gauge to contain empty blocks at zero usage")
	}
	if !strings.Contains(gauge, "0.0%") {
		t.Error("expected gauge to show 0.0%")
	}
}

func TestChartModel_RenderUsageGauge_Full(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)
	chart.AddSnapshot(chartSnapshot(1000, 2000, 10000, 10000))

	gauge := chart.renderUsageGauge()
	if !strings.Contains(gauge, "█") {
		t.Error("expected gauge to contain filled blocks at full usage")
	}
	if !strings.Contains(gauge, "100.0%") {
		t.Error("expected gauge to show 100.0%")
	}
}

func TestChartModel_RenderUsageGauge_TooNarrow(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(10, 5) // too narrow for a gauge

	gauge := chart.renderUsageGauge()
	if gauge != "" {
		t.Error("expected empty gauge for very narrow chart")
	}
}

func TestChartModel_View_ContainsSparklines(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15) // height >= 10, sparklines visible

	chart.AddSnapshot(chartSnapshot(1000, 2000, 5000, 10000))
	chart.AddSnapshot(chartSnapshot(1200, 2000, 6000, 10000))

	view := chart.View()
	if !strings.Contains(view, "RES") {
		t.Error("expected view to contain 'RES' sparkline label")
	}
	if !strings.Contains(view, "USE") {
		t.Error("expected view to contain 'USE' sparkline label")
	}
}

func TestChartModel_View_HidesSparklines_SmallHeight(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 8) // height < 10, sparklines hidden

	chart.AddSnapshot(chartSnapshot(1000, 2000, 5000, 10000))

	view := chart.View()
	if strings.Contains(view, "RES") {
		t.Error("expected sparklines to be hidden for small height")
	}
}

func TestChartModel_SetSize_ResizesBuffers(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15)

	expectedSpark := 50 - sparklineGutter
	if chart.resHistory.Cap() != expectedSpark {
		t.Errorf("expected resident buffer cap %d, got %d", expectedSpark, chart.resHistory.Cap())
	}
	if chart.usedHistory.Cap() != expectedSpark {
		t.Errorf("expected used buffer cap %d, got %d", expectedSpark, chart.usedHistory.Cap())
	}
	expectedPlot := (50 - 4) * 2
	if chart.history.Cap() != expectedPlot {
		t.Errorf("expected plot buffer cap %d, got %d", expectedPlot, chart.history.Cap())
	}
}
