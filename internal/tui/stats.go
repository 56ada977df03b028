package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adya/memwatch/internal/format"
	"github.com/adya/memwatch/internal/memstat"
)

// StatsModel displays the latest kernel snapshot next to the watcher's
// own Go runtime accounting.
type StatsModel struct {
	snap       memstat.Snapshot
	haveSnap   bool
	samples    int
	heapAlloc  uint64
	goroutines int
	width      int
	height     int
}

// NewStatsModel creates a new stats panel.
func NewStatsModel() StatsModel {
	return StatsModel{}
}

// SetSize updates dimensions.
func (m *StatsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateSnapshot stores the latest observed snapshot.
func (m *StatsModel) UpdateSnapshot(snap memstat.Snapshot) {
	m.snap = snap
	m.haveSnap = true
	m.samples++
}

// UpdateRuntime stores the latest Go runtime sample.
func (m *StatsModel) UpdateRuntime(msg RuntimeStatsMsg) {
	m.heapAlloc = msg.HeapAlloc
	m.goroutines = msg.NumGoroutine
}

// View renders the stats panel.
func (m StatsModel) View() string {
	var rows strings.Builder

	rows.WriteString(metricLabelStyle.Render(" Stats"))

	// Compact top line: Used: X / Y (Z%)
	usedStr := "-"
	pctStr := "-"
	if m.haveSnap {
		usedStr = fmt.Sprintf("%s / %s", m.snap.Used, m.snap.Total)
		pctStr = format.FormatPercent(m.snap.UsedFraction())
	}
	topLine := fmt.Sprintf("  %s %s %s",
		metricLabelStyle.Render("Used:"),
		metricValueStyle.Render(usedStr),
		usageStyle(m.snap.UsedFraction()).Render("("+pctStr+")"))
	rows.WriteString("\n")
	rows.WriteString(topLine)

	colWidth := (m.width - 6) / 2

	leftCol := []string{
		formatMetricCol("Resident:", m.byteValue(m.snap.Resident), colWidth),
		formatMetricCol("Virtual:", m.byteValue(m.snap.Virtual), colWidth),
		formatMetricCol("Go heap:", format.ByteSize(m.heapAlloc).String(), colWidth),
	}
	rightCol := []string{
		formatMetricCol("Peak:", m.byteValue(m.snap.PeakResident), colWidth),
		formatMetricCol("Samples:", fmt.Sprintf("%d", m.samples), colWidth),
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.goroutines), colWidth),
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rows.String())
}

// byteValue renders a size, or a dash before the first snapshot.
func (m StatsModel) byteValue(b format.ByteSize) string {
	if !m.haveSnap {
		return "-"
	}
	return b.String()
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
