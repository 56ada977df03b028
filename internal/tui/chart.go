package tui

import (
	"strings"

	"github.com/adya/memwatch/internal/format"
	"github.com/adya/memwatch/internal/memstat"
)

// sparklineGutter is the horizontal room reserved next to a sparkline
// for its label, the current value and the panel borders.
const sparklineGutter = 17

// sparklinesMinHeight is the panel height below which the sparkline
// rows are dropped to keep the history plot readable.
const sparklinesMinHeight = 10

// ChartModel plots the observed memory history: a pressure gauge for
// the latest sample, a braille plot of the used fraction over time, and
// sparklines for the resident set and the footprint.
type ChartModel struct {
	// history holds used-fraction samples for the braille plot, two
	// samples per character column.
	history *RingBuffer
	// resHistory holds resident-set samples relative to the peak.
	resHistory *RingBuffer
	// usedHistory holds used-fraction samples for the sparkline row.
	usedHistory *RingBuffer

	lastSnap memstat.Snapshot
	haveSnap bool
	width    int
	height   int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		history:     NewRingBuffer(128),
		resHistory:  NewRingBuffer(32),
		usedHistory: NewRingBuffer(32),
	}
}

// SetSize updates dimensions and resizes the histories to the new
// drawable width.
func (m *ChartModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.history.Resize((w - 4) * 2)
	m.resHistory.Resize(w - sparklineGutter)
	m.usedHistory.Resize(w - sparklineGutter)
}

// AddSnapshot folds one observed snapshot into the histories.
func (m *ChartModel) AddSnapshot(snap memstat.Snapshot) {
	frac := snap.UsedFraction()
	m.history.Push(frac)
	m.usedHistory.Push(frac)

	resFrac := 0.0
	if snap.PeakResident > 0 {
		resFrac = float64(snap.Resident) / float64(snap.PeakResident)
	}
	m.resHistory.Push(resFrac)

	m.lastSnap = snap
	m.haveSnap = true
}

// Reset clears all histories.
func (m *ChartModel) Reset() {
	m.history.Reset()
	m.resHistory.Reset()
	m.usedHistory.Reset()
	m.lastSnap = memstat.Snapshot{}
	m.haveSnap = false
}

// View renders the chart panel.
func (m ChartModel) View() string {
	var rows strings.Builder

	rows.WriteString(metricLabelStyle.Render(" Memory Chart"))
	rows.WriteString("\n ")
	rows.WriteString(m.renderUsageGauge())

	showSparks := m.height >= sparklinesMinHeight

	// Lines spent so far: title and gauge; borders take two more.
	plotRows := m.height - 4
	if showSparks {
		plotRows -= 2
	}
	if plotRows > 0 {
		plotWidth := m.width - 4
		for _, line := range RenderBrailleChart(m.history.Slice(), plotWidth, plotRows) {
			rows.WriteString("\n ")
			rows.WriteString(chartBarStyle.Render(line))
		}
	}

	if showSparks {
		rows.WriteString("\n ")
		rows.WriteString(metricLabelStyle.Render("RES "))
		rows.WriteString(resSparklineStyle.Render(RenderSparkline(m.resHistory.Slice())))
		rows.WriteString(" ")
		rows.WriteString(metricValueStyle.Render(m.residentValue()))

		rows.WriteString("\n ")
		rows.WriteString(metricLabelStyle.Render("USE "))
		rows.WriteString(usedSparklineStyle.Render(RenderSparkline(m.usedHistory.Slice())))
		rows.WriteString(" ")
		rows.WriteString(metricValueStyle.Render(format.FormatPercent(m.usedHistory.Last())))
	}

	return panelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rows.String())
}

// renderUsageGauge renders the used-fraction bar for the latest sample,
// or nothing when the panel is too narrow to hold one.
func (m ChartModel) renderUsageGauge() string {
	barWidth := m.width - sparklineGutter
	if barWidth < 5 {
		return ""
	}

	frac := clampFraction(m.lastSnap.UsedFraction())
	filled := int(frac * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := usageStyle(frac).Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))

	return metricLabelStyle.Render("Used ") + bar + " " +
		usageStyle(frac).Render(format.FormatPercent(frac))
}

// residentValue renders the latest resident set size, or a dash before
// the first snapshot.
func (m ChartModel) residentValue() string {
	if !m.haveSnap {
		return "-"
	}
	return m.lastSnap.Resident.String()
}
