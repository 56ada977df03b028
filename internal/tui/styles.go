package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/adya/memwatch/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	eventTimeStyle     lipgloss.Style
	eventTextStyle     lipgloss.Style
	eventValueStyle    lipgloss.Style
	eventErrorStyle    lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	chartBarStyle      lipgloss.Style
	chartEmptyStyle    lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusErrorStyle   lipgloss.Style
	usageLowStyle      lipgloss.Style
	usageWarnStyle     lipgloss.Style
	usageHighStyle     lipgloss.Style
	resSparklineStyle  lipgloss.Style
	usedSparklineStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Bg).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	eventTimeStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	eventTextStyle = lipgloss.NewStyle().
		Foreground(t.Info)

	eventValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	eventErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	chartBarStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	chartEmptyStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusPausedStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	usageLowStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	usageWarnStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	usageHighStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	resSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	usedSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Warning)
}

// usageStyle picks the pressure color for a used fraction, matching the
// thresholds of the plain-text renderer.
func usageStyle(fraction float64) lipgloss.Style {
	switch {
	case fraction >= 0.9:
		return usageHighStyle
	case fraction >= 0.7:
		return usageWarnStyle
	default:
		return usageLowStyle
	}
}
