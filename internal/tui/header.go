package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/adya/memwatch/internal/format"
)

// HeaderModel renders the top bar: title, version, observed pid and
// session uptime.
type HeaderModel struct {
	startTime time.Time
	version   string
	pid       int
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		pid:       os.Getpid(),
	}
}

// Reset restarts the uptime counter.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Memory Watcher"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)

	pipe := versionStyle.Render(" | ")

	pid := versionStyle.Render(fmt.Sprintf("pid %d", h.pid))
	uptime := elapsedStyle.Render(fmt.Sprintf("up %s", format.FormatUptime(time.Since(h.startTime))))

	leftPart := title + pipe + pid + pipe + uptime
	leftLen := lipgloss.Width(leftPart)

	innerWidth := h.width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}

	gap := innerWidth - leftLen
	if gap < 0 {
		gap = 0
	}

	row := leftPart + spaces(gap)

	return headerStyle.Width(h.width).Render(row)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
