package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/adya/memwatch/internal/observer"
)

// FooterModel renders the bottom bar: observation status, the armed
// cadence and the key hints.
type FooterModel struct {
	width    int
	paused   bool
	errState bool
	cadence  observer.Interval
	keymap   KeyMap
}

// NewFooterModel creates a new footer.
func NewFooterModel(cadence observer.Interval) FooterModel {
	return FooterModel{
		cadence: cadence,
		keymap:  DefaultKeyMap(),
	}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetPaused toggles the paused badge.
func (f *FooterModel) SetPaused(paused bool) {
	f.paused = paused
}

// SetError toggles the error badge. It wins over the other badges
// until the next successful sample clears it.
func (f *FooterModel) SetError(errState bool) {
	f.errState = errState
}

// SetCadence updates the displayed cadence.
func (f *FooterModel) SetCadence(cadence observer.Interval) {
	f.cadence = cadence
}

// View renders the footer.
func (f FooterModel) View() string {
	var badge string
	switch {
	case f.errState:
		badge = statusErrorStyle.Render(" ERROR ")
	case f.paused:
		badge = statusPausedStyle.Render(" PAUSED ")
	default:
		badge = statusRunningStyle.Render(" RUNNING ")
	}

	cadence := footerDescStyle.Render(fmt.Sprintf("%s @ %s", f.cadence, f.cadence.Duration()))

	pauseDesc := "pause"
	if f.paused {
		pauseDesc = "resume"
	}

	hints := []string{
		hint(f.keymap.Pause, pauseDesc),
		hint(f.keymap.Sample, ""),
		footerKeyStyle.Render("+/-") + " " + footerDescStyle.Render("cadence"),
		hint(f.keymap.Reset, ""),
		hint(f.keymap.Quit, ""),
	}

	return badge + " " + cadence + "   " + strings.Join(hints, "  ")
}

// hint renders one key binding, with an optional description override.
func hint(b key.Binding, desc string) string {
	if desc == "" {
		desc = b.Help().Desc
	}
	return footerKeyStyle.Render(b.Help().Key) + " " + footerDescStyle.Render(desc)
}
