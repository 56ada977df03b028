package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adya/memwatch/internal/format"
	"github.com/adya/memwatch/internal/memstat"
)

// maxEvents bounds the event history. Older entries are dropped.
const maxEvents = 512

type eventKind int

const (
	eventSnapshot eventKind = iota
	eventInfo
	eventError
)

type eventEntry struct {
	at   time.Time
	kind eventKind
	text string
}

// EventsModel is the scrolling left panel: one line per observed
// snapshot, interleaved with lifecycle events and errors.
type EventsModel struct {
	entries []eventEntry
	// offset counts lines scrolled up from the newest entry.
	// Zero sticks the view to the bottom.
	offset int
	width  int
	height int
}

// NewEventsModel creates an empty events panel.
func NewEventsModel() EventsModel {
	return EventsModel{}
}

// SetSize updates dimensions.
func (m *EventsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// AddSnapshot appends one observed snapshot. Manual samples are marked
// so they can be told apart from timer ticks.
func (m *EventsModel) AddSnapshot(snap memstat.Snapshot, manual bool) {
	text := fmt.Sprintf("res %-9s used %-9s %s",
		snap.Resident, snap.Used, format.FormatPercent(snap.UsedFraction()))
	if manual {
		text += "  *"
	}
	m.append(eventEntry{at: snap.Taken, kind: eventSnapshot, text: text})
}

// AddEvent appends a lifecycle event such as a cadence change.
func (m *EventsModel) AddEvent(text string) {
	m.append(eventEntry{at: time.Now(), kind: eventInfo, text: text})
}

// AddError appends a query failure.
func (m *EventsModel) AddError(err error) {
	m.append(eventEntry{at: time.Now(), kind: eventError, text: fmt.Sprintf("error: %v", err)})
}

func (m *EventsModel) append(e eventEntry) {
	m.entries = append(m.entries, e)
	if len(m.entries) > maxEvents {
		m.entries = m.entries[len(m.entries)-maxEvents:]
	}
	// A pinned scroll position stays pinned; a bottom-stuck view follows.
	if m.offset > 0 && m.offset < len(m.entries) {
		m.offset++
	}
	m.clampOffset()
}

// Reset clears the history and scroll position.
func (m *EventsModel) Reset() {
	m.entries = nil
	m.offset = 0
}

// Update handles scroll keys.
func (m *EventsModel) Update(msg tea.KeyMsg) {
	page := m.visibleLines()
	if page < 1 {
		page = 1
	}
	switch msg.String() {
	case "up", "k":
		m.offset++
	case "down", "j":
		m.offset--
	case "pgup":
		m.offset += page
	case "pgdown":
		m.offset -= page
	}
	m.clampOffset()
}

func (m *EventsModel) clampOffset() {
	maxOffset := len(m.entries) - m.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// visibleLines returns how many entries fit: panel height minus the
// borders and the title line.
func (m *EventsModel) visibleLines() int {
	v := m.height - 3
	if v < 1 {
		v = 1
	}
	return v
}

// View renders the panel at its stored height.
func (m EventsModel) View() string {
	return m.renderToHeight(m.height)
}

// renderToHeight renders the panel with an explicit outer height so the
// layout can match it against the right column.
func (m EventsModel) renderToHeight(h int) string {
	visible := h - 3
	if visible < 1 {
		visible = 1
	}

	end := len(m.entries) - m.offset
	if end > len(m.entries) {
		end = len(m.entries)
	}
	start := end - visible
	if start < 0 {
		start = 0
	}

	content := metricLabelStyle.Render(" Events")
	for _, e := range m.entries[start:end] {
		content += "\n " + eventTimeStyle.Render(e.at.Format("15:04:05")) + "  " + m.renderEntry(e)
	}

	return panelStyle.
		Width(m.width - 2).
		Height(h - 2).
		Render(content)
}

func (m EventsModel) renderEntry(e eventEntry) string {
	switch e.kind {
	case eventError:
		return eventErrorStyle.Render(e.text)
	case eventInfo:
		return eventTextStyle.Render(e.text)
	default:
		return eventValueStyle.Render(e.text)
	}
}
