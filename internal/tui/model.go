package tui

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adya/memwatch/internal/broadcast"
	"github.com/adya/memwatch/internal/config"
	apperrors "github.com/adya/memwatch/internal/errors"
	"github.com/adya/memwatch/internal/observer"
)

// ObservationState holds the engine-related fields of a TUI session.
// Pausing maps directly onto the engine: a paused dashboard has no
// armed timer at all.
type ObservationState struct {
	engine  *observer.Engine
	cadence observer.Interval
	paused  bool
	done    bool
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// eventsWidth returns the width allocated to the events panel.
func (l LayoutManager) eventsWidth() int {
	return l.width * EventsPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column (stats + chart).
func (l LayoutManager) rightWidth() int {
	return l.width - l.eventsWidth()
}

// statsHeight returns the height allocated to the stats panel.
func (l LayoutManager) statsHeight() int {
	body := l.bodyHeight()
	h := StatsPanelHeight
	if h > body/2 {
		h = body / 2
	}
	return h
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.statsHeight()
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header HeaderModel
	events EventsModel
	stats  StatsModel
	chart  ChartModel
	footer FooterModel

	keymap KeyMap

	ObservationState
	LayoutManager

	ctx context.Context
	ref *programRef
}

// NewModel creates a new TUI model. The engine must be idle; Init arms
// it at the configured cadence.
func NewModel(ctx context.Context, engine *observer.Engine, cfg config.AppConfig, version string) Model {
	return Model{
		header: NewHeaderModel(version),
		events: NewEventsModel(),
		stats:  NewStatsModel(),
		chart:  NewChartModel(),
		footer: NewFooterModel(cfg.Interval),
		keymap: DefaultKeyMap(),
		ObservationState: ObservationState{
			engine:  engine,
			cadence: cfg.Interval,
		},
		ctx: ctx,
		ref: &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		armObservationCmd(m.ctx, m.engine, m.cadence),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case SnapshotMsg:
		m.stats.UpdateSnapshot(msg.Snapshot)
		m.chart.AddSnapshot(msg.Snapshot)
		m.events.AddSnapshot(msg.Snapshot, msg.Manual)
		m.footer.SetError(false)
		return m, nil

	case QueryErrorMsg:
		m.events.AddError(msg.Err)
		m.footer.SetError(true)
		return m, nil

	case ObservationArmedMsg:
		m.events.AddEvent(fmt.Sprintf("observing at the %s cadence (every %s)",
			msg.Cadence, msg.Cadence.Duration()))
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleRuntimeCmd(), tickCmd())

	case RuntimeStatsMsg:
		m.stats.UpdateRuntime(msg)
		return m, nil

	case StreamClosedMsg:
		m.done = true
		return m, tea.Quit

	case ContextCancelledMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		if m.paused {
			m.paused = false
			m.footer.SetPaused(false)
			return m, armObservationCmd(m.ctx, m.engine, m.cadence)
		}
		m.engine.StopObserving()
		m.paused = true
		m.footer.SetPaused(true)
		m.events.AddEvent("observation paused")
		return m, nil

	case key.Matches(msg, m.keymap.Sample):
		return m, sampleCmd(m.ctx, m.engine)

	case key.Matches(msg, m.keymap.Faster):
		return m.switchCadence(m.cadence.Faster())

	case key.Matches(msg, m.keymap.Slower):
		return m.switchCadence(m.cadence.Slower())

	case key.Matches(msg, m.keymap.Reset):
		m.header.Reset()
		m.events.Reset()
		m.chart.Reset()
		m.stats = NewStatsModel()
		m.stats.SetSize(m.rightWidth(), m.statsHeight())
		m.footer.SetError(false)
		m.events.AddEvent("history cleared")
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.events.Update(msg)
		return m, nil
	}

	return m, nil
}

// switchCadence moves to the given cadence. While running, the engine
// timer is replaced in place; while paused, only the stored cadence
// changes and the next resume arms it.
func (m Model) switchCadence(next observer.Interval) (tea.Model, tea.Cmd) {
	if next == m.cadence {
		return m, nil
	}
	m.cadence = next
	m.footer.SetCadence(next)
	if m.paused {
		m.events.AddEvent(fmt.Sprintf("cadence set to %s, resume to apply", next))
		return m, nil
	}
	return m, armObservationCmd(m.ctx, m.engine, next)
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.header.View()
	footer := m.footer.View()

	stats := m.stats.View()
	chart := m.chart.View()

	// Right column: stats on top, chart on bottom
	rightCol := lipgloss.JoinVertical(lipgloss.Left, stats, chart)

	// Render the events panel to match the right column's actual height
	events := m.events.renderToHeight(lipgloss.Height(rightCol))

	// Main body: events on left, right column on right
	body := lipgloss.JoinHorizontal(lipgloss.Top, events, rightCol)

	// Full layout: header + body + footer
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Layout constants for the TUI dashboard.
const (
	headerHeight            = 1
	footerHeight            = 1
	minBodyHeight           = 4
	EventsPanelWidthPercent = 60
	StatsPanelHeight        = 7 // title + used line + three data rows + borders
)

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.events.SetSize(m.eventsWidth(), m.bodyHeight())
	m.stats.SetSize(m.rightWidth(), m.statsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run is the public entry point for the TUI mode. It subscribes to the
// hub, runs the bubbletea program and returns the exit code. The engine
// is left stopped when the dashboard closes.
func Run(ctx context.Context, engine *observer.Engine, hub *broadcast.Hub, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, engine, cfg, version)

	sub := hub.Subscribe()
	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the forwarder can Send.
	model.ref.SetProgram(p)

	var wg sync.WaitGroup
	wg.Add(1)
	fwd := &SnapshotForwarder{ref: model.ref}
	go fwd.Forward(&wg, sub)

	_, err := p.Run()

	engine.StopObserving()
	hub.Unsubscribe(sub)
	wg.Wait()

	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// armObservationCmd returns a tea.Cmd that (re)arms the engine at the
// given cadence.
func armObservationCmd(ctx context.Context, engine *observer.Engine, cadence observer.Interval) tea.Cmd {
	return func() tea.Msg {
		engine.StartObserving(ctx, cadence)
		return ObservationArmedMsg{Cadence: cadence}
	}
}

// sampleCmd returns a tea.Cmd that takes one snapshot on demand.
func sampleCmd(ctx context.Context, engine *observer.Engine) tea.Cmd {
	return func() tea.Msg {
		snap, err := engine.Snapshot(ctx)
		if err != nil {
			return QueryErrorMsg{Err: err}
		}
		return SnapshotMsg{Snapshot: snap, Manual: true}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleRuntimeCmd reads the watcher's own runtime accounting and
// returns a RuntimeStatsMsg.
func sampleRuntimeCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return RuntimeStatsMsg{
			HeapAlloc:    ms.HeapAlloc,
			NumGC:        ms.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
