package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adya/memwatch/internal/broadcast"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// SnapshotForwarder bridges the broadcast hub into the update loop. It
// drains one subscription and forwards every snapshot as a bubbletea
// message, so the engine's publishes never touch the UI goroutine
// directly.
type SnapshotForwarder struct {
	ref *programRef
}

// Forward drains sub, sending one SnapshotMsg per received snapshot
// and a StreamClosedMsg once the subscription is cancelled. It runs
// until the subscription's channel closes.
func (f *SnapshotForwarder) Forward(wg *sync.WaitGroup, sub *broadcast.Subscription) {
	defer wg.Done()

	for snap := range sub.C() {
		f.ref.Send(SnapshotMsg{Snapshot: snap})
	}
	f.ref.Send(StreamClosedMsg{})
}
