// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, and the tick source.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one game step. Epoch ties it to the run that
// armed it; the controller drops ticks from older epochs.
type TickMsg struct {
	Epoch uint64
	Time  time.Time
}

// tickCmd returns a Bubble Tea command that sends a single tick after interval.
func tickCmd(epoch uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Epoch: epoch, Time: t}
	})
}

// teaTicker adapts Bubble Tea's one-shot ticks to the controller's Ticker.
// Start leaves a pending command for the model to return from Update; Stop
// discards it. Bubble Tea cannot cancel a tick already scheduled, so a tick
// that outlives Stop still arrives and is rejected by its stale epoch.
type teaTicker struct {
	pending  tea.Cmd
	interval time.Duration
	armed    bool
	epoch    uint64
}

// Start implements snake.Ticker.
func (t *teaTicker) Start(epoch uint64, interval time.Duration) {
	t.epoch = epoch
	t.interval = interval
	t.armed = true
	t.pending = tickCmd(epoch, interval)
}

// Stop implements snake.Ticker.
func (t *teaTicker) Stop() {
	t.armed = false
	t.pending = nil
}

// next re-arms the chain after an accepted tick.
func (t *teaTicker) next(epoch uint64) {
	if t.armed && epoch == t.epoch {
		t.pending = tickCmd(epoch, t.interval)
	}
}

// take returns and clears the pending command.
func (t *teaTicker) take() tea.Cmd {
	cmd := t.pending
	t.pending = nil
	return cmd
}
