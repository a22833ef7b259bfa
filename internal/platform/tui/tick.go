// Package tui provides the Bubble Tea front end of the counter.
// It runs the session controller, turns its effects into commands and
// renders its screens with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kubb-counter/internal/session"
)

// EventMsg carries a controller event back into Update.
type EventMsg struct {
	Event session.Event
}

// pulseEndMsg and flashEndMsg clear the cosmetic throw feedback.
// The sequence number ignores timers superseded by a newer throw.
type (
	pulseEndMsg struct{ seq int }
	flashEndMsg struct{ seq int }
)

// after delivers the event built by fn once d has elapsed.
func after(d time.Duration, fn func(time.Time) session.Event) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return EventMsg{Event: fn(t)}
	})
}
