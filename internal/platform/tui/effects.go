package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kubb-counter/internal/core"
	"github.com/vovakirdan/kubb-counter/internal/session"
)

var errNoStore = errors.New("no record store configured")

// effectRunner turns controller effects into Bubble Tea commands.
// Store calls run inside the command goroutine and report back as EventMsg.
type effectRunner struct {
	store   core.RecordStore
	timeout time.Duration
	logger  *log.Logger
}

// run returns the command for eff, or nil when it completes synchronously.
func (r effectRunner) run(eff session.Effect) tea.Cmd {
	switch e := eff.(type) {
	case session.FetchBests:
		return r.fetchBests(e)

	case session.StartTicker:
		return after(e.Interval, func(t time.Time) session.Event {
			return session.Tick{GameID: e.GameID, At: t}
		})

	case session.ScheduleCelebrationEnd:
		return after(e.Delay, func(time.Time) session.Event {
			return session.CelebrationEnded{GameID: e.GameID}
		})

	case session.SubmitSummary:
		return r.submit(e)

	case session.ScheduleReset:
		return after(e.Delay, func(time.Time) session.Event {
			return session.ResetElapsed{GameID: e.GameID}
		})

	case session.LogWarning:
		r.logger.Warn(e.Message, e.Keyvals...)
	}
	return nil
}

func (r effectRunner) fetchBests(e session.FetchBests) tea.Cmd {
	return func() tea.Msg {
		if r.store == nil {
			return EventMsg{Event: session.BestsLoaded{GameID: e.GameID, Err: errNoStore}}
		}
		ctx, cancel := r.context()
		defer cancel()

		report, err := r.store.FetchBests(ctx, e.Config.Player, e.Config.Distance, e.Config.Quantity)
		return EventMsg{Event: session.BestsLoaded{GameID: e.GameID, Report: report, Err: err}}
	}
}

func (r effectRunner) submit(e session.SubmitSummary) tea.Cmd {
	return func() tea.Msg {
		if r.store == nil {
			return EventMsg{Event: session.SubmitDone{GameID: e.GameID, Err: errNoStore}}
		}
		ctx, cancel := r.context()
		defer cancel()

		id, err := r.store.SubmitSession(ctx, e.Summary)
		if err == nil {
			r.logger.Info("session submitted", "id", id, "player", e.Summary.Player, "hits", e.Summary.Hits)
		}
		return EventMsg{Event: session.SubmitDone{GameID: e.GameID, ID: id, Err: err}}
	}
}

func (r effectRunner) context() (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), r.timeout)
}
