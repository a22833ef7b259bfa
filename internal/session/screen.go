// Package session implements the screen state machine for a practice session.
//
// The Controller consumes Events (user intents and completions of async work)
// and returns Effects the platform layer must carry out. It never blocks, never
// starts goroutines and never touches a terminal, so it can be driven directly
// from tests.
package session

import (
	"time"

	"github.com/vovakirdan/kubb-counter/internal/core"
)

// Screen is the current state of the machine. Exactly one variant is active.
type Screen interface {
	screen()
	// Name is a short identifier used in logs.
	Name() string
}

// Setup is the configuration screen shown before a session starts.
type Setup struct {
	Draft core.GameConfig
}

func (Setup) screen() {}
func (Setup) Name() string { return "setup" }

// Active is a session in progress.
type Active struct {
	Game    core.Game
	Bests   *core.BestsReport // nil until the store answers
	Elapsed time.Duration
}

func (Active) screen() {}
func (Active) Name() string { return "active" }

// Stats returns the live statistics of the throws recorded so far.
func (a Active) Stats() core.Statistics {
	return core.Compute(a.Game.Throws)
}

// Celebration is shown after a session that broke at least one record.
type Celebration struct {
	Game   core.Game
	Stats  core.Statistics
	Breaks core.RecordBreaks
	Asset  string
}

func (Celebration) screen() {}
func (Celebration) Name() string { return "celebration" }

// Results shows the final statistics and handles submission.
type Results struct {
	Game       core.Game
	Stats      core.Statistics
	Breaks     core.RecordBreaks
	Submitting bool
	Submitted  bool
	Message    string
	Err        error // Last submission error, cleared on retry
}

func (Results) screen() {}
func (Results) Name() string { return "results" }
