package session

import (
	"time"

	"github.com/vovakirdan/kubb-counter/internal/core"
)

// Event is an input to the Controller: either a user intent or the
// completion of work previously requested through an Effect.
type Event interface {
	event()
}

// SelectPlayer changes the player on the setup screen.
type SelectPlayer struct{ Player core.Player }

func (SelectPlayer) event() {}

// SelectDistance changes the distance on the setup screen.
type SelectDistance struct{ Distance core.Distance }

func (SelectDistance) event() {}

// SelectQuantity changes the number of throws on the setup screen.
type SelectQuantity struct{ Quantity int }

func (SelectQuantity) event() {}

// Start begins a session with the current draft.
type Start struct{}

func (Start) event() {}

// RecordThrow records one throw outcome.
type RecordThrow struct{ Throw core.Throw }

func (RecordThrow) event() {}

// Submit sends the finished session to the record store.
type Submit struct{}

func (Submit) event() {}

// Abandon discards the current session and returns to setup.
type Abandon struct{}

func (Abandon) event() {}

// BestsLoaded completes a FetchBests effect.
type BestsLoaded struct {
	GameID string
	Report core.BestsReport
	Err    error
}

func (BestsLoaded) event() {}

// Tick is delivered by the ticker started with StartTicker.
type Tick struct {
	GameID string
	At     time.Time
}

func (Tick) event() {}

// CelebrationEnded is delivered when the celebration delay expires.
type CelebrationEnded struct{ GameID string }

func (CelebrationEnded) event() {}

// SubmitDone completes a SubmitSummary effect.
type SubmitDone struct {
	GameID string
	ID     string
	Err    error
}

func (SubmitDone) event() {}

// ResetElapsed is delivered when the post-submit reset delay expires.
type ResetElapsed struct{ GameID string }

func (ResetElapsed) event() {}

// Effect is work the platform layer performs on behalf of the Controller.
// Every effect that completes asynchronously reports back with an Event
// carrying the same GameID.
type Effect interface {
	effect()
}

// FetchBests asks for the personal bests of a configuration.
// Completes with BestsLoaded.
type FetchBests struct {
	GameID string
	Config core.GameConfig
}

func (FetchBests) effect() {}

// StartTicker schedules the next Tick after Interval.
type StartTicker struct {
	GameID   string
	Interval time.Duration
}

func (StartTicker) effect() {}

// ScheduleCelebrationEnd delivers CelebrationEnded after Delay.
type ScheduleCelebrationEnd struct {
	GameID string
	Delay  time.Duration
}

func (ScheduleCelebrationEnd) effect() {}

// SubmitSummary submits a session. Completes with SubmitDone.
type SubmitSummary struct {
	GameID  string
	Summary core.Summary
}

func (SubmitSummary) effect() {}

// ScheduleReset delivers ResetElapsed after Delay.
type ScheduleReset struct {
	GameID string
	Delay  time.Duration
}

func (ScheduleReset) effect() {}

// LogWarning reports a failure that is not shown to the user.
type LogWarning struct {
	Message string
	Keyvals []any
}

func (LogWarning) effect() {}
