package session

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/kubb-counter/internal/core"
)

// Messages shown on the results screen after a submission attempt.
const (
	MsgSubmitted = "Result submitted successfully!"
	msgErrPrefix = "Error: "
)

// Choices are the values selectable on the setup screen.
type Choices struct {
	Players    []core.Player
	Distances  []core.Distance
	Quantities []int
}

// Options configures a Controller. Zero values fall back to sensible defaults
// except Choices and Defaults, which must be provided.
type Options struct {
	Choices  Choices
	Defaults core.GameConfig

	// Assets are the celebration pictures; one is picked at random.
	Assets []string

	CelebrationDelay time.Duration
	ResetDelay       time.Duration
	TickInterval     time.Duration

	Now   func() time.Time
	Rand  *rand.Rand
	NewID func() string
}

// Default timings used when Options leaves them unset.
const (
	DefaultCelebrationDelay = 5 * time.Second
	DefaultResetDelay       = 2 * time.Second
	DefaultTickInterval     = time.Second
)

// Controller owns the current Screen and applies Events to it.
// It is not safe for concurrent use; the presenter serializes events.
type Controller struct {
	opts   Options
	screen Screen
}

// NewController creates a controller on the setup screen with the defaults.
func NewController(opts Options) *Controller {
	if opts.CelebrationDelay <= 0 {
		opts.CelebrationDelay = DefaultCelebrationDelay
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	return &Controller{
		opts:   opts,
		screen: Setup{Draft: opts.Defaults},
	}
}

// Screen returns the current screen.
func (c *Controller) Screen() Screen {
	return c.screen
}

// Choices returns the selectable setup values.
func (c *Controller) Choices() Choices {
	return c.opts.Choices
}

// Handle applies ev and returns the effects the caller must run.
// Events that are not valid in the current state are ignored.
func (c *Controller) Handle(ev Event) []Effect {
	switch s := c.screen.(type) {
	case Setup:
		return c.handleSetup(s, ev)
	case Active:
		return c.handleActive(s, ev)
	case Celebration:
		return c.handleCelebration(s, ev)
	case Results:
		return c.handleResults(s, ev)
	}
	return nil
}

func (c *Controller) handleSetup(s Setup, ev Event) []Effect {
	switch ev := ev.(type) {
	case SelectPlayer:
		if slices.Contains(c.opts.Choices.Players, ev.Player) {
			s.Draft.Player = ev.Player
			c.screen = s
		}
	case SelectDistance:
		if slices.Contains(c.opts.Choices.Distances, ev.Distance) {
			s.Draft.Distance = ev.Distance
			c.screen = s
		}
	case SelectQuantity:
		if slices.Contains(c.opts.Choices.Quantities, ev.Quantity) {
			s.Draft.Quantity = ev.Quantity
			c.screen = s
		}
	case Start:
		return c.start(s.Draft)
	case BestsLoaded:
		return staleBests(ev)
	}
	return nil
}

func (c *Controller) start(cfg core.GameConfig) []Effect {
	if cfg.Quantity <= 0 {
		return nil
	}
	game := core.NewGame(c.opts.NewID(), cfg, c.opts.Now())
	c.screen = Active{Game: game}

	return []Effect{
		FetchBests{GameID: game.ID, Config: cfg},
		StartTicker{GameID: game.ID, Interval: c.opts.TickInterval},
	}
}

func (c *Controller) handleActive(s Active, ev Event) []Effect {
	switch ev := ev.(type) {
	case BestsLoaded:
		if ev.GameID != s.Game.ID {
			return staleBests(ev)
		}
		if ev.Err != nil {
			return []Effect{LogWarning{
				Message: "could not fetch personal bests",
				Keyvals: []any{"player", s.Game.Config.Player, "distance", s.Game.Config.Distance, "error", ev.Err},
			}}
		}
		report := ev.Report
		s.Bests = &report
		c.screen = s

	case Tick:
		if ev.GameID != s.Game.ID {
			return nil
		}
		s.Elapsed = s.Game.Elapsed(ev.At)
		c.screen = s
		return []Effect{StartTicker{GameID: s.Game.ID, Interval: c.opts.TickInterval}}

	case RecordThrow:
		return c.recordThrow(s, ev.Throw)

	case Abandon:
		c.screen = Setup{Draft: s.Game.Config}
	}
	return nil
}

func (c *Controller) recordThrow(s Active, t core.Throw) []Effect {
	if t != core.Hit && t != core.Miss {
		return nil
	}
	if s.Game.Complete() {
		return nil
	}

	// Throws is shared with earlier screen values; copy before appending.
	s.Game.Throws = append(slices.Clip(s.Game.Throws), t)
	if !s.Game.Complete() {
		c.screen = s
		return nil
	}

	s.Game.CompletedAt = c.opts.Now()
	stats := core.Compute(s.Game.Throws)
	breaks := core.Evaluate(stats, knownBests(s.Bests))

	if breaks.Any() && len(c.opts.Assets) > 0 {
		c.screen = Celebration{
			Game:   s.Game,
			Stats:  stats,
			Breaks: breaks,
			Asset:  c.opts.Assets[c.opts.Rand.Intn(len(c.opts.Assets))],
		}
		return []Effect{ScheduleCelebrationEnd{GameID: s.Game.ID, Delay: c.opts.CelebrationDelay}}
	}

	c.screen = Results{Game: s.Game, Stats: stats, Breaks: breaks}
	return nil
}

// knownBests returns the bests to compare against, or nil while none have
// loaded. An empty history compares against zero bests.
func knownBests(report *core.BestsReport) *core.Bests {
	if report == nil {
		return nil
	}
	return &report.Bests
}

func (c *Controller) handleCelebration(s Celebration, ev Event) []Effect {
	switch ev := ev.(type) {
	case CelebrationEnded:
		if ev.GameID == s.Game.ID {
			c.screen = Results{Game: s.Game, Stats: s.Stats, Breaks: s.Breaks}
		}
	case BestsLoaded:
		return staleBests(ev)
	}
	return nil
}

func (c *Controller) handleResults(s Results, ev Event) []Effect {
	switch ev := ev.(type) {
	case Submit:
		if s.Submitting || s.Submitted {
			return nil
		}
		s.Submitting = true
		s.Err = nil
		s.Message = ""
		c.screen = s
		summary := core.NewSummary(s.Game, s.Stats, c.opts.Now())
		return []Effect{SubmitSummary{GameID: s.Game.ID, Summary: summary}}

	case SubmitDone:
		if ev.GameID != s.Game.ID || !s.Submitting {
			return nil
		}
		s.Submitting = false
		if ev.Err != nil {
			s.Err = ev.Err
			s.Message = msgErrPrefix + ev.Err.Error()
			c.screen = s
			return []Effect{LogWarning{
				Message: "could not submit session",
				Keyvals: []any{"game", s.Game.ID, "error", ev.Err},
			}}
		}
		s.Submitted = true
		s.Message = MsgSubmitted
		c.screen = s
		return []Effect{ScheduleReset{GameID: s.Game.ID, Delay: c.opts.ResetDelay}}

	case ResetElapsed:
		if ev.GameID == s.Game.ID && s.Submitted {
			c.screen = Setup{Draft: c.opts.Defaults}
		}

	case Abandon:
		if !s.Submitting {
			c.screen = Setup{Draft: s.Game.Config}
		}

	case BestsLoaded:
		return staleBests(ev)
	}
	return nil
}

// staleBests logs a failed bests fetch that arrived after its session ended.
func staleBests(ev BestsLoaded) []Effect {
	if ev.Err == nil {
		return nil
	}
	return []Effect{LogWarning{
		Message: "could not fetch personal bests",
		Keyvals: []any{"game", ev.GameID, "error", ev.Err},
	}}
}

// String describes the current screen for debug logs.
func (c *Controller) String() string {
	switch s := c.screen.(type) {
	case Active:
		return fmt.Sprintf("active(%s %d/%d)", s.Game.ID, len(s.Game.Throws), s.Game.Config.Quantity)
	case Results:
		return fmt.Sprintf("results(%s submitting=%t submitted=%t)", s.Game.ID, s.Submitting, s.Submitted)
	default:
		return c.screen.Name()
	}
}
