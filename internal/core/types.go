// Package core contains the pure game logic for the Kubb counter: the data
// model, the statistics engine and record-break evaluation.
// Nothing in here knows about terminals, timers or storage backends; the
// session controller and the platform layer drive it.
package core

import (
	"time"
)

// Player identifies who is throwing. Valid players come from configuration.
type Player string

// Distance is the throwing distance label, e.g. "4 Meter".
type Distance string

// Throw is the outcome of a single throw.
type Throw int

const (
	Hit Throw = iota
	Miss
)

// String returns the lowercase name used in logs and on the wire.
func (t Throw) String() string {
	switch t {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	default:
		return "unknown"
	}
}

// GameConfig is what the player picks on the setup screen.
// It is copied by value into a Game and never changes afterwards.
type GameConfig struct {
	Player   Player
	Distance Distance
	Quantity int // Number of throws in the session
}

// Game is one practice session in progress.
// Throws is append-only and in chronological order.
type Game struct {
	ID          string
	Config      GameConfig
	Throws      []Throw
	StartedAt   time.Time
	CompletedAt time.Time // Zero until the final throw is recorded
}

// NewGame creates an empty session for cfg.
func NewGame(id string, cfg GameConfig, startedAt time.Time) Game {
	return Game{
		ID:        id,
		Config:    cfg,
		Throws:    make([]Throw, 0, cfg.Quantity),
		StartedAt: startedAt,
	}
}

// Remaining returns how many throws are left before the session completes.
func (g Game) Remaining() int {
	n := g.Config.Quantity - len(g.Throws)
	if n < 0 {
		return 0
	}
	return n
}

// Complete reports whether the throw target has been reached.
func (g Game) Complete() bool {
	return len(g.Throws) >= g.Config.Quantity
}

// Elapsed returns the time spent on the session.
// For a completed session this is frozen at CompletedAt.
func (g Game) Elapsed(now time.Time) time.Duration {
	end := now
	if !g.CompletedAt.IsZero() {
		end = g.CompletedAt
	}
	if end.Before(g.StartedAt) {
		return 0
	}
	return end.Sub(g.StartedAt)
}

// Statistics are derived from a throw sequence; see Compute.
type Statistics struct {
	Hits              int
	Misses            int
	HitPercentage     float64 // 0-100
	LongestHitStreak  int
	LongestMissStreak int
}

// Bests are the personal records over all prior sessions for a player and
// distance. MaxHitsForQuantity only considers sessions with the same quantity.
type Bests struct {
	MaxHitStreak       int     `json:"maxHitStreak"`
	MaxHitPercentage   float64 `json:"maxHitPercentage"`
	MaxHitsForQuantity int     `json:"maxHitsForQuantity"`
}

// BestsReport is what a record store returns for a bests query.
type BestsReport struct {
	Bests      Bests
	TotalGames int // Number of matching sessions (player + distance)
}

// Summary is the payload submitted to a record store when a session ends.
type Summary struct {
	Player            Player
	Distance          Distance
	Quantity          int
	Hits              int
	Misses            int
	HitPercentage     float64
	LongestHitStreak  int
	LongestMissStreak int
	DurationSeconds   int
	StartTime         time.Time
	EndTime           time.Time
}

// NewSummary packages a finished game for submission.
// Duration is rounded to whole seconds.
func NewSummary(g Game, stats Statistics, endTime time.Time) Summary {
	duration := endTime.Sub(g.StartedAt).Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	return Summary{
		Player:            g.Config.Player,
		Distance:          g.Config.Distance,
		Quantity:          g.Config.Quantity,
		Hits:              stats.Hits,
		Misses:            stats.Misses,
		HitPercentage:     stats.HitPercentage,
		LongestHitStreak:  stats.LongestHitStreak,
		LongestMissStreak: stats.LongestMissStreak,
		DurationSeconds:   int(duration / time.Second),
		StartTime:         g.StartedAt,
		EndTime:           endTime,
	}
}

// SessionRecord is a stored summary as returned by history queries.
type SessionRecord struct {
	ID        string
	Summary   Summary
	CreatedAt time.Time
}
