package core

import (
	"fmt"
	"time"
)

// Compute derives session statistics from a throw sequence.
// It is a total, pure function: an empty sequence yields all zeros.
func Compute(throws []Throw) Statistics {
	var s Statistics
	currentHit, currentMiss := 0, 0

	for _, t := range throws {
		switch t {
		case Hit:
			s.Hits++
			currentHit++
			currentMiss = 0
			s.LongestHitStreak = max(s.LongestHitStreak, currentHit)
		case Miss:
			s.Misses++
			currentMiss++
			currentHit = 0
			s.LongestMissStreak = max(s.LongestMissStreak, currentMiss)
		}
	}

	if len(throws) > 0 {
		s.HitPercentage = float64(s.Hits) / float64(len(throws)) * 100
	}
	return s
}

// Total returns the number of throws the statistics were computed from.
func (s Statistics) Total() int {
	return s.Hits + s.Misses
}

// PerThrow returns the average number of seconds spent per throw.
func PerThrow(total time.Duration, throws int) float64 {
	if throws <= 0 {
		return 0
	}
	return total.Seconds() / float64(throws)
}

// FormatClock renders a duration as MM:SS. Minutes are not wrapped at 60.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
