package core

import (
	"errors"
	"strings"
)

// Sentinel error kinds returned by record stores. Callers use errors.Is.
var (
	// ErrUnavailable means the backend or transport failed.
	ErrUnavailable = errors.New("record store unavailable")

	// ErrValidation means a submitted summary was missing or malformed fields.
	ErrValidation = errors.New("invalid session summary")
)

// ValidationError lists the summary fields that failed validation.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return ErrValidation.Error()
	}
	return "Missing required fields: " + strings.Join(e.Missing, ", ")
}

// Is makes errors.Is(err, ErrValidation) match any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks that a summary carries every field the store needs.
// Field names match the wire names used by the record service.
func (s Summary) Validate() error {
	var missing []string
	if strings.TrimSpace(string(s.Player)) == "" {
		missing = append(missing, "playerName")
	}
	if strings.TrimSpace(string(s.Distance)) == "" {
		missing = append(missing, "distance")
	}
	if s.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if s.Hits < 0 {
		missing = append(missing, "hits")
	}
	if s.Misses < 0 {
		missing = append(missing, "misses")
	}
	if s.HitPercentage < 0 || s.HitPercentage > 100 {
		missing = append(missing, "hitPercentage")
	}
	if s.LongestHitStreak < 0 {
		missing = append(missing, "longestHitStreak")
	}
	if s.LongestMissStreak < 0 {
		missing = append(missing, "longestMissStreak")
	}
	if s.DurationSeconds < 0 {
		missing = append(missing, "duration")
	}
	if s.StartTime.IsZero() {
		missing = append(missing, "startTime")
	}
	if s.EndTime.IsZero() || (!s.StartTime.IsZero() && s.EndTime.Before(s.StartTime)) {
		missing = append(missing, "endTime")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
