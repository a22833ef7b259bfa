// Package recordapi implements the HTTP record service and a client for it.
//
// The service exposes two endpoints backed by any core.RecordStore:
//
//	GET  /api/records?playerName=&distance=&quantity=   personal bests
//	POST /api/sessions                                  submit a finished session
//
// The Client implements core.RecordStore on top of those endpoints and is
// registered as the "http" store backend.
package recordapi

import (
	"time"

	"github.com/vovakirdan/kubb-counter/internal/core"
)

// Routes served by the record service.
const (
	RecordsPath  = "/api/records"
	SessionsPath = "/api/sessions"
	HealthPath   = "/healthz"
	MetricsPath  = "/metrics"
)

// Error messages returned in the "error" field.
const (
	errMsgMissingParams    = "Missing required parameters: playerName, distance, quantity"
	errMsgMissingFields    = "Missing required fields"
	errMsgFetchFailed      = "Failed to fetch records"
	errMsgCreateFailed     = "Failed to create record"
	errMsgMethodNotAllowed = "Method not allowed"
	errMsgTooManyRequests  = "Too many requests. Please slow down."
)

// requiredFields lists the session fields a submission must carry, in the
// order they are reported when missing.
var requiredFields = []string{
	"playerName", "distance", "quantity", "hits", "misses", "hitPercentage",
	"longestHitStreak", "longestMissStreak", "duration", "startTime", "endTime",
}

// BestsResponse is the body of a successful GET /api/records.
type BestsResponse struct {
	Records    core.Bests `json:"records"`
	TotalGames int        `json:"totalGames"`
}

// SessionRequest is the body of POST /api/sessions.
// Pointer fields distinguish "missing" from zero values.
type SessionRequest struct {
	PlayerName        *string    `json:"playerName"`
	Distance          *string    `json:"distance"`
	Quantity          *int       `json:"quantity"`
	Hits              *int       `json:"hits"`
	Misses            *int       `json:"misses"`
	HitPercentage     *float64   `json:"hitPercentage"`
	LongestHitStreak  *int       `json:"longestHitStreak"`
	LongestMissStreak *int       `json:"longestMissStreak"`
	Duration          *int       `json:"duration"` // Seconds
	StartTime         *time.Time `json:"startTime"`
	EndTime           *time.Time `json:"endTime"`
}

// SessionResponse is the body of a successful POST /api/sessions.
type SessionResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error         string   `json:"error"`
	Message       string   `json:"message,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
}

// NewSessionRequest converts a summary into its wire form.
func NewSessionRequest(s core.Summary) SessionRequest {
	player, distance := string(s.Player), string(s.Distance)
	start, end := s.StartTime.UTC(), s.EndTime.UTC()
	return SessionRequest{
		PlayerName:        &player,
		Distance:          &distance,
		Quantity:          &s.Quantity,
		Hits:              &s.Hits,
		Misses:            &s.Misses,
		HitPercentage:     &s.HitPercentage,
		LongestHitStreak:  &s.LongestHitStreak,
		LongestMissStreak: &s.LongestMissStreak,
		Duration:          &s.DurationSeconds,
		StartTime:         &start,
		EndTime:           &end,
	}
}

// missing returns the required fields absent from the request.
func (r SessionRequest) missing() []string {
	present := map[string]bool{
		"playerName":        r.PlayerName != nil,
		"distance":          r.Distance != nil,
		"quantity":          r.Quantity != nil,
		"hits":              r.Hits != nil,
		"misses":            r.Misses != nil,
		"hitPercentage":     r.HitPercentage != nil,
		"longestHitStreak":  r.LongestHitStreak != nil,
		"longestMissStreak": r.LongestMissStreak != nil,
		"duration":          r.Duration != nil,
		"startTime":         r.StartTime != nil,
		"endTime":           r.EndTime != nil,
	}

	var out []string
	for _, f := range requiredFields {
		if !present[f] {
			out = append(out, f)
		}
	}
	return out
}

// Summary converts a complete request into a core summary.
// Call only after missing() returned nothing.
func (r SessionRequest) Summary() core.Summary {
	return core.Summary{
		Player:            core.Player(*r.PlayerName),
		Distance:          core.Distance(*r.Distance),
		Quantity:          *r.Quantity,
		Hits:              *r.Hits,
		Misses:            *r.Misses,
		HitPercentage:     *r.HitPercentage,
		LongestHitStreak:  *r.LongestHitStreak,
		LongestMissStreak: *r.LongestMissStreak,
		DurationSeconds:   *r.Duration,
		StartTime:         *r.StartTime,
		EndTime:           *r.EndTime,
	}
}
