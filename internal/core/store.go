package core

import "context"

// RecordStore is the persistence contract the session controller relies on.
// Implementations return errors wrapping ErrUnavailable or ErrValidation.
type RecordStore interface {
	// FetchBests returns the personal bests for player and distance.
	// MaxHitsForQuantity only looks at sessions with the given quantity.
	FetchBests(ctx context.Context, player Player, distance Distance, quantity int) (BestsReport, error)

	// SubmitSession appends a finished session and returns its store ID.
	SubmitSession(ctx context.Context, summary Summary) (string, error)
}

// HistoryReader is implemented by stores that can list past sessions.
type HistoryReader interface {
	// ListSessions returns the most recent sessions first.
	// Empty player or distance means no filter on that column.
	ListSessions(ctx context.Context, player Player, distance Distance, limit int) ([]SessionRecord, error)
}
