// Package storage provides SQLite-based persistence for practice sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/kubb-counter/internal/core"
	"github.com/vovakirdan/kubb-counter/internal/registry"
)

// timeLayout is how timestamps are stored in TEXT columns. Fixed width so
// that string order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection for session persistence.
// It implements core.RecordStore and core.HistoryReader and is safe for
// concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var (
	_ core.RecordStore   = (*Store)(nil)
	_ core.HistoryReader = (*Store)(nil)
)

func init() {
	registry.Register("sqlite", "local SQLite database", func(opts registry.Options) (registry.Backend, error) {
		s, err := Open(opts.DBPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			player_name TEXT NOT NULL,
			distance TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			hits INTEGER NOT NULL,
			misses INTEGER NOT NULL,
			hit_percentage REAL NOT NULL,
			longest_hit_streak INTEGER NOT NULL,
			longest_miss_streak INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_player_distance ON sessions(player_name, distance);
		CREATE INDEX IF NOT EXISTS idx_sessions_player_distance_quantity ON sessions(player_name, distance, quantity);
		CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// unavailable wraps a driver error so callers can match core.ErrUnavailable.
func unavailable(op string, err error) error {
	return fmt.Errorf("storage: %s: %w: %w", op, core.ErrUnavailable, err)
}

// FetchBests returns the personal bests for player and distance.
// MaxHitsForQuantity is restricted to sessions with the same quantity.
// A player with no sessions gets zero bests and TotalGames 0.
func (s *Store) FetchBests(ctx context.Context, player core.Player, distance core.Distance, quantity int) (core.BestsReport, error) {
	var report core.BestsReport

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(longest_hit_streak), 0), COALESCE(MAX(hit_percentage), 0)
		 FROM sessions
		 WHERE player_name = ? AND distance = ?`,
		string(player), string(distance),
	).Scan(&report.TotalGames, &report.Bests.MaxHitStreak, &report.Bests.MaxHitPercentage)
	if err != nil {
		return core.BestsReport{}, unavailable("cannot query bests", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(hits), 0)
		 FROM sessions
		 WHERE player_name = ? AND distance = ? AND quantity = ?`,
		string(player), string(distance), quantity,
	).Scan(&report.Bests.MaxHitsForQuantity)
	if err != nil {
		return core.BestsReport{}, unavailable("cannot query hits for quantity", err)
	}

	return report, nil
}

// SubmitSession validates and stores a finished session.
// Returns the generated session ID.
func (s *Store) SubmitSession(ctx context.Context, summary core.Summary) (string, error) {
	if err := summary.Validate(); err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions
		 (id, player_name, distance, quantity, hits, misses, hit_percentage,
		  longest_hit_streak, longest_miss_streak, duration_secs, start_time, end_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		string(summary.Player),
		string(summary.Distance),
		summary.Quantity,
		summary.Hits,
		summary.Misses,
		summary.HitPercentage,
		summary.LongestHitStreak,
		summary.LongestMissStreak,
		summary.DurationSeconds,
		summary.StartTime.UTC().Format(timeLayout),
		summary.EndTime.UTC().Format(timeLayout),
		s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return "", unavailable("cannot save session", err)
	}

	return id, nil
}

// ListSessions returns stored sessions, most recent first.
// Empty player or distance matches every value. A limit <= 0 means 20.
func (s *Store) ListSessions(ctx context.Context, player core.Player, distance core.Distance, limit int) ([]core.SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player_name, distance, quantity, hits, misses, hit_percentage,
		        longest_hit_streak, longest_miss_streak, duration_secs, start_time, end_time, created_at
		 FROM sessions
		 WHERE (? = '' OR player_name = ?) AND (? = '' OR distance = ?)
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		string(player), string(player), string(distance), string(distance), limit,
	)
	if err != nil {
		return nil, unavailable("cannot query sessions", err)
	}
	defer rows.Close()

	var records []core.SessionRecord
	for rows.Next() {
		var (
			r                           core.SessionRecord
			name, dist                  string
			startTime, endTime, created string
		)
		if err := rows.Scan(
			&r.ID,
			&name,
			&dist,
			&r.Summary.Quantity,
			&r.Summary.Hits,
			&r.Summary.Misses,
			&r.Summary.HitPercentage,
			&r.Summary.LongestHitStreak,
			&r.Summary.LongestMissStreak,
			&r.Summary.DurationSeconds,
			&startTime,
			&endTime,
			&created,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		r.Summary.Player = core.Player(name)
		r.Summary.Distance = core.Distance(dist)
		r.Summary.StartTime = parseTime(startTime)
		r.Summary.EndTime = parseTime(endTime)
		r.CreatedAt = parseTime(created)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("row iteration error", err)
	}

	return records, nil
}

// parseTime reads a stored timestamp; unreadable values become the zero time.
func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
