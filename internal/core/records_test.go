package core

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestEvaluate(t *testing.T) {
	bests := &Bests{MaxHitStreak: 2, MaxHitPercentage: 50, MaxHitsForQuantity: 5}

	tests := []struct {
		name  string
		stats Statistics
		bests *Bests
		want  RecordBreaks
	}{
		{
			name:  "no history",
			stats: Statistics{Hits: 30, HitPercentage: 100, LongestHitStreak: 30},
			bests: nil,
			want:  RecordBreaks{},
		},
		{
			name:  "tie on hits does not count",
			stats: Statistics{Hits: 5, HitPercentage: 60, LongestHitStreak: 3},
			bests: bests,
			want:  RecordBreaks{HitStreak: true, HitPercentage: true, TotalHits: false},
		},
		{
			name:  "all ties",
			stats: Statistics{Hits: 5, HitPercentage: 50, LongestHitStreak: 2},
			bests: bests,
			want:  RecordBreaks{},
		},
		{
			name:  "all beaten",
			stats: Statistics{Hits: 6, HitPercentage: 50.1, LongestHitStreak: 3},
			bests: bests,
			want:  RecordBreaks{HitStreak: true, HitPercentage: true, TotalHits: true},
		},
		{
			name:  "zero bests beaten by any hit",
			stats: Statistics{Hits: 1, Misses: 1, HitPercentage: 50, LongestHitStreak: 1},
			bests: &Bests{},
			want:  RecordBreaks{HitStreak: true, HitPercentage: true, TotalHits: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.stats, tt.bests)
			if got != tt.want {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.want)
			}
			if got.Any() != (tt.want.HitStreak || tt.want.HitPercentage || tt.want.TotalHits) {
				t.Errorf("Any() = %v for %+v", got.Any(), got)
			}
		})
	}
}

func TestRecordBreakLabels(t *testing.T) {
	got := RecordBreaks{HitStreak: true, TotalHits: true}.Labels()
	want := []string{"Longest Hit Streak", "Most Total Hits"}
	if !slices.Equal(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
	if labels := (RecordBreaks{}).Labels(); len(labels) != 0 {
		t.Errorf("Expected no labels, got %v", labels)
	}
}

func TestSummaryValidate(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	valid := Summary{
		Player:    "Sophie",
		Distance:  "4 Meter",
		Quantity:  30,
		Hits:      20,
		Misses:    10,
		StartTime: start,
		EndTime:   start.Add(time.Minute),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid summary, got %v", err)
	}

	broken := valid
	broken.Player = " "
	broken.Quantity = 0
	broken.EndTime = start.Add(-time.Second)

	err := broken.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation, got %v", err)
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}
	want := []string{"playerName", "quantity", "endTime"}
	if !slices.Equal(vErr.Missing, want) {
		t.Errorf("Missing = %v, want %v", vErr.Missing, want)
	}
	if errors.Is(err, ErrUnavailable) {
		t.Error("Validation error must not match ErrUnavailable")
	}
	if got := err.Error(); got != "Missing required fields: playerName, quantity, endTime" {
		t.Errorf("Error() = %q", got)
	}
}
