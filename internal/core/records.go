package core

// RecordBreaks flags which personal records a session beat.
type RecordBreaks struct {
	HitStreak     bool
	HitPercentage bool
	TotalHits     bool
}

// Any reports whether at least one record was broken.
func (r RecordBreaks) Any() bool {
	return r.HitStreak || r.HitPercentage || r.TotalHits
}

// Labels returns display names for the broken records, in a fixed order.
func (r RecordBreaks) Labels() []string {
	var labels []string
	if r.HitStreak {
		labels = append(labels, "Longest Hit Streak")
	}
	if r.HitPercentage {
		labels = append(labels, "Highest Hit Percentage")
	}
	if r.TotalHits {
		labels = append(labels, "Most Total Hits")
	}
	return labels
}

// Evaluate compares session statistics against historical bests.
// A nil bests means the history is unknown and nothing counts as a record.
// Only strictly greater values break a record; ties do not.
func Evaluate(stats Statistics, bests *Bests) RecordBreaks {
	if bests == nil {
		return RecordBreaks{}
	}
	return RecordBreaks{
		HitStreak:     stats.LongestHitStreak > bests.MaxHitStreak,
		HitPercentage: stats.HitPercentage > bests.MaxHitPercentage,
		TotalHits:     stats.Hits > bests.MaxHitsForQuantity,
	}
}
