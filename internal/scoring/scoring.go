// Package scoring converts daily activity flags and point adjustments into
// totals. Everything here is pure computation over exact integers; callers
// recompute on every read rather than caching results.
package scoring

import "github.com/amba-app/amba/internal/model"

// Points awarded per activity type for a single day.
const (
	StoryPoints   = 50
	PostPoints    = 100
	ProductPoints = 150

	// DailyMax is the score of a day with all three flags set.
	DailyMax = StoryPoints + PostPoints + ProductPoints
)

// ScoreOfDay returns the score for one daily log: the sum of the weights of
// its set flags. A missing day scores zero by construction (no log row).
func ScoreOfDay(flags model.DayFlags) int {
	score := 0
	if flags.Story {
		score += StoryPoints
	}
	if flags.Post {
		score += PostPoints
	}
	if flags.Product {
		score += ProductPoints
	}
	return score
}

// SumLogs returns the combined score of a slice of daily logs.
func SumLogs(logs []model.DailyLog) int {
	total := 0
	for _, l := range logs {
		total += ScoreOfDay(l.DayFlags)
	}
	return total
}

// Total returns an ambassador's lifetime total: every scored day plus every
// signed adjustment.
func Total(logs []model.DailyLog, adjustments []model.Adjustment) int {
	total := SumLogs(logs)
	for _, a := range adjustments {
		total += a.Delta
	}
	return total
}
