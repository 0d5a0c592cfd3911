package model

// LeaderboardEntry is one ranked row: an ambassador and their derived total.
// Totals are never stored; they are recomputed on every read.
type LeaderboardEntry struct {
	Ambassador
	Total int `json:"total"`
}
