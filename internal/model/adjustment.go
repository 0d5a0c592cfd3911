package model

import "time"

// Adjustment is a signed manual point correction, independent of daily logs.
// Records are append-only; corrections are made by deleting and re-adding.
type Adjustment struct {
	ID           int64     `json:"id"`
	AmbassadorID int64     `json:"ambassador_id"`
	Date         string    `json:"date"`
	Delta        int       `json:"delta"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}
