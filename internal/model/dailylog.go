package model

import "time"

// Activity names one of the three daily activity types.
type Activity string

const (
	ActivityStory   Activity = "story"
	ActivityPost    Activity = "post"
	ActivityProduct Activity = "product"
)

// DayFlags holds the three independent activity booleans for one day.
// Each flag means "at least one qualifying activity recorded".
type DayFlags struct {
	Story   bool `json:"story"`
	Post    bool `json:"post"`
	Product bool `json:"product"`
}

// DailyLog is the tri-flag record for one ambassador on one calendar day.
// The (AmbassadorID, Date) pair is unique.
type DailyLog struct {
	ID           int64     `json:"id"`
	AmbassadorID int64     `json:"ambassador_id"`
	Date         string    `json:"date"`
	DayFlags
	CreatedAt time.Time `json:"created_at"`
}
