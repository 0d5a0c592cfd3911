package model

import "time"

// Ambassador is a program entrant. The PIN is stored only as a bcrypt hash
// and never leaves the server.
type Ambassador struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AmbassadorWithDay pairs an ambassador with their tri-flag log for one day.
// A day with no log row reports all flags false.
type AmbassadorWithDay struct {
	Ambassador
	Today DayFlags `json:"today"`
}

// AmbassadorHistory is the full ledger view for one ambassador.
type AmbassadorHistory struct {
	Ambassador  Ambassador   `json:"ambassador"`
	Logs        []DailyLog   `json:"logs"`
	Adjustments []Adjustment `json:"adjustments"`
	Total       int          `json:"total"`
}
