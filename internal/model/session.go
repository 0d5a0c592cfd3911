package model

import "time"

const (
	RoleAdmin      = "admin"
	RoleAmbassador = "amb"
)

// Session is an issued login token. AmbassadorID is set only for the
// ambassador role.
type Session struct {
	ID           int64     `json:"id"`
	Token        string    `json:"token"`
	Role         string    `json:"role"`
	AmbassadorID *int64    `json:"ambassador_id,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
