package domain

import "time"

// Account activity actions recorded on the trail.
const (
	ActionRegistered     = "registered"
	ActionLoggedIn       = "logged_in"
	ActionProfileUpdated = "profile_updated"
)

// AccountEvent is a single entry in a user's activity trail. Events are
// recorded asynchronously and are append-only.
type AccountEvent struct {
	ID     string    `json:"id"`
	UserID string    `json:"user_id"`
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}
