// AngelaMos | 2026
// entity.go

package rsvp

import (
	"time"
)

const (
	StatusGoing    = "going"
	StatusMaybe    = "maybe"
	StatusNotGoing = "not_going"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusGoing, StatusMaybe, StatusNotGoing:
		return true
	default:
		return false
	}
}

// RSVP is one row of the (user, event) ledger. The pair is unique; a
// repeated RSVP overwrites the status in place.
type RSVP struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	EventID   string    `db:"event_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
