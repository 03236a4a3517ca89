// AngelaMos | 2026
// dto.go

package rsvp

import (
	"time"
)

type UpsertRSVPRequest struct {
	Status string `json:"status" validate:"required,oneof=going maybe not_going"`
}

type RSVPResponse struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToRSVPResponse(r *RSVP) RSVPResponse {
	return RSVPResponse{
		EventID:   r.EventID,
		UserID:    r.UserID,
		Status:    r.Status,
		UpdatedAt: r.UpdatedAt,
	}
}

// GuestEntry carries enough identity for a host or admin to contact an
// attendee.
type GuestEntry struct {
	UserID   string `json:"user_id"   db:"user_id"`
	Username string `json:"username"  db:"username"`
	Email    string `json:"email"     db:"email"`
	Status   string `json:"-"         db:"status"`
}

type GuestListResponse struct {
	Going    []GuestEntry `json:"going"`
	Maybe    []GuestEntry `json:"maybe"`
	NotGoing []GuestEntry `json:"not_going"`
}

// EventSummary is the slice of an event shown in a user's own RSVP view.
type EventSummary struct {
	EventID  string    `json:"event_id" db:"event_id"`
	Title    string    `json:"title"    db:"title"`
	Date     time.Time `json:"date"     db:"date"`
	Location string    `json:"location" db:"location"`
	Status   string    `json:"-"        db:"status"`
}

type MyRSVPEventsResponse struct {
	Going    []EventSummary `json:"going"`
	Maybe    []EventSummary `json:"maybe"`
	NotGoing []EventSummary `json:"not_going"`
}
