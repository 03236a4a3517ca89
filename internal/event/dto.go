// AngelaMos | 2026
// dto.go

package event

import (
	"time"
)

type CreateEventRequest struct {
	Title       string    `json:"title"        validate:"required,min=1,max=200"`
	Description string    `json:"description"  validate:"omitempty,max=5000"`
	Date        time.Time `json:"date"         validate:"required"`
	Location    string    `json:"location"     validate:"required,min=1,max=255"`
	ImagePath   string    `json:"image_path"   validate:"omitempty,max=500"`
	PremiumOnly *bool     `json:"premium_only"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Date        *time.Time `json:"date,omitempty"`
	Location    *string    `json:"location,omitempty"    validate:"omitempty,min=1,max=255"`
	ImagePath   *string    `json:"image_path,omitempty"  validate:"omitempty,max=500"`
	PremiumOnly *bool      `json:"premium_only,omitempty"`
}

// ListEventsParams carries the catalog filters. Filtering is applied as
// visibility tier, then date equality, then location substring, and only
// then pagination.
type ListEventsParams struct {
	Page     int
	PageSize int
	Date     string
	Location string
}

func (p *ListEventsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 6
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListEventsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type EventResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	HostID       string    `json:"host_id"`
	HostUsername string    `json:"host_username"`
	ImagePath    string    `json:"image_path"`
	PremiumOnly  bool      `json:"premium_only"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type EventDetailResponse struct {
	Event      EventResponse `json:"event"`
	IsHost     bool          `json:"is_host"`
	RSVPStatus *string       `json:"rsvp_status"`
}

func ToEventResponse(e *Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date,
		Location:     e.Location,
		HostID:       e.HostID,
		HostUsername: e.HostUsername,
		ImagePath:    e.ImagePath,
		PremiumOnly:  e.PremiumOnly,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToEventResponseList(events []Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, ToEventResponse(&e))
	}
	return responses
}
